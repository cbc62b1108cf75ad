package garage

// ── Part interfaces ───────────────────────────────────────────────────────────

// Engine is the power unit of a car.
type Engine interface {
	PowerHP() float64
}

// Wheels is the set of wheels mounted on a car.
type Wheels interface {
	Size() string
}

// GearBox is a car's transmission.
type GearBox interface {
	Kind() string
}

// Seats is the seating fitted to the interiors.
type Seats interface {
	Description() string
}

// SteeringWheel is the steering wheel fitted to the interiors.
type SteeringWheel interface {
	Material() string
}

// Interiors groups the parts fitted inside the cabin.
type Interiors interface {
	Seats() Seats
	SteeringWheel() SteeringWheel
}

// ── Engines ───────────────────────────────────────────────────────────────────

type StandardEngine struct{}

func (StandardEngine) PowerHP() float64 { return 100 }

type SportsEngine struct{}

func (SportsEngine) PowerHP() float64 { return 200 }

type SupersportsEngine struct{}

func (SupersportsEngine) PowerHP() float64 { return 300 }

// NewEngine returns the engine matching p.
func NewEngine(p Power) Engine {
	switch p {
	case PowerSports:
		return SportsEngine{}
	case PowerSupersports:
		return SupersportsEngine{}
	default:
		return StandardEngine{}
	}
}

// ── Wheels & gearbox ──────────────────────────────────────────────────────────

type StandardWheels struct{}

func (StandardWheels) Size() string { return "16in" }

type LargeWheels struct{}

func (LargeWheels) Size() string { return "19in" }

type ManualGearBox struct{}

func (ManualGearBox) Kind() string { return "manual" }

type AutomaticGearBox struct{}

func (AutomaticGearBox) Kind() string { return "automatic" }

// ── Interiors ─────────────────────────────────────────────────────────────────

type TissueSeats struct{}

func (TissueSeats) Description() string { return "simple tissue seats" }

type LeatherSeats struct{}

func (LeatherSeats) Description() string { return "comfy leather seats" }

type AerospaceSeats struct{}

func (AerospaceSeats) Description() string { return "zero gravity rocket seats" }

type PlasticSteeringWheel struct{}

func (PlasticSteeringWheel) Material() string { return "plastic" }

type LeatherSteeringWheel struct{}

func (LeatherSteeringWheel) Material() string { return "leather" }

type cabin struct {
	seats    Seats
	steering SteeringWheel
}

// NewInteriors fits seats and a steering wheel into a cabin.
func NewInteriors(seats Seats, steering SteeringWheel) Interiors {
	return &cabin{seats: seats, steering: steering}
}

func (c *cabin) Seats() Seats                 { return c.seats }
func (c *cabin) SteeringWheel() SteeringWheel { return c.steering }
