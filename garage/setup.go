package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/km-arc/go-eustace/framework/container"
)

// ErrMissingPart is returned when a part recipe produced nothing.
var ErrMissingPart = errors.New("garage: missing part")

// Setup registers every recipe needed to build a car matching spec. Calling
// it again with another spec replaces the previous recipes.
func Setup(c *container.Container, spec Spec) {
	serial := spec.ChassisSerial
	container.Register(c, func(container.Resolver) (*Chassis, error) {
		return NewChassis(serial), nil
	})
	container.RegisterWith(c, func(_ container.Resolver, sn string) (*Chassis, error) {
		return NewChassis(sn), nil
	})

	container.Register(c, func(container.Resolver) (SteeringWheel, error) {
		if spec.Optionals == OptionalsLuxury {
			return LeatherSteeringWheel{}, nil
		}
		return PlasticSteeringWheel{}, nil
	})

	container.Register(c, func(container.Resolver) (Seats, error) {
		switch spec.Power {
		case PowerSupersports:
			return AerospaceSeats{}, nil
		case PowerSports:
			return LeatherSeats{}, nil
		default:
			return TissueSeats{}, nil
		}
	})

	container.Register(c, func(container.Resolver) (Wheels, error) {
		if spec.Power == PowerStandard {
			return StandardWheels{}, nil
		}
		return LargeWheels{}, nil
	})

	container.Register(c, func(container.Resolver) (GearBox, error) {
		if spec.Optionals == OptionalsStandard {
			return ManualGearBox{}, nil
		}
		return AutomaticGearBox{}, nil
	})

	// Engines: the configured one, plus the catalog keyed by power.
	power := spec.Power
	container.Register(c, func(container.Resolver) (Engine, error) {
		return NewEngine(power), nil
	})
	container.RegisterWith(c, func(_ container.Resolver, p Power) (Engine, error) {
		return NewEngine(p), nil
	})

	container.Register(c, func(r container.Resolver) (Interiors, error) {
		seats, err := need[Seats](r)
		if err != nil {
			return nil, err
		}
		steering, err := need[SteeringWheel](r)
		if err != nil {
			return nil, err
		}
		return NewInteriors(seats, steering), nil
	})

	container.Register(c, func(r container.Resolver) (*Car, error) {
		chassis, err := need[*Chassis](r)
		if err != nil {
			return nil, err
		}
		wheels, err := need[Wheels](r)
		if err != nil {
			return nil, err
		}
		engine, ok, err := container.ResolveWith[Engine](r, power)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, container.KeyWith[Engine, Power]())
		}
		gearBox, err := need[GearBox](r)
		if err != nil {
			return nil, err
		}
		interiors, err := need[Interiors](r)
		if err != nil {
			return nil, err
		}
		return NewCar(chassis, wheels, engine, gearBox, interiors), nil
	})
}

// need resolves a part that must be present.
func need[T any](r container.Resolver) (T, error) {
	v, ok, err := container.Resolve[T](r)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("%w: %s", ErrMissingPart, container.KeyOf[T]())
	}
	return v, nil
}

// Assemble sets c up for spec and builds one car.
func Assemble(ctx context.Context, c *container.Container, spec Spec) (*Car, error) {
	Setup(c, spec)
	car, ok, err := container.ResolveContext[*Car](ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, container.KeyOf[*Car]())
	}
	return car, nil
}

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider registers the car recipes for Spec and, at boot, checks that a
// car can actually be built from them.
type Provider struct {
	container.BaseProvider
	Spec Spec
}

func (p *Provider) Register(c *container.Container) {
	Setup(c, p.Spec)
}

func (p *Provider) Boot(r container.Resolver) error {
	_, err := need[*Car](r)
	return err
}
