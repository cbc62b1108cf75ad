package garage

import (
	"fmt"
	"weak"

	"github.com/google/uuid"
)

// Car is a fully assembled vehicle. It owns its parts.
type Car struct {
	ID        uuid.UUID
	Chassis   *Chassis
	Wheels    Wheels
	Engine    Engine
	GearBox   GearBox
	Interiors Interiors
}

// NewCar assembles a car from its parts and mounts the chassis on it.
func NewCar(chassis *Chassis, wheels Wheels, engine Engine, gearBox GearBox, interiors Interiors) *Car {
	car := &Car{
		ID:        uuid.New(),
		Chassis:   chassis,
		Wheels:    wheels,
		Engine:    engine,
		GearBox:   gearBox,
		Interiors: interiors,
	}
	chassis.Mount(car)
	return car
}

// String summarises the car for logs and the demo output.
func (c *Car) String() string {
	return fmt.Sprintf("%.0f hp, %s, %s wheels, %s gearbox",
		c.Engine.PowerHP(),
		c.Interiors.Seats().Description(),
		c.Wheels.Size(),
		c.GearBox.Kind(),
	)
}

// Chassis is the frame a car is built on. It refers back to the car it is
// mounted in without keeping that car alive.
type Chassis struct {
	SerialNumber string
	car          weak.Pointer[Car]
}

// NewChassis returns an unmounted chassis.
func NewChassis(serial string) *Chassis {
	return &Chassis{SerialNumber: serial}
}

// Mount records car as the owner of this chassis.
func (ch *Chassis) Mount(car *Car) {
	ch.car = weak.Make(car)
}

// Car returns the car this chassis is mounted in, or nil if it was never
// mounted or the car has been collected.
func (ch *Chassis) Car() *Car {
	return ch.car.Value()
}
