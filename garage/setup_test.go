package garage_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-eustace/framework/container"
	"github.com/km-arc/go-eustace/garage"
)

func TestAssemble_Builds(t *testing.T) {
	tests := []struct {
		name     string
		spec     garage.Spec
		hp       float64
		seats    string
		wheels   string
		gearBox  string
		steering string
	}{
		{"cheap", garage.Spec{Power: garage.PowerStandard, Optionals: garage.OptionalsStandard},
			100, "simple tissue seats", "16in", "manual", "plastic"},
		{"funky", garage.Spec{Power: garage.PowerSports, Optionals: garage.OptionalsLuxury},
			200, "comfy leather seats", "19in", "automatic", "leather"},
		{"superfunky", garage.Spec{Power: garage.PowerSupersports, Optionals: garage.OptionalsLuxury},
			300, "zero gravity rocket seats", "19in", "automatic", "leather"},
		{"registered", garage.Spec{Power: garage.PowerStandard, Optionals: garage.OptionalsMedium, ChassisSerial: "xyz"},
			100, "simple tissue seats", "16in", "automatic", "plastic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car, err := garage.Assemble(context.Background(), container.New(), tt.spec)
			require.NoError(t, err)

			assert.Equal(t, tt.hp, car.Engine.PowerHP())
			assert.Equal(t, tt.seats, car.Interiors.Seats().Description())
			assert.Equal(t, tt.wheels, car.Wheels.Size())
			assert.Equal(t, tt.gearBox, car.GearBox.Kind())
			assert.Equal(t, tt.steering, car.Interiors.SteeringWheel().Material())
			assert.Equal(t, tt.spec.ChassisSerial, car.Chassis.SerialNumber)
		})
	}
}

func TestAssemble_ChassisPointsBackToCar(t *testing.T) {
	car, err := garage.Assemble(context.Background(), container.New(), garage.Spec{})
	require.NoError(t, err)

	assert.Same(t, car, car.Chassis.Car())
}

func TestAssemble_ChassisDoesNotKeepCarAlive(t *testing.T) {
	chassis := func() *garage.Chassis {
		car, err := garage.Assemble(context.Background(), container.New(), garage.Spec{})
		require.NoError(t, err)
		return car.Chassis
	}()

	runtime.GC()
	runtime.GC()

	assert.Nil(t, chassis.Car())
}

func TestAssemble_EachResolveIsANewCar(t *testing.T) {
	c := container.New()
	first, err := garage.Assemble(context.Background(), c, garage.Spec{})
	require.NoError(t, err)

	second := container.MustResolve[*garage.Car](c)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotSame(t, first.Chassis, second.Chassis)
}

func TestSetup_ReplacesPreviousRecipes(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{Power: garage.PowerStandard})
	garage.Setup(c, garage.Spec{Power: garage.PowerSupersports})

	engine := container.MustResolve[garage.Engine](c)
	assert.Equal(t, 300.0, engine.PowerHP())

	car := container.MustResolve[*garage.Car](c)
	assert.Equal(t, 300.0, car.Engine.PowerHP())
}

func TestSetup_EngineCatalog(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{})

	for power, hp := range map[garage.Power]float64{
		garage.PowerStandard:    100,
		garage.PowerSports:      200,
		garage.PowerSupersports: 300,
	} {
		engine, ok, err := container.ResolveWith[garage.Engine](c, power)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, hp, engine.PowerHP(), "power %s", power)
	}
}

func TestSetup_ChassisBySerial(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{ChassisSerial: "configured"})

	one, ok, err := container.ResolveWith[*garage.Chassis](c, "abc_1")
	require.NoError(t, err)
	require.True(t, ok)
	two, ok, err := container.ResolveWith[*garage.Chassis](c, "xyz_2")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "abc_1", one.SerialNumber)
	assert.Equal(t, "xyz_2", two.SerialNumber)
	assert.Nil(t, one.Car())

	plain := container.MustResolve[*garage.Chassis](c)
	assert.Equal(t, "configured", plain.SerialNumber)
}

func TestSetup_ChassisBySerialAfterDisposeAll(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{})
	c.DisposeAll()

	_, _, err := container.Resolve[*garage.Car](c)
	require.ErrorIs(t, err, container.ErrEmptyRegistry)

	container.RegisterWith(c, func(_ container.Resolver, serial string) (*garage.Chassis, error) {
		return garage.NewChassis(serial), nil
	})
	chassis, ok, err := container.ResolveWith[*garage.Chassis](c, "abc_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc_1", chassis.SerialNumber)
}

func TestAssemble_MissingPart(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{})
	container.Dispose[garage.Wheels](c)

	_, _, err := container.Resolve[*garage.Car](c)
	require.ErrorIs(t, err, container.ErrUnregisteredService)

	var rerr *container.ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, container.KeyOf[garage.Wheels](), rerr.Key)
}

func TestAssemble_NilPart(t *testing.T) {
	c := container.New()
	garage.Setup(c, garage.Spec{})
	container.Register(c, func(container.Resolver) (garage.GearBox, error) { return nil, nil })

	_, _, err := container.Resolve[*garage.Car](c)
	require.ErrorIs(t, err, garage.ErrMissingPart)
	assert.Contains(t, err.Error(), "garage.GearBox")
}

func TestProvider(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&garage.Provider{Spec: garage.Spec{Power: garage.PowerSports}}))
	require.NoError(t, reg.Boot())

	car := container.MustResolve[*garage.Car](c)
	assert.Equal(t, 200.0, car.Engine.PowerHP())
}

func TestProvider_BootFailsWithoutParts(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&garage.Provider{}))
	container.Dispose[garage.Engine](c)
	container.DisposeWith[garage.Engine, garage.Power](c)

	err := reg.Boot()
	require.ErrorIs(t, err, container.ErrUnregisteredService)
	assert.False(t, reg.Booted())
}
