package garage

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-eustace/framework/config"
)

// Power selects the engine class of a car.
type Power int

const (
	PowerStandard Power = iota
	PowerSports
	PowerSupersports
)

var powerNames = []string{"standard", "sports", "supersports"}

func (p Power) String() string {
	if p < 0 || int(p) >= len(powerNames) {
		return fmt.Sprintf("Power(%d)", int(p))
	}
	return powerNames[p]
}

// ParsePower parses "standard", "sports" or "supersports" (case-insensitive).
func ParsePower(s string) (Power, error) {
	for i, name := range powerNames {
		if strings.EqualFold(s, name) {
			return Power(i), nil
		}
	}
	return 0, fmt.Errorf("garage: unknown power %q", s)
}

func (p Power) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Power) UnmarshalText(b []byte) error {
	v, err := ParsePower(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Power) UnmarshalYAML(node *yaml.Node) error {
	return p.UnmarshalText([]byte(node.Value))
}

// Optionals selects the trim level of a car.
type Optionals int

const (
	OptionalsStandard Optionals = iota
	OptionalsMedium
	OptionalsLuxury
)

var optionalsNames = []string{"standard", "medium", "luxury"}

func (o Optionals) String() string {
	if o < 0 || int(o) >= len(optionalsNames) {
		return fmt.Sprintf("Optionals(%d)", int(o))
	}
	return optionalsNames[o]
}

// ParseOptionals parses "standard", "medium" or "luxury" (case-insensitive).
func ParseOptionals(s string) (Optionals, error) {
	for i, name := range optionalsNames {
		if strings.EqualFold(s, name) {
			return Optionals(i), nil
		}
	}
	return 0, fmt.Errorf("garage: unknown optionals %q", s)
}

func (o Optionals) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Optionals) UnmarshalText(b []byte) error {
	v, err := ParseOptionals(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o *Optionals) UnmarshalYAML(node *yaml.Node) error {
	return o.UnmarshalText([]byte(node.Value))
}

// Spec describes the car a container is set up to build.
type Spec struct {
	Power         Power     `yaml:"power" json:"power"`
	Optionals     Optionals `yaml:"optionals" json:"optionals"`
	ChassisSerial string    `yaml:"chassis_serial" json:"chassis_serial,omitempty"`
}

// SpecFromConfig builds the default Spec from the GARAGE_* settings.
func SpecFromConfig(cfg config.GarageConfig) (Spec, error) {
	power, err := ParsePower(cfg.Power)
	if err != nil {
		return Spec{}, err
	}
	optionals, err := ParseOptionals(cfg.Optionals)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Power: power, Optionals: optionals, ChassisSerial: cfg.ChassisSerial}, nil
}
