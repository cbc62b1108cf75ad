package garage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Order is one named build request in an order sheet.
type Order struct {
	Name string `yaml:"name"`
	Spec `yaml:",inline"`
}

// OrderSheet is the YAML document listing the cars to build.
//
//	orders:
//	  - name: cheap
//	    power: standard
//	    optionals: standard
//	  - name: registered
//	    power: standard
//	    optionals: medium
//	    chassis_serial: xyz
type OrderSheet struct {
	Orders []Order `yaml:"orders"`
}

// ParseOrders decodes an order sheet.
func ParseOrders(data []byte) ([]Order, error) {
	var sheet OrderSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse orders: %w", err)
	}
	for i, o := range sheet.Orders {
		if o.Name == "" {
			return nil, fmt.Errorf("parse orders: order %d has no name", i)
		}
	}
	return sheet.Orders, nil
}

// LoadOrders reads and decodes the order sheet at path.
func LoadOrders(path string) ([]Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return ParseOrders(data)
}

// DefaultOrders returns the four stock builds: cheap, funky, superfunky and a
// standard car on the given chassis serial.
func DefaultOrders(serial string) []Order {
	return []Order{
		{Name: "cheap", Spec: Spec{Power: PowerStandard, Optionals: OptionalsStandard}},
		{Name: "funky", Spec: Spec{Power: PowerSports, Optionals: OptionalsLuxury}},
		{Name: "superfunky", Spec: Spec{Power: PowerSupersports, Optionals: OptionalsLuxury}},
		{Name: "registered", Spec: Spec{Power: PowerStandard, Optionals: OptionalsMedium, ChassisSerial: serial}},
	}
}
