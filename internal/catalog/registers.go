package catalog

import "fmt"

// Pin describes a register or device pin known to the chip.
type Pin struct {
	Name string
	Doc  string
}

func registerTable() []Pin {
	pins := make([]Pin, 0, 18)
	for i := 0; i < 16; i++ {
		pins = append(pins, Pin{
			Name: fmt.Sprintf("r%d", i),
			Doc:  fmt.Sprintf("General purpose register %d.", i),
		})
	}
	pins = append(pins,
		Pin{Name: "sp", Doc: "Stack pointer (alias for r16)."},
		Pin{Name: "ra", Doc: "Return address register (alias for r17), written by jal and *al branches."},
	)
	return pins
}

func deviceTable() []Pin {
	pins := make([]Pin, 0, 7)
	for i := 0; i < 6; i++ {
		pins = append(pins, Pin{
			Name: fmt.Sprintf("d%d", i),
			Doc:  fmt.Sprintf("Device pin %d on the chip housing.", i),
		})
	}
	pins = append(pins, Pin{Name: "db", Doc: "The device the chip itself is installed in."})
	return pins
}
