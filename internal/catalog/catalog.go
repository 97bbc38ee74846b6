// Package catalog holds the static knowledge about the IC10 instruction set:
// mnemonics with operand signatures, registers, device pins, and logic
// parameter names. A Catalog is an immutable value constructed once and passed
// explicitly into the parser, the analyzer, and the feature providers, so each
// can be tested with a substitute table.
package catalog

// Catalog is the fixed instruction and register knowledge for one language
// revision. All maps are read-only after New returns.
type Catalog struct {
	instructions map[string]Instruction
	mnemonics    []string // sorted insertion order of instructionTable
	registers    map[string]Pin
	devices      map[string]Pin
	logicTypes   map[string]struct{}
	slotTypes    map[string]struct{}
}

// New builds the default catalog.
func New() *Catalog {
	c := &Catalog{
		instructions: make(map[string]Instruction),
		registers:    make(map[string]Pin),
		devices:      make(map[string]Pin),
		logicTypes:   make(map[string]struct{}),
		slotTypes:    make(map[string]struct{}),
	}
	for _, ins := range instructionTable() {
		c.instructions[ins.Name] = ins
		c.mnemonics = append(c.mnemonics, ins.Name)
	}
	for _, pin := range registerTable() {
		c.registers[pin.Name] = pin
	}
	for _, pin := range deviceTable() {
		c.devices[pin.Name] = pin
	}
	for _, name := range logicTypeTable() {
		c.logicTypes[name] = struct{}{}
	}
	for _, name := range slotLogicTypeTable() {
		c.slotTypes[name] = struct{}{}
	}
	return c
}

// Instruction looks up a mnemonic. Matching is case-sensitive.
func (c *Catalog) Instruction(name string) (Instruction, bool) {
	ins, ok := c.instructions[name]
	return ins, ok
}

// Mnemonics returns every known mnemonic in table order.
func (c *Catalog) Mnemonics() []string {
	return c.mnemonics
}

// Register looks up a register pin by name (r0-r15, sp, ra).
func (c *Catalog) Register(name string) (Pin, bool) {
	pin, ok := c.registers[name]
	return pin, ok
}

// Device looks up a device pin by name (d0-d5, db).
func (c *Catalog) Device(name string) (Pin, bool) {
	pin, ok := c.devices[name]
	return pin, ok
}

// Registers returns all register pins in numeric order.
func (c *Catalog) Registers() []Pin { return registerTable() }

// Devices returns all device pins in numeric order.
func (c *Catalog) Devices() []Pin { return deviceTable() }

// IsLogicType reports whether name is a device logic parameter.
func (c *Catalog) IsLogicType(name string) bool {
	_, ok := c.logicTypes[name]
	return ok
}

// IsSlotLogicType reports whether name is a slot logic parameter.
func (c *Catalog) IsSlotLogicType(name string) bool {
	_, ok := c.slotTypes[name]
	return ok
}

// LogicTypes returns every logic parameter name in table order.
func (c *Catalog) LogicTypes() []string { return logicTypeTable() }

// SlotLogicTypes returns every slot logic parameter name in table order.
func (c *Catalog) SlotLogicTypes() []string { return slotLogicTypeTable() }

// LogicCandidates returns the data types an identifier could denote when it
// matches one or both logic parameter namespaces.
func (c *Catalog) LogicCandidates(name string) []DataType {
	var types []DataType
	if c.IsLogicType(name) {
		types = append(types, TypeLogicType)
	}
	if c.IsSlotLogicType(name) {
		types = append(types, TypeSlotLogicType)
	}
	return types
}
