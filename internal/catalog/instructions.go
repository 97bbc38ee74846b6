package catalog

// Instruction describes one mnemonic: its operand signature and documentation.
type Instruction struct {
	Name      string
	Signature Signature
	Doc       string
	Branch    bool // jump/branch family: targets are line numbers or labels
}

// instructionTable lists every supported mnemonic. Operand shapes mirror the
// in-game IC10 instruction set.
func instructionTable() []Instruction {
	return []Instruction{
		// Device branching
		{Name: "bdns", Signature: Signature{paramDevice, paramValue}, Doc: "Branch to line if device is not set.", Branch: true},
		{Name: "bdnsal", Signature: Signature{paramDevice, paramValue}, Doc: "Branch to line if device is not set, storing the return address in ra.", Branch: true},
		{Name: "bdse", Signature: Signature{paramDevice, paramValue}, Doc: "Branch to line if device is set.", Branch: true},
		{Name: "bdseal", Signature: Signature{paramDevice, paramValue}, Doc: "Branch to line if device is set, storing the return address in ra.", Branch: true},
		{Name: "brdns", Signature: Signature{paramDevice, paramValue}, Doc: "Relative branch if device is not set.", Branch: true},
		{Name: "brdse", Signature: Signature{paramDevice, paramValue}, Doc: "Relative branch if device is set.", Branch: true},
		{Name: "sdns", Signature: Signature{paramRegister, paramDevice}, Doc: "Set register to 1 if device is not set, 0 otherwise."},
		{Name: "sdse", Signature: Signature{paramRegister, paramDevice}, Doc: "Set register to 1 if device is set, 0 otherwise."},

		// Device IO
		{Name: "l", Signature: Signature{paramRegister, paramDevice, paramLogic}, Doc: "Load a device logic parameter into a register."},
		{Name: "ls", Signature: Signature{paramRegister, paramDevice, paramValue, paramSlot}, Doc: "Load a slot logic parameter from a device slot into a register."},
		{Name: "s", Signature: Signature{paramDevice, paramLogic, paramValue}, Doc: "Store a value into a device logic parameter."},

		// Comparative branching
		{Name: "bap", Signature: Signature{paramValue, paramValue, paramValue, paramValue}, Doc: "Branch if a and b are approximately equal within c.", Branch: true},
		{Name: "bapz", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a is approximately zero within b.", Branch: true},
		{Name: "bapzal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a is approximately zero within b, storing the return address in ra.", Branch: true},
		{Name: "beq", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a == b.", Branch: true},
		{Name: "beqal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a == b, storing the return address in ra.", Branch: true},
		{Name: "beqz", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a == 0.", Branch: true},
		{Name: "beqzal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a == 0, storing the return address in ra.", Branch: true},
		{Name: "bge", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a >= b.", Branch: true},
		{Name: "bgeal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a >= b, storing the return address in ra.", Branch: true},
		{Name: "bgez", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a >= 0.", Branch: true},
		{Name: "bgezal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a >= 0, storing the return address in ra.", Branch: true},
		{Name: "bgt", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a > b.", Branch: true},
		{Name: "bgtal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a > b, storing the return address in ra.", Branch: true},
		{Name: "bgtz", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a > 0.", Branch: true},
		{Name: "bgtzal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a > 0, storing the return address in ra.", Branch: true},
		{Name: "ble", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a <= b.", Branch: true},
		{Name: "bleal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a <= b, storing the return address in ra.", Branch: true},
		{Name: "blez", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a <= 0.", Branch: true},
		{Name: "blezal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a <= 0, storing the return address in ra.", Branch: true},
		{Name: "blt", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a < b.", Branch: true},
		{Name: "bltal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a < b, storing the return address in ra.", Branch: true},
		{Name: "bltz", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a < 0.", Branch: true},
		{Name: "bltzal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a < 0, storing the return address in ra.", Branch: true},
		{Name: "bna", Signature: Signature{paramValue, paramValue, paramValue, paramValue}, Doc: "Branch if a and b are not approximately equal within c.", Branch: true},
		{Name: "bnaz", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a is not approximately zero within b.", Branch: true},
		{Name: "bnazal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a is not approximately zero within b, storing the return address in ra.", Branch: true},
		{Name: "bne", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a != b.", Branch: true},
		{Name: "bneal", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Branch if a != b, storing the return address in ra.", Branch: true},
		{Name: "bnez", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a != 0.", Branch: true},
		{Name: "bnezal", Signature: Signature{paramValue, paramValue}, Doc: "Branch if a != 0, storing the return address in ra.", Branch: true},

		// Relative branching
		{Name: "brap", Signature: Signature{paramValue, paramValue, paramValue, paramValue}, Doc: "Relative branch if a and b are approximately equal within c.", Branch: true},
		{Name: "breq", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a == b.", Branch: true},
		{Name: "breqz", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a == 0.", Branch: true},
		{Name: "brge", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a >= b.", Branch: true},
		{Name: "brgez", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a >= 0.", Branch: true},
		{Name: "brgt", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a > b.", Branch: true},
		{Name: "brgtz", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a > 0.", Branch: true},
		{Name: "brle", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a <= b.", Branch: true},
		{Name: "brlez", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a <= 0.", Branch: true},
		{Name: "brlt", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a < b.", Branch: true},
		{Name: "brltz", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a < 0.", Branch: true},
		{Name: "brna", Signature: Signature{paramValue, paramValue, paramValue, paramValue}, Doc: "Relative branch if a and b are not approximately equal within c.", Branch: true},
		{Name: "brne", Signature: Signature{paramValue, paramValue, paramValue}, Doc: "Relative branch if a != b.", Branch: true},
		{Name: "brnez", Signature: Signature{paramValue, paramValue}, Doc: "Relative branch if a != 0.", Branch: true},

		// Jumps
		{Name: "j", Signature: Signature{paramValue}, Doc: "Jump to a line.", Branch: true},
		{Name: "jal", Signature: Signature{paramValue}, Doc: "Jump to a line, storing the return address in ra.", Branch: true},
		{Name: "jr", Signature: Signature{paramValue}, Doc: "Relative jump by an offset."},

		// Comparative set
		{Name: "sap", Signature: Signature{paramRegister, paramValue, paramValue, paramValue}, Doc: "Set register to 1 if a and b are approximately equal within c."},
		{Name: "select", Signature: Signature{paramRegister, paramValue, paramValue, paramValue}, Doc: "Set register to b if a is nonzero, c otherwise."},
		{Name: "seq", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a == b, 0 otherwise."},
		{Name: "seqz", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a == 0, 0 otherwise."},
		{Name: "sge", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a >= b, 0 otherwise."},
		{Name: "sgez", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a >= 0, 0 otherwise."},
		{Name: "sgt", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a > b, 0 otherwise."},
		{Name: "sgtz", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a > 0, 0 otherwise."},
		{Name: "sle", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a <= b, 0 otherwise."},
		{Name: "slez", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a <= 0, 0 otherwise."},
		{Name: "slt", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a < b, 0 otherwise."},
		{Name: "sltz", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a < 0, 0 otherwise."},
		{Name: "sna", Signature: Signature{paramRegister, paramValue, paramValue, paramValue}, Doc: "Set register to 1 if a and b are not approximately equal within c."},
		{Name: "sne", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if a != b, 0 otherwise."},
		{Name: "snez", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to 1 if a != 0, 0 otherwise."},

		// Math
		{Name: "abs", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the absolute value of a."},
		{Name: "acos", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the arccosine of a."},
		{Name: "add", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to a + b."},
		{Name: "asin", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the arcsine of a."},
		{Name: "atan", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the arctangent of a."},
		{Name: "ceil", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to a rounded up."},
		{Name: "cos", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the cosine of a."},
		{Name: "div", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to a / b."},
		{Name: "exp", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to e raised to a."},
		{Name: "floor", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to a rounded down."},
		{Name: "log", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the natural logarithm of a."},
		{Name: "max", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to the larger of a and b."},
		{Name: "min", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to the smaller of a and b."},
		{Name: "mod", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to a modulo b (always non-negative)."},
		{Name: "mul", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to a * b."},
		{Name: "rand", Signature: Signature{paramRegister}, Doc: "Set register to a random value between 0 and 1."},
		{Name: "round", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to a rounded to the nearest integer."},
		{Name: "sin", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the sine of a."},
		{Name: "sqrt", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the square root of a."},
		{Name: "sub", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to a - b."},
		{Name: "tan", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to the tangent of a."},
		{Name: "trunc", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to a with the fractional part removed."},

		// Logic
		{Name: "and", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if both a and b are nonzero."},
		{Name: "nor", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if both a and b are zero."},
		{Name: "or", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if either a or b is nonzero."},
		{Name: "xor", Signature: Signature{paramRegister, paramValue, paramValue}, Doc: "Set register to 1 if exactly one of a and b is nonzero."},

		// Stack
		{Name: "peek", Signature: Signature{paramRegister}, Doc: "Set register to the value on top of the stack without removing it."},
		{Name: "pop", Signature: Signature{paramRegister}, Doc: "Pop the top of the stack into register."},
		{Name: "push", Signature: Signature{paramValue}, Doc: "Push a onto the stack."},

		// Misc
		{Name: "hcf", Signature: Signature{}, Doc: "Halt and catch fire."},
		{Name: "move", Signature: Signature{paramRegister, paramValue}, Doc: "Set register to a."},
		{Name: "sleep", Signature: Signature{paramValue}, Doc: "Pause execution for a seconds."},
		{Name: "yield", Signature: Signature{}, Doc: "Pause execution until the next tick."},
	}
}
