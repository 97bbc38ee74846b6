package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an unrecognized character sequence.
	Invalid Kind = iota
	// EOL marks the end of a line; every line's token sequence ends with one.
	EOL

	// Ident represents an identifier: mnemonic, symbol name, or logic type.
	Ident
	// Number represents a numeric literal (decimal, hex, binary, float).
	Number
	// String represents a HASH("...") preprocessor string literal.
	String
	// Register represents a register reference (r0-r15, sp, ra, rr indirection).
	Register
	// Device represents a device pin reference (d0-d5, db, dr indirection).
	Device
	// LabelMark represents the ':' terminating a label declaration.
	LabelMark
	// Comment represents a '#' comment running to end of line.
	Comment
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOL:       "EOL",
	Ident:     "Ident",
	Number:    "Number",
	String:    "String",
	Register:  "Register",
	Device:    "Device",
	LabelMark: "LabelMark",
	Comment:   "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
