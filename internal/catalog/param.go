package catalog

import "strings"

// DataType classifies what an operand slot accepts.
type DataType uint8

const (
	// TypeNumber accepts a numeric literal or a define/label symbol.
	TypeNumber DataType = iota
	// TypeRegister accepts a register or a register alias.
	TypeRegister
	// TypeDevice accepts a device pin or a device alias.
	TypeDevice
	// TypeLogicType accepts a device logic parameter name.
	TypeLogicType
	// TypeSlotLogicType accepts a slot logic parameter name.
	TypeSlotLogicType
)

func (t DataType) String() string {
	switch t {
	case TypeNumber:
		return "num"
	case TypeRegister:
		return "r?"
	case TypeDevice:
		return "d?"
	case TypeLogicType:
		return "type"
	case TypeSlotLogicType:
		return "slotType"
	}
	return "?"
}

// Param is the union of data types a single operand slot accepts.
type Param []DataType

// Matches reports whether a value of type t can fill the slot.
func (p Param) Matches(t DataType) bool {
	for _, x := range p {
		if x == t {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any of the candidate types can fill the slot.
func (p Param) MatchesAny(types []DataType) bool {
	for _, t := range types {
		if p.Matches(t) {
			return true
		}
	}
	return false
}

func (p Param) String() string {
	if len(p) == 1 {
		return p[0].String()
	}
	parts := make([]string, 0, len(p))
	for _, t := range p {
		parts = append(parts, t.String())
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// Signature is the ordered operand slots of an instruction.
type Signature []Param

func (s Signature) String() string {
	var b strings.Builder
	for _, p := range s {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	return b.String()
}

// Shared slot shapes used by the instruction table.
var (
	paramRegister = Param{TypeRegister}
	paramDevice   = Param{TypeDevice}
	paramValue    = Param{TypeRegister, TypeNumber}
	paramLogic    = Param{TypeLogicType}
	paramSlot     = Param{TypeSlotLogicType}
)
