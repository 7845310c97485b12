package vm

import (
	"strconv"
)

// ConstantKind is the type tag of a Constant.
type ConstantKind int

const (
	CONSTANT_INTEGER = ConstantKind(0)
	CONSTANT_TEXT    = ConstantKind(1)
)

// Constant is a named integer or text value defined by `const`.
type Constant struct {
	Kind    ConstantKind
	Integer int64
	Text    string
}

func IntegerConstant(value int64) Constant {
	return Constant{Kind: CONSTANT_INTEGER, Integer: value}
}

func TextConstant(text string) Constant {
	return Constant{Kind: CONSTANT_TEXT, Text: text}
}

func (c Constant) String() string {
	if c.Kind == CONSTANT_TEXT {
		return strconv.Quote(c.Text)
	}
	return strconv.FormatInt(c.Integer, 10)
}
