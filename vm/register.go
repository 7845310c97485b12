package vm

import (
	"strings"
)

// Register is a general purpose register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // A
	REG_B = Register(1) // B
	REG_C = Register(2) // C
	REG_D = Register(3) // D

	REG_COUNT = 4 // Number of registers.
)

// ParseRegister returns the register named by word, ignoring case.
func ParseRegister(word string) (reg Register, ok bool) {
	if len(word) != 1 {
		return
	}

	switch strings.ToUpper(word) {
	case "A":
		reg, ok = REG_A, true
	case "B":
		reg, ok = REG_B, true
	case "C":
		reg, ok = REG_C, true
	case "D":
		reg, ok = REG_D, true
	}

	return
}
