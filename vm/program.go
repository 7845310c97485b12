package vm

import (
	"strings"
)

// Instruction is a single tokenized source line.
type Instruction struct {
	LineNo int      // Source line number, 1-based.
	Words  []string // Opcode or label, followed by operands.
}

// Opcode returns the lower-cased first word.
func (inst Instruction) Opcode() string {
	if len(inst.Words) == 0 {
		return ""
	}
	return strings.ToLower(inst.Words[0])
}

// Label returns the declared label name, if this is a label line.
func (inst Instruction) Label() (name string, ok bool) {
	if len(inst.Words) == 0 {
		return
	}

	name, ok = strings.CutSuffix(inst.Words[0], ":")
	return
}

func (inst Instruction) String() string {
	return strings.Join(inst.Words, " ")
}

// Program is an ordered list of instructions.
type Program struct {
	Instructions []Instruction
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Instructions)
}

// Debug returns the instruction at ip, or nil if ip is out of range.
func (prog *Program) Debug(ip int) (inst *Instruction) {
	if ip < 0 || ip >= prog.Len() {
		return
	}

	return &prog.Instructions[ip]
}
