package vm

// Opcode is a machine instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV      = Opcode(0)  // mov
	OP_ADD      = Opcode(1)  // add
	OP_SUB      = Opcode(2)  // sub
	OP_MUL      = Opcode(3)  // mul
	OP_DIV      = Opcode(4)  // div
	OP_CONST    = Opcode(5)  // const
	OP_PUSH     = Opcode(6)  // push
	OP_POP      = Opcode(7)  // pop
	OP_CHADD    = Opcode(8)  // chadd
	OP_CHDEL    = Opcode(9)  // chdel
	OP_CHSWITCH = Opcode(10) // chswitch
	OP_CHIN     = Opcode(11) // chin
	OP_CHOUT    = Opcode(12) // chout
	OP_CHMOV    = Opcode(13) // chmov
	OP_PRT_REG  = Opcode(14) // prt_reg
	OP_PRT_STR  = Opcode(15) // prt_str
	OP_CMP      = Opcode(16) // cmp
	OP_JMP      = Opcode(17) // jmp
	OP_JE       = Opcode(18) // je
	OP_JNE      = Opcode(19) // jne

	OP_COUNT = 20 // Number of opcodes.
)

// opcodeMap maps lower-case mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, OP_COUNT)
	for op := range Opcode(OP_COUNT) {
		ops[op.String()] = op
	}
	return ops
}()

// ParseOpcode returns the opcode for a lower-case mnemonic.
func ParseOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[word]
	return
}

// operands gives checked access to the words of an instruction.
type operands struct {
	op     Opcode
	words  []string
	labels Labels
}

// word returns operand n, counting the opcode as word 0.
func (arg operands) word(n int) (word string, err error) {
	if n >= len(arg.words) {
		err = ErrIncompleteCommand(arg.op.String())
		return
	}

	word = arg.words[n]
	return
}

// rest returns operand n and all words following it.
func (arg operands) rest(n int) (words []string, err error) {
	if n >= len(arg.words) {
		err = ErrIncompleteCommand(arg.op.String())
		return
	}

	words = arg.words[n:]
	return
}
