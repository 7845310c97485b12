package vm

import (
	"regexp"
	"strconv"
	"strings"
)

// handler executes the operands of one opcode against the machine.
type handler func(m *Machine, arg operands) error

// opHandler is the dispatch table, indexed by opcode.
var opHandler = [OP_COUNT]handler{
	OP_MOV:      (*Machine).opMov,
	OP_ADD:      (*Machine).opAdd,
	OP_SUB:      (*Machine).opSub,
	OP_MUL:      (*Machine).opMul,
	OP_DIV:      (*Machine).opDiv,
	OP_CONST:    (*Machine).opConst,
	OP_PUSH:     (*Machine).opPush,
	OP_POP:      (*Machine).opPop,
	OP_CHADD:    (*Machine).opChadd,
	OP_CHDEL:    (*Machine).opChdel,
	OP_CHSWITCH: (*Machine).opChswitch,
	OP_CHIN:     (*Machine).opChin,
	OP_CHOUT:    (*Machine).opChout,
	OP_CHMOV:    (*Machine).opChmov,
	OP_PRT_REG:  (*Machine).opPrtReg,
	OP_PRT_STR:  (*Machine).opPrtStr,
	OP_CMP:      (*Machine).opCmp,
	OP_JMP:      (*Machine).opJmp,
	OP_JE:       (*Machine).opJe,
	OP_JNE:      (*Machine).opJne,
}

var literalRegexp = regexp.MustCompile(`^-?[0-9]+$`)

// isLiteral returns true if word is a signed decimal integer literal.
func isLiteral(word string) bool {
	return literalRegexp.MatchString(word)
}

// mov dst src
func (m *Machine) opMov(arg operands) (err error) {
	dst_word, err := arg.word(1)
	if err != nil {
		return
	}
	src_word, err := arg.word(2)
	if err != nil {
		return
	}

	dst, err := m.register(dst_word)
	if err != nil {
		return
	}
	value, err := m.value(src_word, true)
	if err != nil {
		return
	}

	m.Register[dst] = value
	return
}

func (m *Machine) opAdd(arg operands) (err error) {
	dst, src, err := m.registerPair(arg)
	if err != nil {
		return
	}

	m.Register[dst] += m.Register[src]
	return
}

func (m *Machine) opSub(arg operands) (err error) {
	dst, src, err := m.registerPair(arg)
	if err != nil {
		return
	}

	m.Register[dst] -= m.Register[src]
	return
}

func (m *Machine) opMul(arg operands) (err error) {
	dst, src, err := m.registerPair(arg)
	if err != nil {
		return
	}

	m.Register[dst] *= m.Register[src]
	return
}

// floorDiv divides, rounding towards negative infinity.
func floorDiv(a, b int64) (q int64) {
	q = a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return
}

func (m *Machine) opDiv(arg operands) (err error) {
	dst, src, err := m.registerPair(arg)
	if err != nil {
		return
	}

	if m.Register[src] == 0 {
		err = ErrDivisionByZero
		return
	}

	m.Register[dst] = floorDiv(m.Register[dst], m.Register[src])
	return
}

// const NAME VALUE
// const NAME "some text"
// const NAME $(expression)
func (m *Machine) opConst(arg operands) (err error) {
	name, err := arg.word(1)
	if err != nil {
		return
	}
	words, err := arg.rest(2)
	if err != nil {
		return
	}

	first := words[0]
	last := words[len(words)-1]

	var constant Constant
	switch {
	case strings.HasPrefix(first, `"`) && strings.HasSuffix(last, `"`):
		constant = TextConstant(strings.Trim(strings.Join(words, " "), `"`))
	case strings.HasPrefix(first, "$(") && strings.HasSuffix(last, ")"):
		expr := strings.Join(words, " ")
		var value int64
		value, err = m.evalExpr(expr[2 : len(expr)-1])
		if err != nil {
			return
		}
		constant = IntegerConstant(value)
	default:
		var value int64
		value, err = strconv.ParseInt(first, 10, 64)
		if err != nil {
			err = ErrParseNumber(first)
			return
		}
		constant = IntegerConstant(value)
	}

	m.Constant[name] = constant
	return
}

func (m *Machine) opPush(arg operands) (err error) {
	src, err := arg.word(1)
	if err != nil {
		return
	}

	var value int64
	reg, ok := ParseRegister(src)
	if ok {
		value = m.Register[reg]
	} else {
		value, err = strconv.ParseInt(src, 10, 64)
		if err != nil {
			err = ErrParseNumber(src)
			return
		}
	}

	m.Stack.Push(value)
	return
}

func (m *Machine) opPop(arg operands) (err error) {
	dst_word, err := arg.word(1)
	if err != nil {
		return
	}
	dst, err := m.register(dst_word)
	if err != nil {
		return
	}

	value, ok := m.Stack.Pop()
	if !ok {
		err = ErrStackEmpty
		return
	}

	m.Register[dst] = value
	return
}

func (m *Machine) opChadd(arg operands) (err error) {
	name, err := arg.word(1)
	if err != nil {
		return
	}

	_, ok := m.Channel[name]
	if ok {
		m.warn(ErrChannelExists(name))
		return
	}

	m.Channel[name] = &Channel{}
	return
}

func (m *Machine) opChdel(arg operands) (err error) {
	name, err := arg.word(1)
	if err != nil {
		return
	}

	_, ok := m.Channel[name]
	if !ok {
		err = ErrUnknownChannel(name)
		return
	}

	delete(m.Channel, name)
	if m.Active == name {
		m.Active = ""
	}
	return
}

func (m *Machine) opChswitch(arg operands) (err error) {
	name, err := arg.word(1)
	if err != nil {
		return
	}

	_, ok := m.Channel[name]
	if !ok {
		err = ErrUnknownChannel(name)
		return
	}

	m.Active = name
	return
}

func (m *Machine) opChin(arg operands) (err error) {
	ch, err := m.activeChannel()
	if err != nil {
		return
	}
	src, err := arg.word(1)
	if err != nil {
		return
	}

	value, err := m.value(src, false)
	if err != nil {
		return
	}

	ch.Send(value)
	return
}

func (m *Machine) opChout(arg operands) (err error) {
	ch, err := m.activeChannel()
	if err != nil {
		return
	}

	value, ok := ch.Receive()
	if !ok {
		err = ErrChannelEmpty(m.Active)
		return
	}

	m.emit(Line{Kind: LINE_CHANNEL, Name: m.Active, Text: strconv.FormatInt(value, 10)})
	return
}

func (m *Machine) opChmov(arg operands) (err error) {
	ch, err := m.activeChannel()
	if err != nil {
		return
	}
	if ch.Empty() {
		err = ErrChannelEmpty(m.Active)
		return
	}
	dst_word, err := arg.word(1)
	if err != nil {
		return
	}
	dst, err := m.register(dst_word)
	if err != nil {
		return
	}

	m.Register[dst], _ = ch.Receive()
	return
}

func (m *Machine) opPrtReg(arg operands) (err error) {
	word, err := arg.word(1)
	if err != nil {
		return
	}
	reg, err := m.register(word)
	if err != nil {
		return
	}

	m.emit(Line{Kind: LINE_REGISTER, Name: reg.String(), Text: strconv.FormatInt(m.Register[reg], 10)})
	return
}

func (m *Machine) opPrtStr(arg operands) (err error) {
	name, err := arg.word(1)
	if err != nil {
		return
	}

	constant, ok := m.Constant[name]
	switch {
	case !ok:
		m.warn(ErrUnknownConstant(name))
	case constant.Kind != CONSTANT_TEXT:
		m.warn(ErrConstantNotString(name))
	default:
		m.emit(Line{Kind: LINE_STRING, Text: constant.Text})
	}

	return
}

func (m *Machine) opCmp(arg operands) (err error) {
	a, b, err := m.registerPair(arg)
	if err != nil {
		return
	}

	m.Equal = m.Register[a] == m.Register[b]
	return
}

func (m *Machine) opJmp(arg operands) (err error) {
	label, err := arg.word(1)
	if err != nil {
		return
	}

	return m.jump(arg.labels, label)
}

func (m *Machine) opJe(arg operands) (err error) {
	label, err := arg.word(1)
	if err != nil {
		return
	}

	if m.Equal {
		err = m.jump(arg.labels, label)
	}
	return
}

func (m *Machine) opJne(arg operands) (err error) {
	label, err := arg.word(1)
	if err != nil {
		return
	}

	if !m.Equal {
		err = m.jump(arg.labels, label)
	}
	return
}
