// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Machine is the complete state of a single program run.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int                 // Current instruction pointer.
	Register [REG_COUNT]int64    // Register bank.
	Constant map[string]Constant // Named constants.
	Stack    Stack               // Value stack.
	Channel  map[string]*Channel // Named channels.
	Active   string              // Active channel name, empty if none.
	Equal    bool                // EQUAL flag, set by cmp.

	Output   []Line  // Output lines, in emission order.
	Warnings []error // Non-fatal diagnostics, in emission order.

	Listener func(line Line) // If set, called as each line is emitted.
	Warn     func(err error) // If set, called as each warning is raised.

	next int // Instruction pointer after the current instruction.
}

// NewMachine creates a new machine in its reset state.
func NewMachine() (m *Machine) {
	m = &Machine{}
	m.Reset()

	return
}

// Reset the machine state.
// - Zeros the registers, the flag and the instruction pointer.
// - Clears the stack, constants, channels and collected output.
// Verbosity and the Listener and Warn hooks are kept.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Ip = 0
	clear(m.Register[:])
	m.Constant = make(map[string]Constant)
	m.Stack.Reset()
	m.Channel = make(map[string]*Channel)
	m.Active = ""
	m.Equal = false
	m.Output = nil
	m.Warnings = nil
}

// ActiveChannel returns the name of the active channel, if any.
func (m *Machine) ActiveChannel() (name string, ok bool) {
	return m.Active, len(m.Active) != 0
}

// Texts returns the bare values of the output lines.
func (m *Machine) Texts() (texts []string) {
	texts = make([]string, 0, len(m.Output))
	for _, line := range m.Output {
		texts = append(texts, line.Text)
	}

	return
}

// Execute executes a single instruction, and advances the instruction
// pointer. On error the instruction pointer is left unchanged, and
// no state has been modified by the failing instruction.
func (m *Machine) Execute(inst Instruction, labels Labels) (err error) {
	if m.Verbose {
		log.Printf("%03d: %v", m.Ip, inst)
	}

	m.next = m.Ip + 1

	if _, ok := inst.Label(); ok {
		m.Ip = m.next
		return
	}

	name := inst.Opcode()
	op, ok := ParseOpcode(name)
	if !ok {
		err = ErrUnknownCommand(name)
		return
	}

	err = opHandler[op](m, operands{op: op, words: inst.Words, labels: labels})
	if err != nil {
		return
	}

	m.Ip = m.next

	return
}

// emit records an output line.
func (m *Machine) emit(line Line) {
	if m.Verbose {
		log.Printf("vm: %v", line)
	}

	m.Output = append(m.Output, line)
	if m.Listener != nil {
		m.Listener(line)
	}
}

// warn records a non-fatal diagnostic.
func (m *Machine) warn(err error) {
	if m.Verbose {
		log.Printf("vm: warning: %v", err)
	}

	m.Warnings = append(m.Warnings, err)
	if m.Warn != nil {
		m.Warn(err)
	}
}

// register returns the register named by word.
func (m *Machine) register(word string) (reg Register, err error) {
	reg, ok := ParseRegister(word)
	if !ok {
		err = ErrUnknownRegister(strings.ToUpper(word))
	}
	return
}

// registerPair returns the two registers named by operands 1 and 2.
func (m *Machine) registerPair(arg operands) (dst, src Register, err error) {
	dst_word, err := arg.word(1)
	if err != nil {
		return
	}
	src_word, err := arg.word(2)
	if err != nil {
		return
	}

	dst, err = m.register(dst_word)
	if err != nil {
		return
	}
	src, err = m.register(src_word)
	return
}

// value resolves a source word to an integer: a register, then an
// integer constant. If literal is set, a decimal literal is tried first.
func (m *Machine) value(word string, literal bool) (value int64, err error) {
	if literal && isLiteral(word) {
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseNumber(word)
		}
		return
	}

	reg, ok := ParseRegister(word)
	if ok {
		value = m.Register[reg]
		return
	}

	constant, ok := m.Constant[word]
	if ok {
		if constant.Kind != CONSTANT_INTEGER {
			err = ErrConstantNotInteger(word)
			return
		}
		value = constant.Integer
		return
	}

	err = ErrUnknownSource(word)
	return
}

// activeChannel returns the active channel.
func (m *Machine) activeChannel() (ch *Channel, err error) {
	if len(m.Active) == 0 {
		err = ErrNoActiveChannel
		return
	}

	ch, ok := m.Channel[m.Active]
	if !ok {
		err = ErrUnknownChannel(m.Active)
	}
	return
}

// jump sets the next instruction pointer to a label.
func (m *Machine) jump(labels Labels, label string) (err error) {
	ip, ok := labels[label]
	if !ok {
		err = ErrUnknownLabel(label)
		return
	}

	m.next = ip
	return
}

// Registers iterates over the register names and values.
func (m *Machine) Registers() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for reg := range Register(REG_COUNT) {
			if !yield(reg.String(), strconv.FormatInt(m.Register[reg], 10)) {
				return
			}
		}
	}
}

// Constants iterates over the constants, sorted by name.
func (m *Machine) Constants() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for _, name := range slices.Sorted(maps.Keys(m.Constant)) {
			if !yield(name, m.Constant[name].String()) {
				return
			}
		}
	}
}

// Channels iterates over the channels and their queued values, sorted by name.
func (m *Machine) Channels() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for _, name := range slices.Sorted(maps.Keys(m.Channel)) {
			var values []string
			for value := range m.Channel[name].Values() {
				values = append(values, strconv.FormatInt(value, 10))
			}
			if !yield(name, "["+strings.Join(values, " ")+"]") {
				return
			}
		}
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{
		"ip",
		"equal",
		"A", "B", "C", "D",
		"stack",
		"channel",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%d", m.Ip)
		case "equal":
			strval = "false"
			if m.Equal {
				strval = "true"
			}
		case "A", "B", "C", "D":
			r, _ := ParseRegister(reg)
			strval = fmt.Sprintf("%d", m.Register[r])
		case "stack":
			val, ok := m.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%d (depth %d)", val, m.Stack.Len())
			} else {
				strval = "-"
			}
		case "channel":
			name, ok := m.ActiveChannel()
			if ok {
				strval = fmt.Sprintf("%v (%d queued)", name, m.Channel[name].Len())
			} else {
				strval = "-"
			}
		}
		text += fmt.Sprintf("% 7s: %v\n", reg, strval)
	}

	return
}
