package vm

import (
	"maps"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runLines executes a program on a fresh machine until it leaves the
// program or halts.
func runLines(lines ...string) (m *Machine, err error) {
	prog := TokenizeString(strings.Join(lines, "\n"))
	labels := ResolveLabels(prog)

	m = NewMachine()
	for m.Ip < prog.Len() {
		err = m.Execute(prog.Instructions[m.Ip], labels)
		if err != nil {
			return
		}
	}

	return
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	assert.False(m.Verbose)
	assert.Equal([REG_COUNT]int64{}, m.Register)
	assert.NotNil(m.Constant)
	assert.NotNil(m.Channel)
	assert.False(m.Equal)
	_, ok := m.ActiveChannel()
	assert.False(ok)
	assert.Empty(m.Texts())
}

func TestMachine_Reset(t *testing.T) {
	assert := assert.New(t)

	var lines []Line
	m, err := runLines(
		"mov A 3",
		"push A",
		"const k 4",
		"chadd c",
		"chswitch c",
		"chin A",
		"cmp A A",
		"prt_reg A",
	)
	assert.NoError(err)
	m.Listener = func(line Line) { lines = append(lines, line) }

	m.Reset()
	assert.Equal(0, m.Ip)
	assert.Equal([REG_COUNT]int64{}, m.Register)
	assert.True(m.Stack.Empty())
	assert.Empty(m.Constant)
	assert.Empty(m.Channel)
	assert.Equal("", m.Active)
	assert.False(m.Equal)
	assert.Empty(m.Output)
	assert.Empty(m.Warnings)
	assert.NotNil(m.Listener)
}

func TestMachine_Mov(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []string
		register [REG_COUNT]int64
	}){
		{"literal", []string{"mov A 5"}, [REG_COUNT]int64{5, 0, 0, 0}},
		{"negative", []string{"mov b -42"}, [REG_COUNT]int64{0, -42, 0, 0}},
		{"register", []string{"mov A 7", "mov d a"}, [REG_COUNT]int64{7, 0, 0, 7}},
		{"constant", []string{"const ten 10", "mov C ten"}, [REG_COUNT]int64{0, 0, 10, 0}},
		{"literal_first", []string{"const 12 99", "mov A 12"}, [REG_COUNT]int64{12, 0, 0, 0}},
		{"register_first", []string{"const B 99", "mov B 3", "mov A B"}, [REG_COUNT]int64{3, 3, 0, 0}},
		{"opcode_case", []string{"MOV A 1"}, [REG_COUNT]int64{1, 0, 0, 0}},
	}

	for _, entry := range table {
		m, err := runLines(entry.program...)
		assert.NoError(err, entry.name)
		assert.Equal(entry.register, m.Register, entry.name)
	}
}

func TestMachine_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []string
		expected int64
	}){
		{"add", []string{"mov A 3", "mov B 4", "add A B"}, 7},
		{"sub", []string{"mov A 3", "mov B 4", "sub A B"}, -1},
		{"mul", []string{"mov A -3", "mov B 4", "mul A B"}, -12},
		{"div", []string{"mov A 7", "mov B 2", "div A B"}, 3},
		{"div_floor_negative", []string{"mov A -7", "mov B 2", "div A B"}, -4},
		{"div_floor_divisor", []string{"mov A 7", "mov B -2", "div A B"}, -4},
		{"div_both_negative", []string{"mov A -7", "mov B -2", "div A B"}, 3},
		{"div_exact_negative", []string{"mov A -8", "mov B 2", "div A B"}, -4},
		{"self", []string{"mov A 6", "add A A"}, 12},
		{"wrap", []string{"mov A 9223372036854775807", "mov B 1", "add A B"}, math.MinInt64},
	}

	for _, entry := range table {
		m, err := runLines(entry.program...)
		assert.NoError(err, entry.name)
		assert.Equal(entry.expected, m.Register[REG_A], entry.name)
	}
}

func TestMachine_Const(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines(
		"const n -15",
		"const hello \"Hello,   big world!\"",
		"const single \"x\"",
		"const empty \"",
		"const n 16",
	)
	assert.NoError(err)

	assert.Equal(map[string]Constant{
		"n":      IntegerConstant(16),
		"hello":  TextConstant("Hello, big world!"),
		"single": TextConstant("x"),
		"empty":  TextConstant(""),
	}, m.Constant)

	// Unterminated string falls back to integer parsing.
	_, err = runLines("const bad \"open ended")
	assert.ErrorIs(err, ErrParseNumber("\"open"))

	_, err = runLines("const bad 12abc")
	assert.ErrorIs(err, ErrParseNumber("12abc"))

	_, err = runLines("const bad 99999999999999999999")
	assert.ErrorIs(err, ErrParseNumber("99999999999999999999"))
}

func TestMachine_StackOps(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines(
		"mov A 7",
		"push A",
		"pop B",
	)
	assert.NoError(err)
	assert.Equal(int64(7), m.Register[REG_B])
	assert.True(m.Stack.Empty())

	m, err = runLines(
		"push 1",
		"push -2",
		"push +3",
		"pop a",
		"pop b",
		"pop c",
	)
	assert.NoError(err)
	assert.Equal([REG_COUNT]int64{3, -2, 1, 0}, m.Register)

	m, err = runLines("push x")
	assert.ErrorIs(err, ErrParseNumber("x"))
	assert.True(m.Stack.Empty())

	m, err = runLines("mov A 1", "pop A")
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(int64(1), m.Register[REG_A])
	assert.Equal(1, m.Ip)
}

func TestMachine_Channels(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines(
		"mov A 3",
		"chadd c1",
		"chswitch c1",
		"chin A",
		"chout",
	)
	assert.NoError(err)
	assert.Equal([]Line{{Kind: LINE_CHANNEL, Name: "c1", Text: "3"}}, m.Output)
	assert.True(m.Channel["c1"].Empty())

	m, err = runLines(
		"const k 5",
		"mov B 6",
		"chadd q",
		"chswitch q",
		"chin k",
		"chin b",
		"chmov C",
		"chmov D",
	)
	assert.NoError(err)
	assert.Equal(int64(5), m.Register[REG_C])
	assert.Equal(int64(6), m.Register[REG_D])

	m, err = runLines(
		"chadd a",
		"chadd b",
		"chswitch a",
		"chdel a",
	)
	assert.NoError(err)
	_, ok := m.ActiveChannel()
	assert.False(ok)
	assert.Equal([]string{"b"}, keys(m.Channel))

	m, err = runLines(
		"chadd a",
		"chadd b",
		"chswitch a",
		"chdel b",
	)
	assert.NoError(err)
	name, ok := m.ActiveChannel()
	assert.True(ok)
	assert.Equal("a", name)
}

func keys[V any](in map[string]V) (out []string) {
	for key := range maps.Keys(in) {
		out = append(out, key)
	}
	return
}

func TestMachine_ChannelExists(t *testing.T) {
	assert := assert.New(t)

	var warned []error
	prog := TokenizeString("chadd c\nchswitch c\nmov A 2\nchin A\nchadd c\nchout")
	m := NewMachine()
	m.Warn = func(err error) { warned = append(warned, err) }
	for m.Ip < prog.Len() {
		assert.NoError(m.Execute(prog.Instructions[m.Ip], nil))
	}

	assert.Equal([]error{ErrChannelExists("c")}, m.Warnings)
	assert.Equal(m.Warnings, warned)
	// The existing channel keeps its contents.
	assert.Equal([]string{"2"}, m.Texts())
}

func TestMachine_Print(t *testing.T) {
	assert := assert.New(t)

	var heard []Line
	prog := TokenizeString(strings.Join([]string{
		"mov A 5",
		"prt_reg A",
		"const msg \"hi there\"",
		"prt_str msg",
		"prt_str missing",
		"const n 1",
		"prt_str n",
		"prt_reg a",
	}, "\n"))

	m := NewMachine()
	m.Listener = func(line Line) { heard = append(heard, line) }
	for m.Ip < prog.Len() {
		assert.NoError(m.Execute(prog.Instructions[m.Ip], nil))
	}

	expected := []Line{
		{Kind: LINE_REGISTER, Name: "A", Text: "5"},
		{Kind: LINE_STRING, Text: "hi there"},
		{Kind: LINE_REGISTER, Name: "A", Text: "5"},
	}
	assert.Equal(expected, m.Output)
	assert.Equal(expected, heard)
	assert.Equal([]string{"5", "hi there", "5"}, m.Texts())
	assert.Equal([]error{ErrUnknownConstant("missing"), ErrConstantNotString("n")}, m.Warnings)
}

func TestLine_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("--> Register 'A': 5", Line{Kind: LINE_REGISTER, Name: "A", Text: "5"}.String())
	assert.Equal("--> String output: hi", Line{Kind: LINE_STRING, Text: "hi"}.String())
	assert.Equal("--> Output from channel 'c1': 3", Line{Kind: LINE_CHANNEL, Name: "c1", Text: "3"}.String())
}

func TestMachine_Jumps(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines(
		"jmp skip",
		"mov A 1",
		"skip:",
		"mov A 2",
		"prt_reg A",
	)
	assert.NoError(err)
	assert.Equal([]string{"2"}, m.Texts())

	// Count down from 3.
	m, err = runLines(
		"mov A 3",
		"mov B 1",
		"mov C 0",
		"loop:",
		"prt_reg A",
		"sub A B",
		"cmp A C",
		"jne loop",
	)
	assert.NoError(err)
	assert.Equal([]string{"3", "2", "1"}, m.Texts())
	assert.True(m.Equal)

	m, err = runLines(
		"mov A 1",
		"mov B 2",
		"cmp A B",
		"je nowhere",
		"prt_reg A",
	)
	assert.NoError(err)
	assert.False(m.Equal)
	assert.Equal([]string{"1"}, m.Texts())

	m, err = runLines(
		"cmp A B",
		"jne nowhere",
		"prt_reg A",
	)
	assert.NoError(err)
	assert.True(m.Equal)
	assert.Equal([]string{"0"}, m.Texts())

	m, err = runLines(
		"cmp A B",
		"je done",
		"prt_reg A",
		"done:",
	)
	assert.NoError(err)
	assert.Empty(m.Texts())
}

func TestMachine_Halts(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		ip      int
	}){
		{"unknown_command", []string{"nop"}, ErrUnknownCommand("nop"), 0},
		{"unknown_command_case", []string{"mov A 1", "HALT"}, ErrUnknownCommand("halt"), 1},
		{"mov_incomplete", []string{"mov A"}, ErrIncompleteCommand("mov"), 0},
		{"mov_source", []string{"mov A nothing"}, ErrUnknownSource("nothing"), 0},
		{"mov_target", []string{"mov E 1"}, ErrUnknownRegister("E"), 0},
		{"mov_text", []string{"const s \"x\"", "mov A s"}, ErrConstantNotInteger("s"), 1},
		{"add_register", []string{"add A x"}, ErrUnknownRegister("X"), 0},
		{"sub_incomplete", []string{"sub A"}, ErrIncompleteCommand("sub"), 0},
		{"mul_register", []string{"mul Q A"}, ErrUnknownRegister("Q"), 0},
		{"div_zero", []string{"mov A 10", "mov B 0", "div A B"}, ErrDivisionByZero, 2},
		{"const_incomplete", []string{"const x"}, ErrIncompleteCommand("const"), 0},
		{"push_incomplete", []string{"push"}, ErrIncompleteCommand("push"), 0},
		{"pop_empty", []string{"pop A"}, ErrStackEmpty, 0},
		{"pop_register", []string{"push 1", "pop Z"}, ErrUnknownRegister("Z"), 1},
		{"chadd_incomplete", []string{"chadd"}, ErrIncompleteCommand("chadd"), 0},
		{"chdel_missing", []string{"chdel c"}, ErrUnknownChannel("c"), 0},
		{"chswitch_missing", []string{"chswitch c"}, ErrUnknownChannel("c"), 0},
		{"chin_inactive", []string{"chin A"}, ErrNoActiveChannel, 0},
		{"chin_inactive_first", []string{"chin"}, ErrNoActiveChannel, 0},
		{"chin_source", []string{"chadd c", "chswitch c", "chin 5"}, ErrUnknownSource("5"), 2},
		{"chin_incomplete", []string{"chadd c", "chswitch c", "chin"}, ErrIncompleteCommand("chin"), 2},
		{"chout_inactive", []string{"chout"}, ErrNoActiveChannel, 0},
		{"chout_empty", []string{"chadd c", "chswitch c", "chout"}, ErrChannelEmpty("c"), 2},
		{"chout_deleted", []string{"chadd c", "chswitch c", "chdel c", "chout"}, ErrNoActiveChannel, 3},
		{"chmov_inactive", []string{"chmov A"}, ErrNoActiveChannel, 0},
		{"chmov_empty", []string{"chadd c", "chswitch c", "chmov A"}, ErrChannelEmpty("c"), 2},
		{"prt_reg_unknown", []string{"prt_reg R"}, ErrUnknownRegister("R"), 0},
		{"prt_str_incomplete", []string{"prt_str"}, ErrIncompleteCommand("prt_str"), 0},
		{"cmp_register", []string{"cmp A E"}, ErrUnknownRegister("E"), 0},
		{"jmp_label", []string{"jmp away"}, ErrUnknownLabel("away"), 0},
		{"jmp_incomplete", []string{"jmp"}, ErrIncompleteCommand("jmp"), 0},
		{"je_incomplete", []string{"je"}, ErrIncompleteCommand("je"), 0},
		{"je_label", []string{"cmp A B", "je away"}, ErrUnknownLabel("away"), 1},
		{"jne_label", []string{"jne away"}, ErrUnknownLabel("away"), 0},
	}

	for _, entry := range table {
		m, err := runLines(entry.program...)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(entry.ip, m.Ip, entry.name)
	}
}

func TestMachine_HaltKeepsState(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines("mov A 10", "mov B 0", "div A B", "mov A 1")
	assert.ErrorIs(err, ErrDivisionByZero)
	assert.Equal(int64(10), m.Register[REG_A])
	assert.Equal(2, m.Ip)

	m, err = runLines("chadd c", "chswitch c", "mov A 4", "chin A", "chmov X")
	assert.ErrorIs(err, ErrUnknownRegister("X"))
	assert.Equal(1, m.Channel["c"].Len())
}

func TestMachine_LabelNoop(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	err := m.Execute(Instruction{Words: []string{"here:", "mov", "A", "1"}}, nil)
	assert.NoError(err)
	assert.Equal(1, m.Ip)
	assert.Equal(int64(0), m.Register[REG_A])

	err = m.Execute(Instruction{}, nil)
	assert.ErrorIs(err, ErrUnknownCommand(""))
	assert.Equal(1, m.Ip)
}

func TestMachine_State(t *testing.T) {
	assert := assert.New(t)

	m, err := runLines(
		"mov A 1",
		"mov D -4",
		"push D",
		"const z 3",
		"const a \"text\"",
		"chadd in",
		"chadd out",
		"chswitch out",
		"chin A",
		"chin D",
	)
	assert.NoError(err)

	assert.Equal(map[string]string{"A": "1", "B": "0", "C": "0", "D": "-4"}, maps.Collect(m.Registers()))

	var names []string
	for name, value := range m.Constants() {
		names = append(names, name+"="+value)
	}
	assert.Equal([]string{"a=\"text\"", "z=3"}, names)

	names = nil
	for name, value := range m.Channels() {
		names = append(names, name+"="+value)
	}
	assert.Equal([]string{"in=[]", "out=[1 -4]"}, names)

	text := m.String()
	assert.Contains(text, "ip: 10")
	assert.Contains(text, "D: -4")
	assert.Contains(text, "stack: -4 (depth 1)")
	assert.Contains(text, "channel: out (2 queued)")
}
