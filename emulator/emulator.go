// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs tokenized Cirebon programs to completion.
package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/cirebon/internal"
	"github.com/ezrec/cirebon/vm"
)

// Emulator state. Machine + program + labels.
type Emulator struct {
	Verbose     bool        // If set, enables verbose logging.
	MaxSteps    int         // If non-zero, halt after this many instructions.
	*vm.Machine             // Reference to the machine state.
	Program     *vm.Program // Reference to the currently running program.
	Labels      vm.Labels   // Jump labels of the program.

	Steps int // Instructions executed since reset.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(),
		Program: &vm.Program{},
		Labels:  vm.Labels{},
	}

	return
}

// TokenizeAndResolve tokenizes source text and resolves its labels.
func TokenizeAndResolve(text string) (prog *vm.Program, labels vm.Labels) {
	prog = vm.TokenizeString(text)
	labels = vm.ResolveLabels(prog)
	return
}

// Run a program on a fresh machine. The returned machine holds the
// final state and the output lines, also when err is set.
func Run(prog *vm.Program, labels vm.Labels) (m *vm.Machine, err error) {
	emu := NewEmulator()
	emu.Program = prog
	emu.Labels = labels

	err = emu.Run()
	m = emu.Machine
	return
}

// Load a program, resolving its labels, and reset the machine.
func (emu *Emulator) Load(prog *vm.Program) {
	emu.Program = prog
	emu.Labels = vm.ResolveLabels(prog)
	emu.Reset()
}

// Reset the machine state.
func (emu *Emulator) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()
	emu.Steps = 0
}

// State returns an iterator over the registers, constants and channels.
func (emu *Emulator) State() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Machine.Registers(),
		internal.IterSeq2Prefix("const.", emu.Machine.Constants()),
		internal.IterSeq2Prefix("channel.", emu.Machine.Channels()),
	)
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	inst := emu.Program.Debug(emu.Machine.Ip)
	if inst == nil {
		return 0
	}

	return inst.LineNo
}

// Tick executes a single instruction.
// done is set once the instruction pointer has left the program.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	ip := emu.Machine.Ip
	inst := emu.Program.Debug(ip)
	if inst == nil {
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: inst.LineNo, Ip: ip, Err: err}
		}
	}()

	if emu.MaxSteps > 0 && emu.Steps >= emu.MaxSteps {
		err = vm.ErrStepLimit
		return
	}

	err = emu.Machine.Execute(*inst, emu.Labels)
	if err != nil {
		return
	}

	emu.Steps++

	return
}

// Run executes from the current instruction pointer until the program
// ends or halts on an error.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: halt: %v", err)
			}
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: done after %d steps", emu.Steps)
	}

	return
}
