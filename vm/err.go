package vm

import (
	"errors"

	"github.com/ezrec/cirebon/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrDivisionByZero  = errors.New(f("division by zero"))
	ErrStackEmpty      = errors.New(f("stack is empty"))
	ErrNoActiveChannel = errors.New(f("no active channel"))
	ErrStepLimit       = errors.New(f("step limit reached"))
)

type ErrUnknownCommand string

func (err ErrUnknownCommand) Error() string {
	return f("unknown command '%v'", string(err))
}

type ErrIncompleteCommand string

func (err ErrIncompleteCommand) Error() string {
	return f("incomplete command '%v'", string(err))
}

type ErrUnknownSource string

func (err ErrUnknownSource) Error() string {
	return f("unknown source '%v'", string(err))
}

type ErrUnknownRegister string

func (err ErrUnknownRegister) Error() string {
	return f("unknown register '%v'", string(err))
}

type ErrUnknownConstant string

func (err ErrUnknownConstant) Error() string {
	return f("unknown constant '%v'", string(err))
}

type ErrUnknownChannel string

func (err ErrUnknownChannel) Error() string {
	return f("channel '%v' does not exist", string(err))
}

type ErrUnknownLabel string

func (err ErrUnknownLabel) Error() string {
	return f("unknown label '%v'", string(err))
}

type ErrChannelEmpty string

func (err ErrChannelEmpty) Error() string {
	return f("channel '%v' is empty", string(err))
}

// ErrChannelExists is a warning; the run continues.
type ErrChannelExists string

func (err ErrChannelExists) Error() string {
	return f("channel '%v' already exists", string(err))
}

// ErrConstantNotString is a warning; the run continues.
type ErrConstantNotString string

func (err ErrConstantNotString) Error() string {
	return f("constant '%v' is not a string", string(err))
}

type ErrConstantNotInteger string

func (err ErrConstantNotInteger) Error() string {
	return f("constant '%v' is not an integer", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax indicates the source line that could not be read.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
