// Package vm implements the lexer, label resolver and machine for the
// Cirebon register machine.
//
// The machine consists of an instruction pointer (IP), four signed
// 64-bit general-purpose registers (A-D), an unbounded stack, a table
// of named integer or text constants, named FIFO channels of which at
// most one is active, and a single EQUAL flag set by comparisons.
//
// Source text is tokenized one instruction per line. Lines that are
// blank or start with ';' are skipped. A line whose first word ends in
// ':' declares a jump label.
package vm
