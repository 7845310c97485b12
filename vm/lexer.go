// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"io"
	"strings"
)

// COMMENT starts a line that is skipped entirely.
const COMMENT = ";"

// appendLine appends a source line to the program, unless it is blank or a comment.
func (prog *Program) appendLine(lineno int, text string) {
	line := strings.TrimSpace(text)
	if len(line) == 0 || strings.HasPrefix(line, COMMENT) {
		return
	}

	prog.Instructions = append(prog.Instructions, Instruction{
		LineNo: lineno,
		Words:  strings.Fields(line),
	})
}

// Tokenize splits an input stream into a Program of whitespace
// separated instruction words, one instruction per non-blank,
// non-comment line. No instruction is validated.
func Tokenize(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	prog = &Program{}

	var lineno int
	for scanner.Scan() {
		lineno += 1
		prog.appendLine(lineno, scanner.Text())
	}

	err = scanner.Err()
	if err != nil {
		err = &ErrSyntax{LineNo: lineno + 1, Err: err}
		prog = nil
	}

	return
}

// TokenizeString tokenizes source text held in memory.
func TokenizeString(text string) (prog *Program) {
	prog = &Program{}

	for n, line := range strings.Split(text, "\n") {
		prog.appendLine(n+1, line)
	}

	return
}
