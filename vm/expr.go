package vm

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalExpr evaluates a $(...) constant expression.
// Integer constants defined so far are visible by name.
func (m *Machine) evalExpr(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "const"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, constant := range m.Constant {
		if constant.Kind != CONSTANT_INTEGER {
			continue
		}
		pred[name] = starlark.MakeInt64(constant.Integer)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
