package vm

// Labels maps a jump label name to the index of its declaring instruction.
type Labels map[string]int

// ResolveLabels scans a program for label declarations.
// A label maps to its own instruction index; the label line itself
// executes as a no-op. Later declarations of the same name replace
// earlier ones.
func ResolveLabels(prog *Program) (labels Labels) {
	labels = make(Labels)

	if prog == nil {
		return
	}

	for ip, inst := range prog.Instructions {
		name, ok := inst.Label()
		if ok {
			labels[name] = ip
		}
	}

	return
}
