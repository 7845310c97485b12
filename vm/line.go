package vm

// LineKind identifies the instruction that emitted an output line.
type LineKind int

//go:generate go tool stringer -linecomment -type=LineKind
const (
	LINE_REGISTER = LineKind(0) // register
	LINE_STRING   = LineKind(1) // string
	LINE_CHANNEL  = LineKind(2) // channel
)

// Line is a single user-visible output line.
type Line struct {
	Kind LineKind
	Name string // Register or channel name; empty for strings.
	Text string // Bare value.
}

// String returns the decorated form of the line.
func (line Line) String() string {
	switch line.Kind {
	case LINE_REGISTER:
		return f("--> Register '%v': %v", line.Name, line.Text)
	case LINE_CHANNEL:
		return f("--> Output from channel '%v': %v", line.Name, line.Text)
	default:
		return f("--> String output: %v", line.Text)
	}
}
