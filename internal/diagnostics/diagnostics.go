// Package diagnostics defines the error kinds and position-carrying
// diagnostic type shared by the lexer, parser, and evaluator.
package diagnostics

import "fmt"

// Kind classifies a Diagnostic by the phase and reason it was raised.
type Kind int

const (
	Lex Kind = iota
	Parse
	Name
	Type
	Assign
	Index
	Key
	DivZero
	Arg
	Import
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "LexErr"
	case Parse:
		return "ParseErr"
	case Name:
		return "NameErr"
	case Type:
		return "TypeErr"
	case Assign:
		return "AssignErr"
	case Index:
		return "IndexErr"
	case Key:
		return "KeyErr"
	case DivZero:
		return "DivZeroErr"
	case Arg:
		return "ArgErr"
	case Import:
		return "ImportErr"
	default:
		return "RuntimeErr"
	}
}

// Position is a 1-based (line, column) source location.
type Position struct {
	Line   int
	Column int
}

// Diagnostic carries the information a caller needs to report an error: a kind, a
// position (when available), and a human message.
type Diagnostic struct {
	Kind    Kind
	File    string
	Pos     Position
	Message string
}

// New builds a Diagnostic at a given position.
func New(kind Kind, file string, pos Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		File:    file,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface, rendering the one-line form
// format: File '<file>', line <l>, column <c>: <message>.
func (d *Diagnostic) Error() string {
	if d.File == "" {
		return fmt.Sprintf("line %d, column %d: %s", d.Pos.Line, d.Pos.Column, d.Message)
	}
	return fmt.Sprintf("File '%s', line %d, column %d: %s", d.File, d.Pos.Line, d.Pos.Column, d.Message)
}

// FormatAll renders a batch of diagnostics, one per line.
func FormatAll(diags []*Diagnostic) string {
	out := ""
	for i, d := range diags {
		if i > 0 {
			out += "\n"
		}
		out += d.Error()
	}
	return out
}

// RiftError is satisfied by any runtime failure the evaluator raises; it
// lets try/catch recognize "language errors" distinctly from Go-level
// control-flow signals.
type RiftError interface {
	error
	DiagKind() Kind
}

func (d *Diagnostic) DiagKind() Kind { return d.Kind }

var _ RiftError = (*Diagnostic)(nil)
