package errcode

// Code is a stable, tool-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Construction
	DuplicateSymbol    Code = "duplicate_symbol"
	UnknownPin         Code = "unknown_pin"
	BusComposition     Code = "bus_composition"
	InvalidDefinition  Code = "invalid_definition"
	AlreadyInitialized Code = "already_initialized"

	// Lookup
	UnknownSymbol Code = "unknown_symbol"
	NotReady      Code = "not_ready"
	WrongKind     Code = "wrong_kind"
	UnknownBoard  Code = "unknown_board"

	Error Code = "error" // generic fallback
)

// E is the optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error        { return e.Err }
func (e *E) Code() Code           { return e.C }
func (e *E) Is(target error) bool { return isCode(e.C, target) }

// Wrap attaches a code and operation to err. Nil in, nil out.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return Of(inner)
		}
	}
	return Error
}

func isCode(c Code, target error) bool {
	t, ok := target.(Code)
	return ok && t == c
}
