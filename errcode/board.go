package errcode

import "strconv"

// Typed board errors. Each reports its Code and matches it under errors.Is,
// so callers can test either errors.As(&*UnknownPinError) or
// errors.Is(err, errcode.UnknownPin).

// DuplicateSymbolError names a symbol bound more than once in the merged table.
type DuplicateSymbolError struct {
	Symbol string
	First  int // declaration index of the first binding
	Second int // declaration index of the colliding binding
}

func (e *DuplicateSymbolError) Error() string {
	return string(DuplicateSymbol) + ": " + strconv.Quote(e.Symbol) +
		" declared at #" + strconv.Itoa(e.First) + " and #" + strconv.Itoa(e.Second)
}
func (e *DuplicateSymbolError) Code() Code           { return DuplicateSymbol }
func (e *DuplicateSymbolError) Is(target error) bool { return isCode(DuplicateSymbol, target) }

// UnknownPinError reports a pin index the target chip does not have.
type UnknownPinError struct {
	Symbol string
	Pin    int
	Chip   string
}

func (e *UnknownPinError) Error() string {
	s := string(UnknownPin) + ": pin " + strconv.Itoa(e.Pin)
	if e.Chip != "" {
		s += " not present on " + e.Chip
	}
	if e.Symbol != "" {
		s += " (symbol " + strconv.Quote(e.Symbol) + ")"
	}
	return s
}
func (e *UnknownPinError) Code() Code           { return UnknownPin }
func (e *UnknownPinError) Is(target error) bool { return isCode(UnknownPin, target) }

// UnknownSymbolError is a lookup miss. Recoverable.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return string(UnknownSymbol) + ": " + strconv.Quote(e.Symbol)
}
func (e *UnknownSymbolError) Code() Code           { return UnknownSymbol }
func (e *UnknownSymbolError) Is(target error) bool { return isCode(UnknownSymbol, target) }

// NotReadyError is returned for any access before construction completes.
type NotReadyError struct {
	Op string
}

func (e *NotReadyError) Error() string {
	if e.Op == "" {
		return string(NotReady)
	}
	return e.Op + ": " + string(NotReady)
}
func (e *NotReadyError) Code() Code           { return NotReady }
func (e *NotReadyError) Is(target error) bool { return isCode(NotReady, target) }

// BusCompositionError reports an invalid role set on a bus record.
type BusCompositionError struct {
	Symbol string
	Role   string
	Pin    int
	Reason string
	Err    error // underlying cause, e.g. *UnknownPinError or a driver error
}

func (e *BusCompositionError) Error() string {
	s := string(BusComposition) + ": " + strconv.Quote(e.Symbol)
	if e.Role != "" {
		s += " role " + e.Role
	}
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *BusCompositionError) Unwrap() error        { return e.Err }
func (e *BusCompositionError) Code() Code           { return BusComposition }
func (e *BusCompositionError) Is(target error) bool { return isCode(BusComposition, target) }
