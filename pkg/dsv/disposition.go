package dsv

type action uint8

const (
	actionContinue action = iota
	actionCancel
	actionError
)

// Disposition is the verdict returned by every callback and every parsing step.
// It tells the parser to keep going, to stop early, or to stop with an error.
//
// The zero value is Continue.
type Disposition struct {
	action action
	err    *ParseError
}

var (
	// Continue lets parsing proceed.
	Continue = Disposition{}
	// Cancel stops parsing without an error.
	Cancel = Disposition{action: actionCancel}
)

// Fail stops parsing with err as the outcome of the parse.
func Fail(err *ParseError) Disposition {
	if err == nil {
		panic("dsv: Fail called with nil error")
	}
	return Disposition{action: actionError, err: err}
}

// IsContinue reports whether parsing should proceed.
func (d Disposition) IsContinue() bool {
	return d.action == actionContinue
}

// IsCancel reports whether parsing was cancelled.
func (d Disposition) IsCancel() bool {
	return d.action == actionCancel
}

// Err returns the error carried by a failing disposition, or nil.
func (d Disposition) Err() *ParseError {
	return d.err
}

// Equal reports whether two dispositions are the same verdict. Two failures are equal
// when their errors match (see ParseError.Matches).
func (d Disposition) Equal(other Disposition) bool {
	if d.action != other.action {
		return false
	}
	if d.action == actionError {
		return d.err.Matches(other.err)
	}
	return true
}

// String returns "continue", "cancel" or the error message.
func (d Disposition) String() string {
	switch d.action {
	case actionCancel:
		return "cancel"
	case actionError:
		return "error: " + d.err.Error()
	default:
		return "continue"
	}
}
