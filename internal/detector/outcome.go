package detector

import "fmt"

type Outcome int

const (
	Unknown Outcome = iota
	NoChange
	DuplicatePending
	Triggered
)

func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "no-change"
	case DuplicatePending:
		return "duplicate-pending"
	case Triggered:
		return "triggered"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
