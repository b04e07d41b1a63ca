// Package lifecycle defines the ordered phases a control moves through.
package lifecycle

// Phase is a lifecycle stage. Values are ordered: a control only ever moves
// to a later phase.
type Phase int

const (
	New Phase = iota
	Inited
	Rendered
	Disposed
)

// String renders the phase label used in logs and metrics.
func (p Phase) String() string {
	switch p {
	case New:
		return "new"
	case Inited:
		return "inited"
	case Rendered:
		return "rendered"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// AtLeast reports whether p has reached target.
func (p Phase) AtLeast(target Phase) bool {
	return p >= target
}

// Advance returns next when it is later than p, otherwise p. It is the only
// way phases are meant to change.
func (p Phase) Advance(next Phase) Phase {
	if next > p {
		return next
	}
	return p
}
