package ast

// Visibility describes whether a tuple shape is reachable from other files
// of the program (pub) or only from its defining file.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	default:
		return "private"
	}
}
