package gamestate

// Side identifies one of the two player characters.
type Side string

const (
	Light  Side = "LIGHT"
	Shadow Side = "SHADOW"
)

// Sides lists every side in simulation order. Per-tick work that touches both
// players iterates this slice so that replays visit them identically.
var Sides = []Side{Light, Shadow}

func (s Side) Valid() bool {
	return s == Light || s == Shadow
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Light {
		return Shadow
	}
	return Light
}

// ContainsSide reports whether set holds s.
func ContainsSide(set []Side, s Side) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// AddSide appends s when it is not already present. Sets never hold duplicates.
func AddSide(set []Side, s Side) []Side {
	if ContainsSide(set, s) {
		return set
	}
	return append(set, s)
}

// RemoveSide returns set without s, keeping the order of the remaining
// entries. set itself is left untouched.
func RemoveSide(set []Side, s Side) []Side {
	out := make([]Side, 0, len(set))
	for _, v := range set {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
