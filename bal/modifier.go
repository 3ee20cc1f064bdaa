// modifier.go implements the transform pipeline used by deliberately-invalid
// scenarios to reshape a producer's output before fixture comparison. The
// common verification path never goes through it: an expectation without an
// attached transform passes lists through untouched.
package bal

// Transform is a pure function from one block access list to another. A
// transform must not mutate its input; start from Copy when editing in
// place.
type Transform func(BlockAccessList) BlockAccessList

// Compose chains transforms so each consumes the previous one's output, in
// argument order. Nil transforms are skipped.
func Compose(transforms ...Transform) Transform {
	chain := make([]Transform, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			chain = append(chain, t)
		}
	}
	return func(list BlockAccessList) BlockAccessList {
		for _, t := range chain {
			list = t(list)
		}
		return list
	}
}

// Modify returns a deep copy of the expectation with the composed transforms
// attached, replacing any transform attached earlier. The receiver is left
// untouched.
func (e *Expectation) Modify(transforms ...Transform) *Expectation {
	out := e.clone()
	out.modifier = Compose(transforms...)
	return out
}

// ApplyModifier applies the attached transform if one is present and passes
// the list through unchanged otherwise.
func (e *Expectation) ApplyModifier(list BlockAccessList) BlockAccessList {
	if e == nil || e.modifier == nil {
		return list
	}
	return e.modifier(list)
}
