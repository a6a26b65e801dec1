package reactive

// identicalAny reports whether a and b are the same value by the
// identity-compare rule base interceptors use to decide SET vs no-op
// (spec §4.2: "new value ≠ old, identity compare"). Dynamic values that
// are not comparable (slices, maps held directly rather than through
// one of this package's container wrappers) are treated as always
// different, matching the conservative default of firing a trigger
// rather than silently missing one.
func identicalAny(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	equal = a == b
	return
}
