package testutils

// NewMutator returns a builder that starts from base() and applies the given
// mutations, so table tests only spell out what differs from a valid value.
func NewMutator[T any](base func() T) func(mutators ...func(*T)) T {
	return func(mutators ...func(*T)) T {
		v := base()
		for _, m := range mutators {
			m(&v)
		}

		return v
	}
}
