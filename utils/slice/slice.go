package slice

// Partition splits s into the elements for which keep returns true and the
// rest, preserving order in both.
func Partition[T any](s []T, keep func(T) bool) ([]T, []T) {
	kept := make([]T, 0, len(s))

	var dropped []T

	for _, v := range s {
		if keep(v) {
			kept = append(kept, v)
		} else {
			dropped = append(dropped, v)
		}
	}

	return kept, dropped
}

// Unique returns s without repeated items, keeping the first occurrence.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	unique := make([]T, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		unique = append(unique, v)
	}

	return unique
}
