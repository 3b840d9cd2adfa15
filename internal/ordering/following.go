package ordering

import "iter"

// WithFollowing yields each element of s paired with the sub-slice of all
// elements after it. The tail for index i is s[i+1:] and aliases s.
func WithFollowing[T any](s []T) iter.Seq2[T, []T] {
	return func(yield func(T, []T) bool) {
		for i := range s {
			if !yield(s[i], s[i+1:]) {
				return
			}
		}
	}
}
