package trace

import "math"

// Decimate bounds a sequence to at most cap elements by uniform stride
// sampling. Sequences within the cap pass through untouched. Retained
// elements are verbatim, in their original relative order, and always
// include index 0. Stride rounding may yield fewer than cap elements;
// never more.
func Decimate[T any](in []T, cap int) []T {
	if len(in) <= cap {
		return in
	}
	stride := int(math.Ceil(float64(len(in)) / float64(cap)))
	out := make([]T, 0, cap)
	for i := 0; i < len(in); i += stride {
		out = append(out, in[i])
	}
	return out
}
