package validate

// Validated is either a value or a non-empty list of errors. Combining two
// Validated values keeps the errors of both, so nothing short-circuits.
type Validated[T any] struct {
	value T
	errs  Errors
}

// Valid wraps a value.
func Valid[T any](v T) Validated[T] {
	return Validated[T]{value: v}
}

// Invalid wraps errors. At least one error is required.
func Invalid[T any](first Error, rest ...Error) Validated[T] {
	return Validated[T]{errs: append(Errors{first}, rest...)}
}

func invalid[T any](errs Errors) Validated[T] {
	return Validated[T]{errs: errs}
}

// IsValid reports whether v holds a value.
func (v Validated[T]) IsValid() bool {
	return len(v.errs) == 0
}

// Get returns the value and the errors; the value is meaningful only when
// errs is empty.
func (v Validated[T]) Get() (T, Errors) {
	return v.value, v.errs
}

// Errors returns the errors, nil when valid.
func (v Validated[T]) Errors() Errors {
	return v.errs
}

// Combine applies f when both a and b are valid; otherwise the result
// carries the errors of a followed by those of b.
func Combine[A, B, C any](a Validated[A], b Validated[B], f func(A, B) C) Validated[C] {
	if a.IsValid() && b.IsValid() {
		return Valid(f(a.value, b.value))
	}
	errs := make(Errors, 0, len(a.errs)+len(b.errs))
	errs = append(errs, a.errs...)
	errs = append(errs, b.errs...)
	return invalid[C](errs)
}

// Sequence turns a list of Validated values into a Validated list, keeping
// every error in order.
func Sequence[T any](vs []Validated[T]) Validated[[]T] {
	acc := Valid([]T{})
	for _, v := range vs {
		acc = Combine(acc, v, func(list []T, item T) []T {
			return append(list, item)
		})
	}
	return acc
}
