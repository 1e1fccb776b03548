package measure

// Work is a unit of work to be measured. Inputs are captured by the closure;
// the returned value is stored on the Sample and the error is handed back to
// the caller untouched.
type Work func() (any, error)

// Bind adapts a single-argument function to Work.
func Bind[A, R any](fn func(A) (R, error), arg A) Work {
	return func() (any, error) {
		return fn(arg)
	}
}

// Value adapts a function that returns a value and cannot fail.
func Value[R any](fn func() R) Work {
	return func() (any, error) {
		return fn(), nil
	}
}

// Func adapts a function with no result.
func Func(fn func()) Work {
	return func() (any, error) {
		fn()
		return nil, nil
	}
}
