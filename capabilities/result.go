package capabilities

// Result is the outcome of classifying a single image. A Result with a non-nil Err
// always reports every capability as false.
type Result struct {
	capabilities Capabilities
	// The reason the image could not be classified, if any.
	Err error
}

// Succeeded returns a Result wrapping c.
func Succeeded(c Capabilities) Result {
	return Result{
		capabilities: c,
	}
}

// Failed returns a Result for an image that could not be classified.
func Failed(err error) Result {
	return Result{
		Err: err,
	}
}

// OK reports whether the image was classified.
func (r Result) OK() bool {
	return r.Err == nil
}

// Capabilities returns the classified capabilities, or all false if classification failed.
func (r Result) Capabilities() Capabilities {

	if r.Err != nil {
		return Capabilities{}
	}

	return r.capabilities
}
