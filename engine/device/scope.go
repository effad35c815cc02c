package device

// Scoped runs fn between bind and release and guarantees release runs on
// every exit path, including a panic unwinding through fn.
//
// Parameters:
//   - bind: acquires the binding and returns its release function
//   - fn: work performed while the binding is held
//
// Returns:
//   - error: the error returned by fn
func Scoped(bind func() (release func()), fn func() error) error {
	release := bind()
	defer release()
	return fn()
}
