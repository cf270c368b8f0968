package advanced

import "github.com/pkg/errors"

// Threading errors up and down the split/flip/legalize primitives would add a
// lot of noise to code whose failures all mean the same thing: an invariant
// broke and the insertion must be undone. Instead, the primitives panic with
// an error, and the public API recovers, rolls back and returns it.

// Panic with an error.
func fatalf(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

// HandlePanicRecover converts a recovered value into an error. Anything that
// isn't an error is not ours, so it is re-panicked.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if err, ok := r.(error); ok {
			return err
		}
		panic(r)
	}
	return nil
}
