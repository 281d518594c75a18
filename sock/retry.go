// File: sock/retry.go
// Author: momentics <momentics@gmail.com>

package sock

// Retry re-invokes call until it stops failing with EINTR
// (interrupted-by-signal). Nothing else is absorbed: any other failure
// is returned to the caller untranslated, and a success is returned on
// the first non-interrupted invocation.
func Retry[T ~int | ~int32 | ~int64 | ~uintptr](call func() (T, error)) (T, error) {
	for {
		n, err := call()
		if err != nil && isEINTR(err) {
			continue
		}
		return n, err
	}
}
