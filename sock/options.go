// File: sock/options.go
// Author: momentics <momentics@gmail.com>
//
// Typed socket option descriptors. An option is identified by its
// protocol level, numeric option value and a human-readable name; the
// (level, opt) pairs are sourced from the platform socket headers in
// the per-platform option files. Options are process-wide constants
// and carry no per-socket state.

package sock

// BoolOption is a boolean-valued socket option.
type BoolOption struct {
	Name  string
	Level int
	Opt   int
}

// Uint64Option is an unsigned-integer-valued socket option.
type Uint64Option struct {
	Name  string
	Level int
	Opt   int
}
