// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp provides listener and dialer conveniences over the raw
// socket layer: resolve-and-bind, resolve-and-connect, retrying dials,
// and a logging accept loop.
package tcp
