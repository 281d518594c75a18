// File: api/listener.go
// Author: momentics <momentics@gmail.com>
//
// Generic listener contract plus the scoped-acquisition helpers that
// guarantee accepted resources are released on every exit path.

package api

import (
	"errors"
	"io"
	"sync"
)

// Listener accepts connections of a concrete resource type.
type Listener[T io.Closer] interface {
	// UnsafeAccept returns a newly accepted resource. Ownership moves to
	// the caller, who must close it. "Unsafe" refers to the unmanaged
	// lifetime, not to memory safety.
	UnsafeAccept() (T, error)

	io.Closer
}

// Accept runs fn with a freshly accepted resource and closes the
// resource exactly once on every exit path, including panics raised by
// fn.
func Accept[T io.Closer](l Listener[T], fn func(T) error) error {
	res, err := l.UnsafeAccept()
	if err != nil {
		return err
	}
	defer res.Close()
	return fn(res)
}

// AcceptInto accepts a resource and transfers close-responsibility to
// an externally managed scope. The caller must not close the resource
// directly.
func AcceptInto[T io.Closer](l Listener[T], scope *CloseScope) (T, error) {
	res, err := l.UnsafeAccept()
	if err != nil {
		var zero T
		return zero, err
	}
	scope.Add(res)
	return res, nil
}

// CloseScope collects resources and releases them in LIFO order when
// the scope itself is closed. Close is idempotent; adding to a closed
// scope closes the resource immediately.
type CloseScope struct {
	mu      sync.Mutex
	closers []io.Closer
	closed  bool
}

// Add registers c for release when the scope closes.
func (s *CloseScope) Add(c io.Closer) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = c.Close()
		return
	}
	s.closers = append(s.closers, c)
	s.mu.Unlock()
}

// Close releases all registered resources, most recent first. Every
// resource is closed even when earlier closes fail; the combined error
// is returned.
func (s *CloseScope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
