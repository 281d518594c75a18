// File: api/stream.go
// Author: momentics <momentics@gmail.com>
//
// Generic readable/writeable/seekable stream contracts. Sockets and
// files implement these; data-moving calls speak BlockingResult.

package api

import "io"

// Readable is a byte source. Read transfers up to len(p) bytes into p
// and reports the count via BlockingResult. A count of zero on a
// stream-oriented handle means EOF.
type Readable interface {
	Read(p []byte) (BlockingResult, error)
}

// Writeable is a byte sink. Write transfers up to len(p) bytes from p.
// Partial writes are reported as-is; callers loop if a full transfer is
// required.
type Writeable interface {
	Write(p []byte) (BlockingResult, error)
}

// Seekable is a handle with a movable position.
type Seekable interface {
	Seek(offset int64, whence int) (int64, error)
}

// Stream is a full-duplex byte stream.
type Stream interface {
	Readable
	Writeable
	io.Closer
}

// SeekableStream is a bidirectional stream with a movable position,
// such as a regular file opened read-write.
type SeekableStream interface {
	Stream
	Seekable
}
