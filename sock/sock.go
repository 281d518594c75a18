// File: sock/sock.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral socket state machine and operation set. All raw
// syscalls are delegated to the sys* functions in the platform files.

package sock

import (
	"fmt"
	"math"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/sockaddr"
)

// ShutdownHow selects the direction(s) of a connection shutdown.
type ShutdownHow int

const (
	ShutdownRead ShutdownHow = iota
	ShutdownWrite
	ShutdownBoth
)

// Socket owns exactly one OS handle. Lifecycle is
// Unopened -> Open -> Closed: a Socket only exists in the Open state
// (factories and Accept are the sole constructors) and Close is the
// sole, idempotent way to release the handle. After Close every
// operation fails with api.ErrClosed.
//
// Single-socket operations from one goroutine are strictly ordered.
// One goroutine reading while another writes is permitted; concurrent
// Close races are resolved by the atomic closed flag. Anything beyond
// that is undefined except for "no use-after-close".
type Socket struct {
	family sockaddr.Family
	kind   sockaddr.SockKind
	proto  sockaddr.Protocol

	handle sysHandle

	closed      atomic.Bool
	nonblocking atomic.Bool
}

// TCP creates a stream socket for the given family.
func TCP(family sockaddr.Family) (*Socket, error) {
	return open(family, sockaddr.KindStream, sockaddr.ProtoTCP)
}

// UDP creates a datagram socket for the given family.
func UDP(family sockaddr.Family) (*Socket, error) {
	return open(family, sockaddr.KindDatagram, sockaddr.ProtoUDP)
}

func open(family sockaddr.Family, kind sockaddr.SockKind, proto sockaddr.Protocol) (*Socket, error) {
	h, err := sysSocket(family, kind, proto)
	if err != nil {
		return nil, mapSysErr("socket", err)
	}
	return &Socket{family: family, kind: kind, proto: proto, handle: h}, nil
}

// Family returns the socket's address family.
func (s *Socket) Family() sockaddr.Family { return s.family }

// Kind returns the socket's communication style.
func (s *Socket) Kind() sockaddr.SockKind { return s.kind }

// Protocol returns the socket's protocol number.
func (s *Socket) Protocol() sockaddr.Protocol { return s.proto }

// IsOpen reports whether the handle is still owned and usable.
func (s *Socket) IsOpen() bool { return !s.closed.Load() }

// RawHandle exposes the OS handle for event-loop registration. The
// Socket retains ownership; callers must not close or transfer it.
func (s *Socket) RawHandle() uintptr { return uintptr(s.handle) }

func (s *Socket) ensureOpen(call string) error {
	if s.closed.Load() {
		return fmt.Errorf("%s: %w", call, api.ErrClosed)
	}
	return nil
}

// Close releases the OS handle. Idempotent: concurrent and repeated
// calls are safe, and only the winning caller performs the release.
func (s *Socket) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := sysClose(s.handle); err != nil {
		return mapSysErr("close", err)
	}
	return nil
}

// NonBlocking reports the cached non-blocking flag, which mirrors the
// OS-level flag.
func (s *Socket) NonBlocking() bool { return s.nonblocking.Load() }

// SetNonBlocking toggles the OS-level non-blocking flag. The cached
// flag is kept consistent so redundant syscalls are skipped.
func (s *Socket) SetNonBlocking(v bool) error {
	if err := s.ensureOpen("set nonblocking"); err != nil {
		return err
	}
	if s.nonblocking.Load() == v {
		return nil
	}
	if err := sysSetNonblock(s.handle, v); err != nil {
		return mapSysErr("set nonblocking", err)
	}
	s.nonblocking.Store(v)
	return nil
}

// Connect establishes a connection to the endpoint.
//
// On a non-blocking socket it returns immediately: true means the
// connection completed synchronously, false means it is in progress and
// needs a writability notification before use.
//
// On a blocking socket it returns true on success or an error on
// failure. When timeout > 0 the attempt is bounded: the OS call is
// driven in non-blocking mode and awaited with a poll, so expiry leaves
// the handle in a defined not-connected state and surfaces
// api.ErrTimeout. The blocking flag is restored before returning.
func (s *Socket) Connect(ci sockaddr.ConnectionInfo, timeout time.Duration) (bool, error) {
	if err := s.ensureOpen("connect"); err != nil {
		return false, err
	}
	if ci == nil {
		return false, fmt.Errorf("connect: %w: nil endpoint", api.ErrNotSupported)
	}

	if s.nonblocking.Load() {
		err := sysConnect(s.handle, ci)
		if err == nil {
			return true, nil
		}
		if isInProgress(err) {
			return false, nil
		}
		return false, mapSysErr("connect", err)
	}

	if timeout <= 0 {
		_, err := Retry(func() (int, error) { return 0, sysConnect(s.handle, ci) })
		if err != nil {
			return false, mapSysErr("connect", err)
		}
		return true, nil
	}

	if err := sysSetNonblock(s.handle, true); err != nil {
		return false, mapSysErr("connect", err)
	}
	restore := func() { _ = sysSetNonblock(s.handle, false) }

	err := sysConnect(s.handle, ci)
	if err == nil {
		restore()
		return true, nil
	}
	if !isInProgress(err) {
		restore()
		return false, mapSysErr("connect", err)
	}

	ready, err := sysPollWait(s.handle, true, int(timeout.Milliseconds()))
	if err != nil {
		restore()
		return false, mapSysErr("connect", err)
	}
	if !ready {
		// Expiry races with the OS completing the handshake are resolved
		// in favor of the timeout: the socket reports not-connected and
		// must not be reused for another attempt.
		restore()
		return false, fmt.Errorf("connect %s: %w", ci, api.ErrTimeout)
	}
	code, soErr := sysSOError(s.handle)
	restore()
	if soErr != nil {
		return false, mapSysErr("connect", soErr)
	}
	if code != 0 {
		return false, mapSysErr("connect", syscall.Errno(code))
	}
	return true, nil
}

// Bind assigns the local endpoint.
func (s *Socket) Bind(ci sockaddr.ConnectionInfo) error {
	if err := s.ensureOpen("bind"); err != nil {
		return err
	}
	if err := sysBind(s.handle, ci); err != nil {
		return mapSysErr("bind", err)
	}
	return nil
}

// Listen marks the socket as passive with the given backlog.
func (s *Socket) Listen(backlog int) error {
	if err := s.ensureOpen("listen"); err != nil {
		return err
	}
	if err := sysListen(s.handle, backlog); err != nil {
		return mapSysErr("listen", err)
	}
	return nil
}

// Accept returns a new child socket for a pending connection. The
// child shares family/kind/protocol and inherits the parent's
// non-blocking flag at the moment of acceptance; raw POSIX accept
// resets the child to blocking, and this divergence is deliberate.
//
// A non-blocking listener with nothing pending returns (nil, nil): "no
// connection" is a normal outcome, not an error.
func (s *Socket) Accept() (*Socket, error) {
	if err := s.ensureOpen("accept"); err != nil {
		return nil, err
	}
	h, err := Retry(func() (sysHandle, error) { return sysAccept(s.handle) })
	if err != nil {
		if isWouldBlock(err) && s.nonblocking.Load() {
			return nil, nil
		}
		return nil, mapSysErr("accept", err)
	}
	child := &Socket{family: s.family, kind: s.kind, proto: s.proto, handle: h}
	nb := s.nonblocking.Load()
	if err := sysSetNonblock(h, nb); err != nil {
		_ = sysClose(h)
		return nil, mapSysErr("accept", err)
	}
	child.nonblocking.Store(nb)
	return child, nil
}

// finishIO applies the blocking-result protocol to a raw transfer
// outcome.
func (s *Socket) finishIO(call string, n int, err error) (api.BlockingResult, error) {
	if err == nil {
		return api.Transferred(n), nil
	}
	if isWouldBlock(err) {
		if !s.nonblocking.Load() {
			// A blocking handle must never report would-block; this is
			// an internal contract violation, not a recoverable state.
			panic(fmt.Sprintf("sock: %s on blocking socket reported would-block", call))
		}
		return api.WouldBlock, nil
	}
	return api.DidntBlock, mapSysErr(call, err)
}

// Recv transfers up to len(p) bytes from the socket into p. A count of
// zero on a stream socket means EOF.
func (s *Socket) Recv(p []byte) (api.BlockingResult, error) {
	if err := s.ensureOpen("recv"); err != nil {
		return api.DidntBlock, err
	}
	n, err := Retry(func() (int, error) { return sysRecv(s.handle, p) })
	return s.finishIO("recv", n, err)
}

// RecvFrom receives a datagram and its source endpoint. The peer is
// nil exactly when the result is WouldBlock. Using RecvFrom on a
// connection-oriented socket is a usage error and is enforced with
// api.ErrNotSupported.
func (s *Socket) RecvFrom(p []byte) (api.BlockingResult, sockaddr.ConnectionInfo, error) {
	if err := s.ensureOpen("recvfrom"); err != nil {
		return api.DidntBlock, nil, err
	}
	if s.kind == sockaddr.KindStream {
		return api.DidntBlock, nil, fmt.Errorf("recvfrom: %w on connection-oriented socket", api.ErrNotSupported)
	}
	var peer sockaddr.ConnectionInfo
	n, err := Retry(func() (int, error) {
		var rerr error
		var rn int
		rn, peer, rerr = sysRecvfrom(s.handle, p, s.kind)
		return rn, rerr
	})
	res, err := s.finishIO("recvfrom", n, err)
	if err != nil || res.Blocked() {
		return res, nil, err
	}
	return res, peer, nil
}

// Send transfers up to len(p) bytes. No retry beyond EINTR is
// performed: a partial send is reported as-is.
func (s *Socket) Send(p []byte) (api.BlockingResult, error) {
	if err := s.ensureOpen("send"); err != nil {
		return api.DidntBlock, err
	}
	n, err := Retry(func() (int, error) { return sysSend(s.handle, p) })
	return s.finishIO("send", n, err)
}

// SendTo sends one datagram to the endpoint. Datagram sockets only;
// connection-oriented sockets get api.ErrNotSupported.
func (s *Socket) SendTo(p []byte, ci sockaddr.ConnectionInfo) (api.BlockingResult, error) {
	if err := s.ensureOpen("sendto"); err != nil {
		return api.DidntBlock, err
	}
	if s.kind == sockaddr.KindStream {
		return api.DidntBlock, fmt.Errorf("sendto: %w on connection-oriented socket", api.ErrNotSupported)
	}
	n, err := Retry(func() (int, error) { return sysSendto(s.handle, p, ci) })
	return s.finishIO("sendto", n, err)
}

// SendAll repeats Send until the whole of p is transferred or EOF. The
// returned total equals len(p) unless the peer closed the connection
// first. On a non-blocking socket a would-block result is awaited with
// a writability poll, so SendAll is safe in either mode.
func (s *Socket) SendAll(p []byte) (int64, error) {
	var total int64
	for total < int64(len(p)) {
		res, err := s.Send(p[total:])
		if err != nil {
			if PeerClosed(err) {
				return total, nil
			}
			return total, err
		}
		if res.Blocked() {
			if _, werr := sysPollWait(s.handle, true, -1); werr != nil {
				return total, mapSysErr("sendall", werr)
			}
			continue
		}
		total += res.Count()
	}
	return total, nil
}

// Shutdown performs a half- or full-duplex shutdown without releasing
// the handle.
func (s *Socket) Shutdown(how ShutdownHow) error {
	if err := s.ensureOpen("shutdown"); err != nil {
		return err
	}
	if err := sysShutdown(s.handle, how); err != nil {
		return mapSysErr("shutdown", err)
	}
	return nil
}

// SetBoolOption sets a boolean-valued option.
func (s *Socket) SetBoolOption(o BoolOption, v bool) error {
	if err := s.ensureOpen("setsockopt " + o.Name); err != nil {
		return err
	}
	val := 0
	if v {
		val = 1
	}
	if err := sysSetsockoptInt(s.handle, o.Level, o.Opt, val); err != nil {
		return mapSysErr("setsockopt "+o.Name, err)
	}
	return nil
}

// GetBoolOption reads a boolean-valued option back.
func (s *Socket) GetBoolOption(o BoolOption) (bool, error) {
	if err := s.ensureOpen("getsockopt " + o.Name); err != nil {
		return false, err
	}
	v, err := sysGetsockoptInt(s.handle, o.Level, o.Opt)
	if err != nil {
		return false, mapSysErr("getsockopt "+o.Name, err)
	}
	return v != 0, nil
}

// SetUint64Option sets a numeric option. Values that do not fit the
// platform's C int option representation are rejected.
func (s *Socket) SetUint64Option(o Uint64Option, v uint64) error {
	if err := s.ensureOpen("setsockopt " + o.Name); err != nil {
		return err
	}
	if v > math.MaxInt32 {
		return fmt.Errorf("setsockopt %s: %w: value %d exceeds the option range", o.Name, api.ErrNotSupported, v)
	}
	if err := sysSetsockoptInt(s.handle, o.Level, o.Opt, int(v)); err != nil {
		return mapSysErr("setsockopt "+o.Name, err)
	}
	return nil
}

// GetUint64Option reads a numeric option back.
func (s *Socket) GetUint64Option(o Uint64Option) (uint64, error) {
	if err := s.ensureOpen("getsockopt " + o.Name); err != nil {
		return 0, err
	}
	v, err := sysGetsockoptInt(s.handle, o.Level, o.Opt)
	if err != nil {
		return 0, mapSysErr("getsockopt "+o.Name, err)
	}
	return uint64(v), nil
}

// LocalAddr returns the socket's bound local endpoint.
func (s *Socket) LocalAddr() (sockaddr.ConnectionInfo, error) {
	if err := s.ensureOpen("getsockname"); err != nil {
		return nil, err
	}
	ci, err := sysLocalInfo(s.handle, s.kind)
	if err != nil {
		return nil, mapSysErr("getsockname", err)
	}
	return ci, nil
}

// RemoteAddr returns the connected peer's endpoint.
func (s *Socket) RemoteAddr() (sockaddr.ConnectionInfo, error) {
	if err := s.ensureOpen("getpeername"); err != nil {
		return nil, err
	}
	ci, err := sysRemoteInfo(s.handle, s.kind)
	if err != nil {
		return nil, mapSysErr("getpeername", err)
	}
	return ci, nil
}

// Read implements api.Readable.
func (s *Socket) Read(p []byte) (api.BlockingResult, error) { return s.Recv(p) }

// Write implements api.Writeable.
func (s *Socket) Write(p []byte) (api.BlockingResult, error) { return s.Send(p) }
