// Package api
// Author: momentics <momentics@gmail.com>
//
// Contracts shared across the hioload-io runtime: the blocking-result
// protocol, the error taxonomy, stream and listener contracts, and the
// asynchronous read/write contract layered on top of readiness
// notification.
//
// Concrete implementations live in the sock, reactor and asyncio
// packages. Higher layers (codecs, TLS wrappers, file consumers) must
// program against these interfaces and never reach past them to the raw
// OS handle.
package api
