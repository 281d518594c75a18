// Package asyncio
// Author: momentics <momentics@gmail.com>
//
// Suspension-based asynchronous I/O over non-blocking sockets. A Loop
// drains readiness events from the platform reactor and wakes parked
// operations through selection keys; suspension parks the goroutine
// only, never the underlying thread. Suspension occurs exactly where a
// BlockingResult would otherwise report would-block.
package asyncio
