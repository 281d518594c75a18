// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the cross-platform readiness-notification
// reactor the asynchronous I/O contract registers with: epoll on Linux,
// WSAPoll on Windows. Level-style semantics: consumers retry the
// operation and re-wait on would-block rather than trusting one wakeup.
package reactor
