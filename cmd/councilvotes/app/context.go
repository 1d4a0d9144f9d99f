package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals returns a context that is cancelled on SIGINT or
// SIGTERM. A cancelled build stops between input files and publishes
// nothing.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
