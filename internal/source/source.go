// Package source produces feed entries: a simulated chat room for demos and
// a follower that tails a JSON lines file.
package source

import (
	"context"
	"errors"

	"livefeed/internal/feed"
)

// ErrSourceClosed is returned by producers that stopped because their
// context ended. Callers treat it as a normal shutdown.
var ErrSourceClosed = errors.New("source closed")

// send delivers e unless ctx ends first.
func send(ctx context.Context, out chan<- feed.Entry, e feed.Entry) error {
	select {
	case <-ctx.Done():
		return ErrSourceClosed
	case out <- e:
		return nil
	}
}
