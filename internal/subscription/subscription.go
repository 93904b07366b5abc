// Package subscription drives the long-running per-viewer stream over
// a Room: poll View at a fixed interval, emit only when it changed.
package subscription

import (
	"context"
	"reflect"
	"time"

	"github.com/xyproto/randomstring"
	"go.uber.org/zap"

	"mafia-room/internal/metrics"
	"mafia-room/internal/room"
)

// Viewer is the subset of *room.Room a subscription needs. Declared as
// an interface so tests can substitute a fake without a real Room.
type Viewer interface {
	View(username string) (room.RoomView, error)
}

// Stream polls viewer.View(username) at interval and sends a copy to
// the returned channel every time the projection changes (by value
// equality), skipping identical consecutive views. The channel is
// closed when ctx is cancelled or the viewer returns room.ErrUnknownUser
// (the subscriber left, or never joined).
//
// Each call is tagged with a short random token purely for log
// correlation across reconnects; it carries no protocol meaning.
func Stream(ctx context.Context, viewer Viewer, username string, interval time.Duration, log *zap.Logger) <-chan room.RoomView {
	if log == nil {
		log = zap.NewNop()
	}
	token := randomstring.String(6)
	out := make(chan room.RoomView)

	go func() {
		defer close(out)

		log.Debug("subscription: started", zap.String("username", username), zap.String("token", token))
		metrics.ActiveSubscriptions.Inc()
		defer metrics.ActiveSubscriptions.Dec()
		defer log.Debug("subscription: ended", zap.String("username", username), zap.String("token", token))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var previous room.RoomView
		haveSent := false

		for {
			start := time.Now()
			current, err := viewer.View(username)
			metrics.ViewComputeDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				log.Debug("subscription: ending, viewer error",
					zap.String("username", username), zap.String("token", token), zap.Error(err))
				return
			}

			if !haveSent || !reflect.DeepEqual(current, previous) {
				select {
				case out <- current:
					previous = current
					haveSent = true
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}
