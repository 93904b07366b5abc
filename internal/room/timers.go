package room

import (
	"time"

	"go.uber.org/zap"
)

// armTimer cancels any timer currently armed and schedules fire after
// duration. Callers hold the write lock. The fired callback acquires
// the lock fresh (per spec.md's concurrency model: timer callbacks
// never run inside an already-held lock) and checks the generation
// counter first, so a timer that raced with an everyone-voted early
// finish becomes a silent no-op instead of double-finishing the phase.
func (r *Room) armTimer(duration time.Duration, onFire func()) {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timerGen++
	gen := r.timerGen

	r.timer = time.AfterFunc(duration, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if gen != r.timerGen {
			r.log.Debug("room: stale timer fire ignored", zap.String("room_id", r.id))
			return
		}
		r.timer = nil
		onFire()
	})
}

// disarmTimer cancels the current timer, if any, and bumps the
// generation so a fire already in flight becomes a no-op. Callers hold
// the write lock; used when an early-finish condition (everyone voted)
// preempts the timer.
func (r *Room) disarmTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerGen++
}
