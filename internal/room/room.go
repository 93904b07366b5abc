// Package room implements the Room state machine: the single piece of
// shared mutable state coordinating one Mafia game. A reader-writer
// lock guards the whole struct; exported mutators take the write lock
// and call unexported cascade helpers that assume it is already held,
// so a mutator invoking another mutator's logic (add_player ->
// start_game -> begin_new_day -> start_chat_phase) never deadlocks and
// never downgrades mid-cascade.
package room

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"mafia-room/internal/domain"
)

// EventSink receives a best-effort mirror of the events the Room's
// EventLog emits. Begin-vote requests are not mirrored, and a day start
// and its chat-phase start share one PhaseChanged. Publish is called
// synchronously under the write lock, so the mutation waits for it
// (internal/bus.Mirror included); a nil Sink disables mirroring entirely.
type EventSink interface {
	Publish(ctx context.Context, event any)
}

type noopSink struct{}

func (noopSink) Publish(context.Context, any) {}

// Options configures a new Room. Zero-value Options gets 60s phase
// timeouts and no event mirror.
type Options struct {
	// ID overrides the room's random 4-digit identifier. Left empty,
	// New generates one, matching the source's random assignment.
	ID                string
	VotePhaseTimeout  time.Duration
	NightPhaseTimeout time.Duration
	Sink              EventSink
	Logger            *zap.Logger
}

// Room is the authoritative coordinator for one Mafia game.
type Room struct {
	mu sync.RWMutex

	id        string
	dayNumber int
	rules     domain.GameRules
	status    domain.Status

	players map[string]*domain.Player
	order   []string // insertion order, for deterministic projections

	beginVote map[string]bool

	voting        *domain.Voting
	mafiaVoting   *domain.Voting
	sheriffVoting *domain.Voting

	chat []ChatMessage

	events *domain.EventLog
	colors *domain.ColorPool
	exposed map[string]struct{}

	timer      *time.Timer
	timerGen   int
	votePhaseTimeout  time.Duration
	nightPhaseTimeout time.Duration

	sink EventSink
	log  *zap.Logger
}

// New constructs a Room in waiting-for-players status, sized by rules.
// rules must already be Validate()'d; New panics if it is not.
func New(rules domain.GameRules, opts Options) *Room {
	if err := rules.Validate(); err != nil {
		panic(fmt.Sprintf("room: invalid game rules: %v", err))
	}

	sink := opts.Sink
	if sink == nil {
		sink = noopSink{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	votePhaseTimeout := opts.VotePhaseTimeout
	if votePhaseTimeout <= 0 {
		votePhaseTimeout = 60 * time.Second
	}
	nightPhaseTimeout := opts.NightPhaseTimeout
	if nightPhaseTimeout <= 0 {
		nightPhaseTimeout = 60 * time.Second
	}

	id := opts.ID
	if id == "" {
		id = newRoomID()
	}

	return &Room{
		id:                id,
		rules:             rules,
		status:            domain.StatusWaitingForPlayers,
		players:           make(map[string]*domain.Player),
		beginVote:         make(map[string]bool),
		events:            domain.NewEventLog(),
		colors:            domain.NewColorPool(),
		exposed:           make(map[string]struct{}),
		votePhaseTimeout:  votePhaseTimeout,
		nightPhaseTimeout: nightPhaseTimeout,
		sink:              sink,
		log:               log,
	}
}

// ID returns the room's 4-digit identifier.
func (r *Room) ID() string {
	return r.id
}

func newRoomID() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

// mirror best-effort publishes event to the room's EventSink. Callers
// hold the write lock, and the mutation that produced event waits until
// the sink's Publish returns.
func (r *Room) mirror(event any) {
	r.sink.Publish(context.Background(), event)
}
