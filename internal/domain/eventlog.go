// This file contains the room's bounded, access-filtered event log.

package domain

import "fmt"

// EventLogCapacity bounds how many events the log retains; the oldest
// entry is evicted once a new one arrives at capacity.
const EventLogCapacity = 100

// AccessFunc decides whether a viewer may see a logged event.
type AccessFunc func(viewer *Player) bool

// EveryoneAccess is the default predicate: visible to any viewer.
func EveryoneAccess(viewer *Player) bool { return true }

// MafiaAccess restricts visibility to mafia members, alive or dead.
func MafiaAccess(viewer *Player) bool { return viewer.IsMafia() }

// SheriffAccess restricts visibility to sheriff members, alive or dead.
func SheriffAccess(viewer *Player) bool { return viewer.IsSheriff() }

// OnlyAccess restricts visibility to the single named player.
func OnlyAccess(username string) AccessFunc {
	return func(viewer *Player) bool { return viewer.Username == username }
}

type event struct {
	index   int
	message string
	access  AccessFunc
}

// EventLog is a bounded, append-only, ordered sequence of events. Each
// event carries a monotonic index — never reused, even past eviction —
// and an access predicate deciding which viewers see it.
type EventLog struct {
	events   []event
	nextIdx  int
	capacity int
}

// NewEventLog constructs an empty log at EventLogCapacity.
func NewEventLog() *EventLog {
	return &EventLog{capacity: EventLogCapacity}
}

// LastIndex returns the index assigned to the most recent Emit, or -1
// if nothing has been emitted yet.
func (l *EventLog) LastIndex() int {
	return l.nextIdx - 1
}

// Emit appends message under access, evicting the oldest entry if the
// log is at capacity. The assigned index is never reused.
func (l *EventLog) Emit(message string, access AccessFunc) {
	if access == nil {
		access = EveryoneAccess
	}
	if len(l.events) == l.capacity {
		l.events = l.events[1:]
	}
	l.events = append(l.events, event{index: l.nextIdx, message: message, access: access})
	l.nextIdx++
}

// EventView is one entry of a viewer's projected event log.
type EventView struct {
	Index   int
	Message string
}

// ProjectFor returns every retained event visible to viewer, in the
// order they were emitted.
func (l *EventLog) ProjectFor(viewer *Player) []EventView {
	views := make([]EventView, 0, len(l.events))
	for _, e := range l.events {
		if e.access(viewer) {
			views = append(views, EventView{Index: e.index, Message: e.message})
		}
	}
	return views
}

// --- Canonical message emitters ---
//
// These mirror the literal strings a client matches on to drive its own
// phase transitions; changing the wording here changes wire behavior.

func (l *EventLog) PlayerConnected(username string, connected, total int) {
	l.Emit(fmt.Sprintf("Player `%s` conntected: %d/%d", username, connected, total), EveryoneAccess)
}

func (l *EventLog) PlayerDisconnected(username string, connected, total int) {
	l.Emit(fmt.Sprintf("Player `%s` disconnected: %d/%d", username, connected, total), EveryoneAccess)
}

func (l *EventLog) RoleAssigned(username string, role Role) {
	l.Emit(fmt.Sprintf("You got role %s", role.Beautify()), OnlyAccess(username))
}

func (l *EventLog) DayBegan(day int) {
	l.Emit(fmt.Sprintf("DAY %d", day), EveryoneAccess)
}

func (l *EventLog) ChatPhaseBegan() {
	l.Emit("Day phase: chat", EveryoneAccess)
}

func (l *EventLog) VotePhaseBegan() {
	l.Emit("Day phase finished: vote for mafia (60 seconds)", EveryoneAccess)
}

func (l *EventLog) NightPhaseBegan() {
	l.Emit("Night phase: mafia choose victim, sheriffs investigate people (60 seconds)", EveryoneAccess)
}

func (l *EventLog) GlobalMessage(username, text string) {
	l.Emit(fmt.Sprintf("`%s`: %s", username, text), EveryoneAccess)
}

func (l *EventLog) MafiaMessage(username, text string) {
	l.Emit(fmt.Sprintf("`%s`: %s", username, text), MafiaAccess)
}

func (l *EventLog) SheriffMessage(username, text string) {
	l.Emit(fmt.Sprintf("`%s`: %s", username, text), SheriffAccess)
}

func (l *EventLog) BeginVoteRequested(username string, requested, alive, day int) {
	if day == 1 {
		l.Emit(fmt.Sprintf("`%s` wants to finish day phase: %d/%d", username, requested, alive), EveryoneAccess)
		return
	}
	l.Emit(fmt.Sprintf("`%s` wants to finish day phase and begin vote: %d/%d", username, requested, alive), EveryoneAccess)
}

func (l *EventLog) GlobalVote(suspect string, count int) {
	l.Emit(fmt.Sprintf("Votes for `%s`: %d", suspect, count), EveryoneAccess)
}

func (l *EventLog) MafiaVote(suspect string, count int) {
	l.Emit(fmt.Sprintf("Votes for `%s`: %d", suspect, count), MafiaAccess)
}

func (l *EventLog) SheriffVote(suspect string, count int) {
	l.Emit(fmt.Sprintf("Votes for `%s`: %d", suspect, count), SheriffAccess)
}

func (l *EventLog) PlayerKilled(username string, role Role) {
	l.Emit(fmt.Sprintf("Player was killed: `%s` (%s)", username, role.Beautify()), EveryoneAccess)
}

func (l *EventLog) ExposedToSheriffs(username string) {
	l.Emit(fmt.Sprintf("Player was exposed to sheriffs: `%s`. Now you expose him publicly", username), SheriffAccess)
}

func (l *EventLog) PlayerExposed(username string) {
	l.Emit(fmt.Sprintf("Player was exposed: `%s`", username), EveryoneAccess)
}

func (l *EventLog) MafiaWon() {
	l.Emit("Mafia WON!", EveryoneAccess)
}

func (l *EventLog) MafiaLost() {
	l.Emit("Mafia LOST!", EveryoneAccess)
}
