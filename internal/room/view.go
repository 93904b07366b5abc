package room

import "mafia-room/internal/domain"

// ChatMessage is one line in the room's chat buffer, present only
// during chat-phase.
type ChatMessage struct {
	Username string
	Text     string
}

// RoomView is the per-viewer projection of the entire Room: composed by
// View under the read lock, safe to hand to a caller after the lock is
// released since every field is a value copy.
type RoomView struct {
	ID         string
	Status     domain.Status
	Rules      domain.GameRules
	DayNumber  int
	Players    []domain.PlayerView
	Chat       []ChatMessage
	Voting     []domain.VoteView
	Events     []domain.EventView
}

// View returns username's projection of the room. Fails with
// ErrUnknownUser if username is not (or no longer) in the room.
func (r *Room) View(username string) (RoomView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	viewer, ok := r.players[username]
	if !ok {
		return RoomView{}, ErrUnknownUser
	}

	players := make([]domain.PlayerView, 0, len(r.order))
	for _, name := range r.order {
		players = append(players, r.players[name].ProjectFor(viewer))
	}

	var chat []ChatMessage
	if r.status == domain.StatusChatPhase {
		chat = append(chat, r.chat...)
	}

	// Only the public tally gets a structured view; mafia and sheriff
	// players learn their lane's tally through access-filtered EventLog
	// messages instead (see domain.EventLog.MafiaVote/SheriffVote).
	var voting []domain.VoteView
	if r.voting != nil {
		voting = r.voting.Project()
	}

	return RoomView{
		ID:        r.id,
		Status:    r.status,
		Rules:     r.rules,
		DayNumber: r.dayNumber,
		Players:   players,
		Chat:      chat,
		Voting:    voting,
		Events:    r.events.ProjectFor(viewer),
	}, nil
}

// HasPlayer reports whether username is currently in the room.
func (r *Room) HasPlayer(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.players[username]
	return ok
}
