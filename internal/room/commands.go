package room

import (
	"go.uber.org/zap"

	"mafia-room/internal/domain"
	"mafia-room/internal/events"
)

// AddPlayer adds username to the room while waiting-for-players, and
// starts the game the instant the room fills to capacity. Returns
// ErrUsernameTaken if username is already present or the room is no
// longer waiting for players. Running out of display colors is a silent
// no-op.
func (r *Room) AddPlayer(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.players[username]; taken {
		return ErrUsernameTaken
	}
	if r.status.Terminal() || r.status != domain.StatusWaitingForPlayers {
		r.log.Debug("room: add_player rejected, not waiting for players", zap.String("username", username))
		return ErrUsernameTaken
	}

	color, err := r.colors.Acquire()
	if err != nil {
		r.log.Debug("room: add_player no-op, no colors left", zap.String("username", username))
		return nil
	}

	r.players[username] = domain.NewPlayer(username, color)
	r.order = append(r.order, username)
	r.beginVote[username] = false

	r.events.PlayerConnected(username, len(r.players), r.rules.ActivePlayersNumber)
	r.mirror(events.PlayerConnected{
		BaseEvent: r.header(events.TypePlayerConnected),
		Username:  username,
		Connected: len(r.players),
		Total:     r.rules.ActivePlayersNumber,
	})

	if len(r.players) == r.rules.ActivePlayersNumber {
		r.startGame()
	}
	return nil
}

// RemovePlayer drops username from the room. While waiting-for-players
// this frees their color back to the pool and erases them entirely;
// once the game has started the player becomes a disconnected phantom —
// still addressable by every rule in the state machine, just absent
// from future transport — mirroring the source's disconnect semantics.
// Once the room has reached a terminal status, RemovePlayer is a
// no-op: no command mutates state or emits an event after the game
// has ended.
func (r *Room) RemovePlayer(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[username]; !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() {
		return nil
	}

	if r.status == domain.StatusWaitingForPlayers {
		p := r.players[username]
		r.colors.Release(p.Color)
		delete(r.players, username)
		delete(r.beginVote, username)
		for i, name := range r.order {
			if name == username {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}

	r.events.PlayerDisconnected(username, len(r.players), r.rules.ActivePlayersNumber)
	r.mirror(events.PlayerDisconnected{
		BaseEvent: r.header(events.TypePlayerDisconnected),
		Username:  username,
		Connected: len(r.players),
		Total:     r.rules.ActivePlayersNumber,
	})
	return nil
}

// SendMessage routes text from username into the chat buffer (during
// chat-phase, public) or into a role-scoped night channel (mafia or
// sheriff, during night-phase). Any other phase is a silent no-op.
func (r *Room) SendMessage(username, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || !p.IsAlive() {
		return nil
	}

	switch {
	case r.status == domain.StatusChatPhase:
		r.chat = append(r.chat, ChatMessage{Username: username, Text: text})
		r.events.GlobalMessage(username, text)
		r.mirror(events.ChatMessage{
			BaseEvent: r.header(events.TypeChatMessage),
			Lane:      "public",
			Username:  username,
			Text:      text,
		})
	case r.status == domain.StatusNightPhase && p.IsMafia():
		r.events.MafiaMessage(username, text)
		r.mirror(events.ChatMessage{
			BaseEvent: r.header(events.TypeChatMessage),
			Lane:      "mafia",
			Username:  username,
			Text:      text,
		})
	case r.status == domain.StatusNightPhase && p.IsSheriff():
		r.events.SheriffMessage(username, text)
		r.mirror(events.ChatMessage{
			BaseEvent: r.header(events.TypeChatMessage),
			Lane:      "sheriff",
			Username:  username,
			Text:      text,
		})
	}
	return nil
}

// BeginVote registers username's request to end the day. Once every
// living player has requested, the room advances straight to
// night-phase on day 1 (no vote on the first day) or to vote-phase on
// later days.
func (r *Room) BeginVote(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || r.status != domain.StatusChatPhase || !p.IsAlive() || r.beginVote[username] {
		return nil
	}

	r.beginVote[username] = true
	requested := r.beginVoteCount()
	alive := r.aliveCount()
	r.events.BeginVoteRequested(username, requested, alive, r.dayNumber)

	if requested == alive {
		if r.dayNumber == 1 {
			r.startNightPhase()
		} else {
			r.startVotePhase()
		}
	}
	return nil
}

// Vote casts username's public-lane ballot for suspect during
// vote-phase. Finishes the phase early once everyone has voted.
func (r *Room) Vote(username, suspect string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	s, ok := r.players[suspect]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || r.status != domain.StatusVotePhase || !p.IsAlive() || !s.IsAlive() {
		return nil
	}

	r.voting.Vote(username, suspect)
	count := r.voting.Count(suspect)
	r.events.GlobalVote(suspect, count)
	r.mirror(events.VoteCast{
		BaseEvent: r.header(events.TypeVoteCast),
		Lane:      "public",
		Suspect:   suspect,
		Count:     count,
	})

	if r.voting.EveryoneVoted() {
		r.disarmTimer()
		r.finishVotePhase()
	}
	return nil
}

// MafiaVote casts username's mafia-lane ballot for suspect during
// night-phase. Finishes the phase once both mafia and sheriff lanes
// have fully voted.
func (r *Room) MafiaVote(username, suspect string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	s, ok := r.players[suspect]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || r.status != domain.StatusNightPhase || !p.IsAlive() || !p.IsMafia() || !s.IsAlive() {
		return nil
	}

	r.mafiaVoting.Vote(username, suspect)
	count := r.mafiaVoting.Count(suspect)
	r.events.MafiaVote(suspect, count)
	r.mirror(events.VoteCast{
		BaseEvent: r.header(events.TypeVoteCast),
		Lane:      "mafia",
		Suspect:   suspect,
		Count:     count,
	})

	if r.mafiaVoting.EveryoneVoted() && r.sheriffVoting.EveryoneVoted() {
		r.disarmTimer()
		r.finishNightPhase()
	}
	return nil
}

// SheriffVote casts username's sheriff-lane ballot for suspect during
// night-phase. Finishes the phase once both mafia and sheriff lanes
// have fully voted.
func (r *Room) SheriffVote(username, suspect string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	s, ok := r.players[suspect]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || r.status != domain.StatusNightPhase || !p.IsAlive() || !p.IsSheriff() || !s.IsAlive() {
		return nil
	}

	r.sheriffVoting.Vote(username, suspect)
	count := r.sheriffVoting.Count(suspect)
	r.events.SheriffVote(suspect, count)
	r.mirror(events.VoteCast{
		BaseEvent: r.header(events.TypeVoteCast),
		Lane:      "sheriff",
		Suspect:   suspect,
		Count:     count,
	})

	if r.mafiaVoting.EveryoneVoted() && r.sheriffVoting.EveryoneVoted() {
		r.disarmTimer()
		r.finishNightPhase()
	}
	return nil
}

// Expose lets a living sheriff publicly reveal target's true role, at
// any time while the sheriff is alive and the room has not reached a
// terminal status. A target already exposed is a silent no-op.
func (r *Room) Expose(username, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	t, ok := r.players[target]
	if !ok {
		return ErrUnknownUser
	}
	if r.status.Terminal() || !p.IsAlive() || !p.IsSheriff() || !t.IsAlive() {
		return nil
	}
	if _, already := r.exposed[target]; already {
		return nil
	}

	r.exposed[target] = struct{}{}
	all := make([]*domain.Player, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.players[name])
	}
	t.PubliclyExposeTo(all)
	r.events.PlayerExposed(target)
	r.mirror(events.PlayerExposed{
		BaseEvent: r.header(events.TypePlayerExposed),
		Username:  target,
		Public:    true,
	})
	return nil
}
