package room

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"mafia-room/internal/domain"
	"mafia-room/internal/events"
	"mafia-room/internal/metrics"
)

// The methods in this file are internal cascade helpers: every one of
// them assumes the write lock is already held by the caller. None of
// them acquires or releases r.mu themselves — that discipline is what
// lets add_player cascade into start_game into begin_new_day into
// start_chat_phase without deadlocking or downgrading mid-cascade.

func (r *Room) aliveUsernames() []string {
	alive := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if r.players[name].IsAlive() {
			alive = append(alive, name)
		}
	}
	return alive
}

func (r *Room) mafiaUsernames() []string {
	mafia := make([]string, 0)
	for _, name := range r.order {
		if r.players[name].IsMafia() {
			mafia = append(mafia, name)
		}
	}
	return mafia
}

func (r *Room) sheriffUsernames() []string {
	sheriffs := make([]string, 0)
	for _, name := range r.order {
		if r.players[name].IsSheriff() {
			sheriffs = append(sheriffs, name)
		}
	}
	return sheriffs
}

func (r *Room) aliveCount() int {
	return len(r.aliveUsernames())
}

func (r *Room) beginVoteCount() int {
	count := 0
	for _, wants := range r.beginVote {
		if wants {
			count++
		}
	}
	return count
}

func (r *Room) hasMafiaWinCondition() bool {
	alive := r.aliveCount()
	mafiaAlive := 0
	for _, name := range r.order {
		p := r.players[name]
		if p.IsAlive() && p.IsMafia() {
			mafiaAlive++
		}
	}
	return mafiaAlive >= (alive+1)/2
}

func (r *Room) hasMafiaLostCondition() bool {
	for _, name := range r.order {
		p := r.players[name]
		if p.IsAlive() && p.IsMafia() {
			return false
		}
	}
	return true
}

// startGame shuffles players into roles and begins day 1. Called once,
// from AddPlayer, the instant the room fills to capacity.
func (r *Room) startGame() {
	r.log.Info("room: start game", zap.String("room_id", r.id))

	pool := make([]string, len(r.order))
	copy(pool, r.order)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	distribution := domain.RoleDistribution(r.rules)
	assign := func(role domain.Role, n int) {
		for i := 0; i < n; i++ {
			username := pool[0]
			pool = pool[1:]
			r.players[username].Assign(role)
			r.events.RoleAssigned(username, role)
			r.mirror(events.RoleAssigned{
				BaseEvent: r.header(events.TypeRoleAssigned),
				Username:  username,
				Role:      role.String(),
			})
		}
	}
	assign(domain.RoleMafia, distribution[domain.RoleMafia])
	assign(domain.RoleSheriff, distribution[domain.RoleSheriff])
	assign(domain.RoleCivilian, distribution[domain.RoleCivilian])

	r.dayNumber = 0
	r.beginNewDay()
}

// beginNewDay increments the day counter and enters chat-phase.
func (r *Room) beginNewDay() {
	r.dayNumber++
	r.events.DayBegan(r.dayNumber)
	r.mirror(events.PhaseChanged{
		BaseEvent: r.header(events.TypePhaseChanged),
		Day:       r.dayNumber,
		OldPhase:  r.status.String(),
		NewPhase:  domain.StatusChatPhase.String(),
	})
	r.startChatPhase()
}

func (r *Room) startChatPhase() {
	r.chat = nil
	r.beginVote = make(map[string]bool)
	r.status = domain.StatusChatPhase
	r.events.ChatPhaseBegan()
	metrics.PhaseTransitions.WithLabelValues(r.status.String()).Inc()
}

func (r *Room) startVotePhase() {
	r.beginVote = make(map[string]bool)
	alive := r.aliveUsernames()
	r.voting = domain.NewVoting(alive, alive)
	r.status = domain.StatusVotePhase
	r.events.VotePhaseBegan()
	metrics.PhaseTransitions.WithLabelValues(r.status.String()).Inc()
	r.mirror(events.PhaseChanged{
		BaseEvent: r.header(events.TypePhaseChanged),
		Day:       r.dayNumber,
		OldPhase:  domain.StatusChatPhase.String(),
		NewPhase:  domain.StatusVotePhase.String(),
	})
	r.armTimer(r.votePhaseTimeout, r.finishVotePhase)
}

func (r *Room) finishVotePhase() {
	r.log.Info("room: finish vote phase", zap.String("room_id", r.id))

	suspect, ok := r.voting.Winner()
	r.voting = nil
	if ok {
		r.killPlayer(suspect)
	}

	if r.concludeIfGameOver() {
		return
	}
	r.startNightPhase()
}

func (r *Room) startNightPhase() {
	oldStatus := r.status
	r.chat = nil
	mafia := make([]string, 0)
	for _, name := range r.mafiaUsernames() {
		if r.players[name].IsAlive() {
			mafia = append(mafia, name)
		}
	}
	sheriffs := make([]string, 0)
	for _, name := range r.sheriffUsernames() {
		if r.players[name].IsAlive() {
			sheriffs = append(sheriffs, name)
		}
	}
	alive := r.aliveUsernames()
	r.mafiaVoting = domain.NewVoting(mafia, alive)
	r.sheriffVoting = domain.NewVoting(sheriffs, alive)
	r.status = domain.StatusNightPhase
	r.events.NightPhaseBegan()
	metrics.PhaseTransitions.WithLabelValues(r.status.String()).Inc()
	r.mirror(events.PhaseChanged{
		BaseEvent: r.header(events.TypePhaseChanged),
		Day:       r.dayNumber,
		OldPhase:  oldStatus.String(),
		NewPhase:  domain.StatusNightPhase.String(),
	})
	r.armTimer(r.nightPhaseTimeout, r.finishNightPhase)
}

func (r *Room) finishNightPhase() {
	r.log.Info("room: finish night phase", zap.String("room_id", r.id))

	killSuspect, killOk := r.mafiaVoting.Winner()
	exposeSuspect, exposeOk := r.sheriffVoting.Winner()
	r.mafiaVoting = nil
	r.sheriffVoting = nil

	if killOk {
		r.killPlayer(killSuspect)
	}
	if exposeOk {
		target := r.players[exposeSuspect]
		sheriffAudience := make([]*domain.Player, 0, len(r.sheriffUsernames()))
		for _, name := range r.sheriffUsernames() {
			if r.players[name].IsAlive() {
				sheriffAudience = append(sheriffAudience, r.players[name])
			}
		}
		target.ExposeTo(sheriffAudience)
		r.events.ExposedToSheriffs(exposeSuspect)
		r.mirror(events.PlayerExposed{
			BaseEvent: r.header(events.TypePlayerExposed),
			Username:  exposeSuspect,
			Public:    false,
		})
	}

	if r.concludeIfGameOver() {
		return
	}
	r.beginNewDay()
}

// killPlayer kills username and emits the canonical kill event.
func (r *Room) killPlayer(username string) {
	p := r.players[username]
	p.Kill()
	r.events.PlayerKilled(username, p.Role)
	metrics.PlayersEliminated.WithLabelValues(p.Role.String()).Inc()
	r.mirror(events.PlayerEliminated{
		BaseEvent: r.header(events.TypePlayerEliminated),
		Username:  username,
		Role:      p.Role.String(),
	})
}

// concludeIfGameOver checks both termination predicates (evaluated
// after every kill, per spec) and transitions to a terminal status if
// either holds. Returns true if the game ended.
func (r *Room) concludeIfGameOver() bool {
	switch {
	case r.hasMafiaWinCondition():
		r.setMafiaWon()
		return true
	case r.hasMafiaLostCondition():
		r.setMafiaLost()
		return true
	default:
		return false
	}
}

func (r *Room) globalReveal() {
	all := make([]*domain.Player, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.players[name])
	}
	for _, p := range all {
		p.ExposeTo(all)
	}
}

func (r *Room) setMafiaWon() {
	r.status = domain.StatusMafiaWon
	r.globalReveal()
	r.events.MafiaWon()
	metrics.PhaseTransitions.WithLabelValues(r.status.String()).Inc()
	r.mirror(events.GameEnded{BaseEvent: r.header(events.TypeGameEnded), Winner: "mafia"})
}

func (r *Room) setMafiaLost() {
	r.status = domain.StatusMafiaLost
	r.globalReveal()
	r.events.MafiaLost()
	metrics.PhaseTransitions.WithLabelValues(r.status.String()).Inc()
	r.mirror(events.GameEnded{BaseEvent: r.header(events.TypeGameEnded), Winner: "civilians"})
}

// header builds the common event envelope, stamped with the current
// wall-clock time and the index the corresponding EventLog entry was
// just assigned. Callers must call the matching domain.EventLog emitter
// first so LastIndex reflects it.
func (r *Room) header(eventType string) events.BaseEvent {
	return events.BaseEvent{
		RoomID:    r.id,
		Timestamp: time.Now().UnixMilli(),
		Type:      eventType,
		Index:     r.events.LastIndex(),
	}
}
