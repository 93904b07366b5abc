// This file contains the Voting tally for a single vote phase.

package domain

// Voting tallies one phase's worth of ballots. The ballot and tally keys
// are fixed at construction — voters and suspects never change mid-phase,
// only the values do, via Vote. suspects preserves the construction order
// so Winner and Project can walk it instead of the bare tally map, which
// Go randomizes on every iteration.
type Voting struct {
	ballot   map[string]string // voter -> suspect, empty string until cast
	tally    map[string]int    // suspect -> vote count
	suspects []string          // construction order, fixed
}

// NewVoting builds a Voting for voters, over suspects. Both slices are
// usernames; a player may appear in both (self-votes are not special).
func NewVoting(voters, suspects []string) *Voting {
	v := &Voting{
		ballot:   make(map[string]string, len(voters)),
		tally:    make(map[string]int, len(suspects)),
		suspects: append([]string(nil), suspects...),
	}
	for _, voter := range voters {
		v.ballot[voter] = ""
	}
	for _, suspect := range suspects {
		v.tally[suspect] = 0
	}
	return v
}

// Vote casts or changes voter's ballot to suspect. A prior ballot's vote
// is withdrawn from its old suspect before the new one is counted, so a
// voter's vote can move without double-counting.
func (v *Voting) Vote(voter, suspect string) {
	if prev, cast := v.ballot[voter]; cast && prev != "" {
		v.tally[prev]--
	}
	v.ballot[voter] = suspect
	v.tally[suspect]++
}

// Count returns the number of votes currently held against suspect.
func (v *Voting) Count(suspect string) int {
	return v.tally[suspect]
}

// EveryoneVoted reports whether every registered voter has cast a ballot.
func (v *Voting) EveryoneVoted() bool {
	for _, suspect := range v.ballot {
		if suspect == "" {
			return false
		}
	}
	return true
}

// Winner returns the suspect with the most votes, walking suspects in
// construction order so a tie — including an all-zero tally, when a
// phase times out with nobody having voted — always resolves the same
// way: the first suspect registered at construction that reaches the
// highest count. ok is false only when Voting has no suspects at all.
func (v *Voting) Winner() (suspect string, ok bool) {
	if len(v.suspects) == 0 {
		return "", false
	}
	suspect = v.suspects[0]
	highest := v.tally[suspect]
	for _, name := range v.suspects[1:] {
		if count := v.tally[name]; count > highest {
			highest = count
			suspect = name
		}
	}
	return suspect, true
}

// VoteView is the per-suspect tally exposed to subscribers: how many
// votes a suspect currently holds, without revealing who cast them.
type VoteView struct {
	SuspectUsername string
	VotesNumber     int
}

// Project renders the current tally as a slice of VoteView, one entry
// per suspect, in the order suspects were registered at construction.
func (v *Voting) Project() []VoteView {
	views := make([]VoteView, 0, len(v.suspects))
	for _, suspect := range v.suspects {
		views = append(views, VoteView{SuspectUsername: suspect, VotesNumber: v.tally[suspect]})
	}
	return views
}
