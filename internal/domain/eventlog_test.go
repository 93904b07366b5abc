package domain

import "testing"

func TestEmitAssignsMonotonicIndex(t *testing.T) {
	l := NewEventLog()
	l.Emit("a", EveryoneAccess)
	l.Emit("b", EveryoneAccess)
	l.Emit("c", EveryoneAccess)

	viewer := NewPlayer("v", "blue")
	viewer.Assign(RoleCivilian)
	views := l.ProjectFor(viewer)

	for i, v := range views {
		if v.Index != i {
			t.Errorf("event %d: got index %d, expected %d", i, v.Index, i)
		}
	}
}

func TestEmitEvictsAtCapacity(t *testing.T) {
	l := &EventLog{capacity: 3}
	l.Emit("a", EveryoneAccess)
	l.Emit("b", EveryoneAccess)
	l.Emit("c", EveryoneAccess)
	l.Emit("d", EveryoneAccess) // evicts "a"

	viewer := NewPlayer("v", "blue")
	viewer.Assign(RoleCivilian)
	views := l.ProjectFor(viewer)

	if len(views) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(views))
	}
	if views[0].Message != "b" {
		t.Errorf("oldest retained should be 'b', got %q", views[0].Message)
	}
	// index sequence is never reset despite eviction
	if views[0].Index != 1 {
		t.Errorf("expected index 1 to survive eviction, got %d", views[0].Index)
	}
	if views[len(views)-1].Index != 3 {
		t.Errorf("expected last index 3, got %d", views[len(views)-1].Index)
	}
}

func TestProjectFor_AccessPredicate(t *testing.T) {
	l := NewEventLog()
	l.RoleAssigned("alice", RoleMafia)
	l.GlobalMessage("bob", "hello")

	alice := NewPlayer("alice", "blue")
	alice.Assign(RoleMafia)
	bob := NewPlayer("bob", "green")
	bob.Assign(RoleCivilian)

	aliceViews := l.ProjectFor(alice)
	bobViews := l.ProjectFor(bob)

	if len(aliceViews) != 2 {
		t.Errorf("alice should see both events, got %d", len(aliceViews))
	}
	if len(bobViews) != 1 {
		t.Errorf("bob should only see the public chat, got %d", len(bobViews))
	}
}

func TestCanonicalMessages(t *testing.T) {
	l := NewEventLog()
	viewer := NewPlayer("v", "blue")
	viewer.Assign(RoleCivilian)

	l.PlayerConnected("alice", 1, 4)
	l.DayBegan(1)
	l.ChatPhaseBegan()
	l.VotePhaseBegan()
	l.NightPhaseBegan()
	l.GlobalVote("bob", 2)
	l.PlayerKilled("bob", RoleMafia)
	l.PlayerExposed("carol")
	l.MafiaWon()

	views := l.ProjectFor(viewer)
	expected := []string{
		"Player `alice` conntected: 1/4",
		"DAY 1",
		"Day phase: chat",
		"Day phase finished: vote for mafia (60 seconds)",
		"Night phase: mafia choose victim, sheriffs investigate people (60 seconds)",
		"Votes for `bob`: 2",
		"Player was killed: `bob` (Mafia)",
		"Player was exposed: `carol`",
		"Mafia WON!",
	}

	if len(views) != len(expected) {
		t.Fatalf("got %d events, expected %d", len(views), len(expected))
	}
	for i, want := range expected {
		if views[i].Message != want {
			t.Errorf("event %d: got %q, expected %q", i, views[i].Message, want)
		}
	}
}

func TestBeginVoteRequested_DayOneWording(t *testing.T) {
	l := NewEventLog()
	viewer := NewPlayer("v", "blue")
	viewer.Assign(RoleCivilian)

	l.BeginVoteRequested("alice", 1, 3, 1)
	l.BeginVoteRequested("bob", 2, 3, 2)

	views := l.ProjectFor(viewer)
	if views[0].Message != "`alice` wants to finish day phase: 1/3" {
		t.Errorf("day-1 wording wrong: %q", views[0].Message)
	}
	if views[1].Message != "`bob` wants to finish day phase and begin vote: 2/3" {
		t.Errorf("later-day wording wrong: %q", views[1].Message)
	}
}

func TestRoleAssigned_OnlyAddresseeSees(t *testing.T) {
	l := NewEventLog()
	l.RoleAssigned("alice", RoleSheriff)

	alice := NewPlayer("alice", "blue")
	alice.Assign(RoleSheriff)
	bob := NewPlayer("bob", "green")
	bob.Assign(RoleCivilian)

	if len(l.ProjectFor(alice)) != 1 {
		t.Error("alice should see her own role notification")
	}
	if len(l.ProjectFor(bob)) != 0 {
		t.Error("bob should not see alice's role notification")
	}
}
