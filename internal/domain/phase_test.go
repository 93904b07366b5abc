package domain

import "testing"

// TestStatusString tests the String() method for all Status values
func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusUnknown, "unknown"},
		{StatusWaitingForPlayers, "waiting-for-players"},
		{StatusChatPhase, "chat-phase"},
		{StatusVotePhase, "vote-phase"},
		{StatusNightPhase, "night-phase"},
		{StatusMafiaWon, "mafia-won"},
		{StatusMafiaLost, "mafia-lost"},
		{Status(99), "invalid"}, // unknown status value
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.status.String()
			if result != tt.expected {
				t.Errorf("got %s, expected %s", result, tt.expected)
			}
		})
	}
}

// TestStatusTerminal verifies which statuses are absorbing end states.
func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusWaitingForPlayers, false},
		{StatusChatPhase, false},
		{StatusVotePhase, false},
		{StatusNightPhase, false},
		{StatusMafiaWon, true},
		{StatusMafiaLost, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}
