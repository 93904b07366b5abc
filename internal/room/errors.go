package room

import "errors"

// ErrUnknownUser is returned when a command names a username not
// currently in the room.
var ErrUnknownUser = errors.New("unknown-user")

// ErrUsernameTaken is returned when add_player names a username
// already present in the room.
var ErrUsernameTaken = errors.New("username-taken")
