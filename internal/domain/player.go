// This file containes player and role structs and supporting methods

package domain

// --- Role enum --- //

// Role represents a player's true role, hidden from other players until
// their knowledge set (or a game-end reveal) grants visibility.
type Role int

const (
	RoleUnknown Role = iota
	RoleCivilian
	RoleMafia
	RoleSheriff
)

func (r Role) String() string {
	switch r {
	case RoleUnknown:
		return "unknown"
	case RoleCivilian:
		return "civilian"
	case RoleMafia:
		return "mafia"
	case RoleSheriff:
		return "sheriff"
	default:
		return "invalid"
	}
}

// Beautify renders the role the way a role-notification event shows it:
// capitalized, with "???" standing in for the unrevealed case.
func (r Role) Beautify() string {
	switch r {
	case RoleCivilian:
		return "Civilian"
	case RoleMafia:
		return "Mafia"
	case RoleSheriff:
		return "Sheriff"
	default:
		return "???"
	}
}

// --- LifeStatus enum --- //

// LifeStatus tracks whether a player is still in the game.
type LifeStatus int

const (
	LifeUnknown LifeStatus = iota
	LifeAlive
	LifeDead
)

func (s LifeStatus) String() string {
	switch s {
	case LifeAlive:
		return "alive"
	case LifeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// --- Player struct --- //

// Player holds one room member's identity, role, and knowledge.
//
// Invariants (enforced by the methods below, never by direct field
// mutation from outside the package): Role and Status become
// non-unknown simultaneously, at Assign; once Status is LifeDead it
// never returns to LifeAlive; knowledge only grows and always contains
// the player's own username.
type Player struct {
	Username string
	Role     Role
	Status   LifeStatus
	Color    string
	Exposed  bool

	knowledge map[string]struct{}
}

// NewPlayer creates a player with the given username and assigned color.
// Role and status start unknown; the player always knows itself.
func NewPlayer(username, color string) *Player {
	return &Player{
		Username:  username,
		Role:      RoleUnknown,
		Status:    LifeUnknown,
		Color:     color,
		knowledge: map[string]struct{}{username: {}},
	}
}

// Assign sets the player's role and marks them alive. Callable once per
// player, only by the Room during role assignment at game start.
func (p *Player) Assign(role Role) {
	p.Role = role
	p.Status = LifeAlive
}

// Kill marks the player dead. Idempotent in effect; Room calls it at
// most once per player.
func (p *Player) Kill() {
	p.Status = LifeDead
}

func (p *Player) IsAlive() bool {
	return p.Status == LifeAlive
}

func (p *Player) IsDead() bool {
	return p.Status == LifeDead
}

func (p *Player) IsMafia() bool {
	return p.Role == RoleMafia
}

func (p *Player) IsSheriff() bool {
	return p.Role == RoleSheriff
}

// Learn adds other's username to this player's knowledge set.
func (p *Player) Learn(other *Player) {
	p.knowledge[other.Username] = struct{}{}
}

// ExposeTo makes every member of audience learn this player's true role,
// without flipping the public Exposed flag.
func (p *Player) ExposeTo(audience []*Player) {
	for _, other := range audience {
		other.Learn(p)
	}
}

// PubliclyExposeTo sets Exposed and then exposes this player to audience.
func (p *Player) PubliclyExposeTo(audience []*Player) {
	p.Exposed = true
	p.ExposeTo(audience)
}

// Knows reports whether p may see other's true role: either is dead,
// both are mafia, both are sheriff, or other is in p's knowledge set.
func (p *Player) Knows(other *Player) bool {
	if p.IsDead() || other.IsDead() {
		return true
	}
	if p.IsMafia() && other.IsMafia() {
		return true
	}
	if p.IsSheriff() && other.IsSheriff() {
		return true
	}
	_, known := p.knowledge[other.Username]
	return known
}

// PlayerView is the per-viewer projection of a Player: role is unknown
// unless the viewer knows the subject. Status, color, and exposed are
// always revealed.
type PlayerView struct {
	Username string
	Role     Role
	Status   LifeStatus
	Color    string
	Exposed  bool
}

// ProjectFor returns p's view as seen by viewer. The true role is
// revealed only if viewer.Knows(p) holds at projection time — nothing
// about role visibility is cached on Player itself.
func (p *Player) ProjectFor(viewer *Player) PlayerView {
	role := RoleUnknown
	if viewer.Knows(p) {
		role = p.Role
	}
	return PlayerView{
		Username: p.Username,
		Role:     role,
		Status:   p.Status,
		Color:    p.Color,
		Exposed:  p.Exposed,
	}
}
