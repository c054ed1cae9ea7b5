package game

// Starting stats for a freshly connected player.
const (
	StartingLevel     = 1
	StartingGold      = 2
	StartingInventory = "boomerang"
)

// Player is the mutable record for one live connection. The name is a
// two-state lifecycle: a player is Unnamed from connect until their first
// input line, which becomes their name. "Unnamed" is distinct from an empty
// name - an empty first line yields a Named player with an empty name.
type Player struct {
	Id     string
	RoomId string

	Level     int
	Gold      int
	Inventory string

	name  string
	named bool
}

// Name returns the player's name and whether it has been set.
func (p *Player) Name() (string, bool) {
	return p.name, p.named
}

// Named reports whether the player has completed the naming step.
func (p *Player) Named() bool {
	return p.named
}
