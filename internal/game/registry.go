package game

// Registry is the authoritative record of who is online and where. It is
// owned and mutated exclusively by the tick loop; the command dispatcher only
// reads it and returns mutation requests. That single-writer discipline is
// what makes the loop race-free, so no lock is needed here.
type Registry struct {
	players map[string]*Player
	world   *WorldMap
}

func NewRegistry(world *WorldMap) *Registry {
	return &Registry{
		players: map[string]*Player{},
		world:   world,
	}
}

// Add inserts a new unnamed player at the starting room.
// Returns ErrPlayerExists if the id is already registered.
func (r *Registry) Add(id string) (*Player, error) {
	if _, ok := r.players[id]; ok {
		return nil, ErrPlayerExists
	}

	p := &Player{
		Id:        id,
		RoomId:    r.world.StartingRoom(),
		Level:     StartingLevel,
		Gold:      StartingGold,
		Inventory: StartingInventory,
	}
	r.players[id] = p
	return p, nil
}

// Remove deletes the player. Removing an absent id is a no-op because
// disconnect events can race with earlier removal within a tick.
func (r *Registry) Remove(id string) {
	delete(r.players, id)
}

// Get returns the player or ErrPlayerNotFound. Callers treat the error as
// "skip this event": connect, command, and disconnect events for one id can
// legitimately arrive in any order within a tick.
func (r *Registry) Get(id string) (*Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// SetName assigns the player's name. A name is set exactly once; a second
// assignment returns ErrAlreadyNamed and leaves the original intact.
func (r *Registry) SetName(id, name string) error {
	p, ok := r.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	if p.named {
		return ErrAlreadyNamed
	}

	p.name = name
	p.named = true
	return nil
}

// SetRoom moves the player. The destination is trusted: the dispatcher only
// requests moves through exits it resolved against the world map.
func (r *Registry) SetRoom(id, roomId string) error {
	p, ok := r.players[id]
	if !ok {
		return ErrPlayerNotFound
	}

	p.RoomId = roomId
	return nil
}

// ForEach visits every registered player. Iteration order is unspecified;
// each live player is visited exactly once.
func (r *Registry) ForEach(fn func(id string, p *Player)) {
	for id, p := range r.players {
		fn(id, p)
	}
}

func (r *Registry) Len() int {
	return len(r.players)
}
