package game

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/simple-mud/internal/storage"
)

// WorldMap is the immutable room graph. It is built once at startup and never
// mutated afterwards, so it is safe to read from anywhere without locking.
type WorldMap struct {
	rooms map[string]*Room
	start string
}

// NewWorldMap builds a world map from a room store. Every exit destination and
// the starting room must resolve to a loaded room; anything else is a
// configuration bug and fails construction.
func NewWorldMap(rooms storage.Storer[*Room], startingRoom string) (*WorldMap, error) {
	all := rooms.GetAll()

	el := errors.NewErrorList()

	if len(all) == 0 {
		el.Add(fmt.Errorf("no rooms loaded"))
	}

	if _, ok := all[startingRoom]; !ok {
		el.Add(fmt.Errorf("starting room %q does not exist", startingRoom))
	}

	for id, room := range all {
		for dir, dest := range room.Exits {
			if _, ok := all[dest]; !ok {
				el.Add(fmt.Errorf("room %q exit %q: destination %q does not exist", id, dir, dest))
			}
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	return &WorldMap{
		rooms: all,
		start: startingRoom,
	}, nil
}

// Room returns the room with the given id.
func (w *WorldMap) Room(id string) (*Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// StartingRoom returns the id of the room new players are placed in.
func (w *WorldMap) StartingRoom() string {
	return w.start
}

// ExitNames returns the room's exit names sorted alphabetically, so user
// output doesn't vary with map iteration order.
func (w *WorldMap) ExitNames(roomId string) []string {
	r, ok := w.rooms[roomId]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(r.Exits))
	for dir := range r.Exits {
		names = append(names, dir)
	}
	sort.Strings(names)
	return names
}
