package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/simple-mud/internal/game"
	"github.com/pixil98/simple-mud/internal/storage"
)

type WorldConfig struct {
	RoomsPath    string `json:"rooms_path"`
	StartingRoom string `json:"starting_room"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.RoomsPath == "" {
		el.Add(fmt.Errorf("rooms_path is required"))
	} else if _, err := os.Stat(c.RoomsPath); err != nil {
		el.Add(fmt.Errorf("invalid rooms_path %q: %w", c.RoomsPath, err))
	}

	if c.StartingRoom == "" {
		el.Add(fmt.Errorf("starting_room is required"))
	}

	return el.Err()
}

// BuildWorldMap loads the room assets and resolves them into the immutable
// world map. Dangling exits and a missing starting room fail here, at
// startup, not at play time.
func (c *WorldConfig) BuildWorldMap() (*game.WorldMap, error) {
	rooms, err := storage.NewFileStore[*game.Room](c.RoomsPath)
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}

	world, err := game.NewWorldMap(rooms, c.StartingRoom)
	if err != nil {
		return nil, fmt.Errorf("resolving world map: %w", err)
	}

	return world, nil
}
