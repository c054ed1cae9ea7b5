package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Room is a node in the static world graph: a display name, a description,
// and named one-directional exits to other rooms.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"` // exit name -> destination room id
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.Description == "" {
		el.Add(fmt.Errorf("room description is required"))
	}

	for dir, dest := range r.Exits {
		if dir != strings.ToLower(dir) {
			el.Add(fmt.Errorf("exit %q: exit names must be lowercase", dir))
		}
		if dest == "" {
			el.Add(fmt.Errorf("exit %q: destination room id is required", dir))
		}
	}

	return el.Err()
}
