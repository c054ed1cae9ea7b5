package commands

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/simple-mud/internal/game"
)

// stubRoomStore satisfies storage.Storer[*game.Room] for tests.
type stubRoomStore map[string]*game.Room

func (s stubRoomStore) Save(string, *game.Room) error { return nil }
func (s stubRoomStore) Get(id string) *game.Room      { return s[id] }
func (s stubRoomStore) GetAll() map[string]*game.Room {
	out := map[string]*game.Room{}
	for id, r := range s {
		out[id] = r
	}
	return out
}

func newTestWorld(t *testing.T) *game.WorldMap {
	t.Helper()
	w, err := game.NewWorldMap(stubRoomStore{
		"tavern": {
			Name:        "Tavern",
			Description: "You're in a cozy tavern warmed by an open fire.",
			Exits:       map[string]string{"outside": "outside"},
		},
		"outside": {
			Name:        "Outside",
			Description: "You're standing outside a tavern. It's raining.",
			Exits:       map[string]string{"inside": "tavern", "down": "dock"},
		},
		"dock": {
			Name:        "Dock",
			Description: "You are standing on the bustling dock of Port Royal!",
			Exits:       map[string]string{"up": "outside"},
		},
	}, "tavern")
	if err != nil {
		t.Fatalf("building world map: %v", err)
	}
	return w
}

func addNamed(t *testing.T, reg *game.Registry, id, name, room string) {
	t.Helper()
	if _, err := reg.Add(id); err != nil {
		t.Fatalf("adding %s: %v", id, err)
	}
	if err := reg.SetName(id, name); err != nil {
		t.Fatalf("naming %s: %v", id, err)
	}
	if err := reg.SetRoom(id, room); err != nil {
		t.Fatalf("placing %s: %v", id, err)
	}
}

// messagesTo collects the reply texts for one recipient, in order.
func messagesTo(dec Decision, id string) []string {
	var out []string
	for _, r := range dec.Replies {
		if r.To == id {
			out = append(out, r.Text)
		}
	}
	return out
}

func TestDispatch_FirstInputBecomesName(t *testing.T) {
	tests := map[string]struct {
		verb    string
		args    string
		expName string
	}{
		"plain name":            {verb: "Alice", args: "", expName: "Alice"},
		"multi word name":       {verb: "Mad", args: "Hatter", expName: "Mad Hatter"},
		"command-like line":     {verb: "go", args: "outside", expName: "go outside"},
		"empty line valid name": {verb: "", args: "", expName: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t)
			reg := game.NewRegistry(world)
			reg.Add("a")
			addNamed(t, reg, "b", "Bob", "outside")

			d := NewDispatcher(world)
			dec := d.Dispatch("a", tt.verb, tt.args, reg)

			if dec.SetName == nil {
				t.Fatal("expected a name mutation, got none")
			}
			testutil.AssertEqual(t, "name", *dec.SetName, tt.expName)
			if dec.SetRoom != nil {
				t.Errorf("expected no room mutation, got %q", *dec.SetRoom)
			}

			// Everyone, self included, hears the entrance.
			entered := tt.expName + " entered the game"
			testutil.AssertEqual(t, "bob messages", len(messagesTo(dec, "b")), 1)
			testutil.AssertEqual(t, "bob text", messagesTo(dec, "b")[0], entered)

			self := messagesTo(dec, "a")
			testutil.AssertEqual(t, "self message count", len(self), 6)
			testutil.AssertEqual(t, "entrance", self[0], entered)
			testutil.AssertEqual(t, "welcome", self[1],
				"Welcome to the game, "+tt.expName+". Type 'help' for a list of commands. Have fun!")
			testutil.AssertEqual(t, "level", self[2], "You are level: 1")
			testutil.AssertEqual(t, "gold", self[3], "You have 2 gold.")
			testutil.AssertEqual(t, "inventory", self[4], "Inventory: boomerang")
			testutil.AssertEqual(t, "room description", self[5],
				"You're in a cozy tavern warmed by an open fire.")
		})
	}
}

func TestDispatch_NameSetOnlyOnce(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "Alice", "tavern")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "Mallory", "", reg)

	// A named player's input is a command, never a rename.
	if dec.SetName != nil {
		t.Errorf("expected no name mutation, got %q", *dec.SetName)
	}
	testutil.AssertEqual(t, "reply", messagesTo(dec, "a")[0], "Unknown command 'Mallory'")
}

func TestDispatch_Help(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "Alice", "tavern")
	addNamed(t, reg, "b", "Bob", "tavern")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "help", "", reg)

	testutil.AssertEqual(t, "bob messages", len(messagesTo(dec, "b")), 0)

	self := messagesTo(dec, "a")
	testutil.AssertEqual(t, "self message count", len(self), 1)
	if !strings.HasPrefix(self[0], "Commands:") {
		t.Errorf("help text = %q, expected it to start with Commands:", self[0])
	}
	if !strings.Contains(self[0], "whisper <player> <message>") {
		t.Errorf("help text missing whisper usage: %q", self[0])
	}
}

func TestDispatch_SayScoping(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "A", "tavern")
	addNamed(t, reg, "b", "B", "tavern")
	addNamed(t, reg, "c", "C", "outside")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "say", "hello", reg)

	// Exactly the room's occupants, sender included; nobody outside.
	testutil.AssertEqual(t, "a text", messagesTo(dec, "a")[0], "A says: hello")
	testutil.AssertEqual(t, "b text", messagesTo(dec, "b")[0], "A says: hello")
	testutil.AssertEqual(t, "c messages", len(messagesTo(dec, "c")), 0)
	testutil.AssertEqual(t, "total replies", len(dec.Replies), 2)
}

func TestDispatch_Emote(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "A", "tavern")
	addNamed(t, reg, "b", "B", "tavern")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "emote", "laughs out loud", reg)

	testutil.AssertEqual(t, "a text", messagesTo(dec, "a")[0], "A laughs out loud")
	testutil.AssertEqual(t, "b text", messagesTo(dec, "b")[0], "A laughs out loud")
}

func TestDispatch_ShoutIsGlobal(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "A", "tavern")
	addNamed(t, reg, "b", "B", "outside")
	addNamed(t, reg, "c", "C", "dock")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "shout", "land ho", reg)

	exp := "A shouts from somewhere far off: land ho"
	for _, id := range []string{"a", "b", "c"} {
		msgs := messagesTo(dec, id)
		testutil.AssertEqual(t, "message count for "+id, len(msgs), 1)
		testutil.AssertEqual(t, "text for "+id, msgs[0], exp)
	}
}

func TestDispatch_Whisper(t *testing.T) {
	tests := map[string]struct {
		args       string
		expTo      map[string][]string
		expNilsFor []string
	}{
		"delivered": {
			args: "Bob hi there",
			expTo: map[string][]string{
				"b": {"Bob whispers: hi there"},
				"a": {"You whisper 'hi there' to Bob"},
			},
			expNilsFor: []string{"c"},
		},
		"message kept verbatim": {
			args: "Bob   spaced   out",
			expTo: map[string][]string{
				"b": {"Bob whispers:   spaced   out"},
				"a": {"You whisper '  spaced   out' to Bob"},
			},
		},
		"target not found": {
			args: "Zed hello",
			expTo: map[string][]string{
				"a": {"Zed not found"},
			},
			expNilsFor: []string{"b", "c"},
		},
		"no message": {
			args: "Bob",
			expTo: map[string][]string{
				"a": {"Usage: whisper <player> <message>"},
			},
			expNilsFor: []string{"b"},
		},
		"empty args": {
			args: "",
			expTo: map[string][]string{
				"a": {"Usage: whisper <player> <message>"},
			},
		},
		"case sensitive target": {
			args: "bob hi",
			expTo: map[string][]string{
				"a": {"bob not found"},
			},
			expNilsFor: []string{"b"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t)
			reg := game.NewRegistry(world)
			addNamed(t, reg, "a", "Alice", "tavern")
			addNamed(t, reg, "b", "Bob", "dock")
			addNamed(t, reg, "c", "Carol", "tavern")

			d := NewDispatcher(world)
			dec := d.Dispatch("a", "whisper", tt.args, reg)

			for id, exp := range tt.expTo {
				got := messagesTo(dec, id)
				testutil.AssertEqual(t, "message count for "+id, len(got), len(exp))
				for i := range exp {
					testutil.AssertEqual(t, "text for "+id, got[i], exp[i])
				}
			}
			for _, id := range tt.expNilsFor {
				testutil.AssertEqual(t, "no messages for "+id, len(messagesTo(dec, id)), 0)
			}
		})
	}
}

func TestDispatch_WhisperDuplicateNames(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "Alice", "tavern")
	addNamed(t, reg, "b1", "Bob", "tavern")
	addNamed(t, reg, "b2", "Bob", "dock")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "whisper", "Bob psst", reg)

	// Duplicate names are not deduplicated: every match is delivered to,
	// and the sender is acknowledged once per match.
	testutil.AssertEqual(t, "first bob", messagesTo(dec, "b1")[0], "Bob whispers: psst")
	testutil.AssertEqual(t, "second bob", messagesTo(dec, "b2")[0], "Bob whispers: psst")
	testutil.AssertEqual(t, "sender acks", len(messagesTo(dec, "a")), 2)
}

func TestDispatch_Look(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "Alice", "outside")
	addNamed(t, reg, "b", "Bob", "outside")
	addNamed(t, reg, "c", "Carol", "tavern")
	reg.Add("ghost") // connected but unnamed

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "look", "", reg)

	self := messagesTo(dec, "a")
	testutil.AssertEqual(t, "message count", len(self), 3)
	testutil.AssertEqual(t, "description", self[0], "You're standing outside a tavern. It's raining.")
	testutil.AssertEqual(t, "players", self[1], "Players here: Alice, Bob")
	testutil.AssertEqual(t, "exits", self[2], "Exits are: down, inside")

	testutil.AssertEqual(t, "total replies", len(dec.Replies), 3)
}

func TestDispatch_LookOmitsUnnamedOccupants(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "Alice", "tavern")
	reg.Add("ghost") // unnamed player in the same room

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "look", "", reg)

	testutil.AssertEqual(t, "players", messagesTo(dec, "a")[1], "Players here: Alice")
}

func TestDispatch_Go(t *testing.T) {
	tests := map[string]struct {
		args string
	}{
		"exact":     {args: "outside"},
		"uppercase": {args: "OUTSIDE"},
		"mixed":     {args: "Outside"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t)
			reg := game.NewRegistry(world)
			addNamed(t, reg, "a", "A", "tavern")
			addNamed(t, reg, "b", "B", "tavern")
			addNamed(t, reg, "c", "C", "outside")

			d := NewDispatcher(world)
			dec := d.Dispatch("a", "go", tt.args, reg)

			if dec.SetRoom == nil {
				t.Fatal("expected a room mutation, got none")
			}
			testutil.AssertEqual(t, "destination", *dec.SetRoom, "outside")

			testutil.AssertEqual(t, "old room sees", messagesTo(dec, "b")[0], "A left via exit 'outside'")
			testutil.AssertEqual(t, "new room sees", messagesTo(dec, "c")[0], "A arrived via exit 'outside'")
			testutil.AssertEqual(t, "sender sees", messagesTo(dec, "a")[0], "You arrive at 'Outside'")
			testutil.AssertEqual(t, "sender message count", len(messagesTo(dec, "a")), 1)
		})
	}
}

func TestDispatch_GoUnknownExit(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "A", "tavern")
	addNamed(t, reg, "b", "B", "tavern")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "go", "north", reg)

	// Failure never mutates and yields exactly one reply to the sender.
	if dec.SetRoom != nil {
		t.Errorf("expected no room mutation, got %q", *dec.SetRoom)
	}
	testutil.AssertEqual(t, "total replies", len(dec.Replies), 1)
	testutil.AssertEqual(t, "reply", messagesTo(dec, "a")[0], "Unknown exit 'north'")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)
	addNamed(t, reg, "a", "A", "tavern")
	addNamed(t, reg, "b", "B", "tavern")

	d := NewDispatcher(world)
	dec := d.Dispatch("a", "dance", "wildly", reg)

	testutil.AssertEqual(t, "total replies", len(dec.Replies), 1)
	testutil.AssertEqual(t, "reply", messagesTo(dec, "a")[0], "Unknown command 'dance'")
}

func TestDispatch_UnknownSender(t *testing.T) {
	world := newTestWorld(t)
	reg := game.NewRegistry(world)

	d := NewDispatcher(world)
	dec := d.Dispatch("nobody", "say", "hello", reg)

	testutil.AssertEqual(t, "replies", len(dec.Replies), 0)
	if dec.SetName != nil || dec.SetRoom != nil {
		t.Error("expected no mutations for unknown sender")
	}
}
