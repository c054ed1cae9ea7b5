package commands

import (
	"sort"
	"strings"

	"github.com/pixil98/simple-mud/internal/display"
	"github.com/pixil98/simple-mud/internal/game"
)

// Reply is one outbound message: text for a single client.
type Reply struct {
	To   string
	Text string
}

// Decision is the dispatcher's verdict on one command tuple: at most one
// registry mutation request plus an ordered list of replies. The tick loop
// applies the mutation before delivering the replies.
type Decision struct {
	SetName *string
	SetRoom *string
	Replies []Reply
}

func (d *Decision) reply(to, text string) {
	d.Replies = append(d.Replies, Reply{To: to, Text: text})
}

// Dispatcher turns command tuples into decisions. It reads the registry and
// the world map but never mutates either, which keeps every mutation on the
// tick loop's single thread.
type Dispatcher struct {
	world *game.WorldMap
}

func NewDispatcher(world *game.WorldMap) *Dispatcher {
	return &Dispatcher{world: world}
}

// Dispatch decides the outcome of one command tuple. The sender must be
// registered; the tick loop drops tuples for unknown ids before calling here.
func (d *Dispatcher) Dispatch(senderId, verb, args string, reg *game.Registry) Decision {
	sender, err := reg.Get(senderId)
	if err != nil {
		return Decision{}
	}

	// The naming step comes before verb matching: an unnamed player's first
	// line is their name, whatever it says.
	if !sender.Named() {
		return d.nameSender(sender, verb, args, reg)
	}

	switch ParseVerb(verb) {
	case VerbHelp:
		return Decision{Replies: []Reply{{To: senderId, Text: helpText}}}
	case VerbEmote:
		return d.roomEcho(sender, reg, expandNamed(sender, msgEmote, args))
	case VerbSay:
		return d.roomEcho(sender, reg, expandNamed(sender, msgSay, args))
	case VerbShout:
		return d.shout(sender, reg, args)
	case VerbWhisper:
		return d.whisper(sender, reg, args)
	case VerbLook:
		return d.look(sender, reg)
	case VerbGo:
		return d.move(sender, reg, args)
	default:
		return Decision{Replies: []Reply{
			{To: senderId, Text: expand(msgUnknownCommand, msgData{Verb: verb})},
		}}
	}
}

// nameSender consumes the entire input line as the player's name. The verb
// and argument split is undone here: the line was split only because the
// transport splits every line, not because a name has structure.
func (d *Dispatcher) nameSender(sender *game.Player, verb, args string, reg *game.Registry) Decision {
	name := verb
	if args != "" {
		name = verb + " " + args
	}

	var dec Decision
	dec.SetName = &name

	entered := expand(msgEntered, msgData{Name: name})
	reg.ForEach(func(id string, _ *game.Player) {
		dec.reply(id, entered)
	})

	dec.reply(sender.Id, expand(msgWelcome, msgData{Name: name}))
	dec.reply(sender.Id, expand(msgLevel, msgData{Level: sender.Level}))
	dec.reply(sender.Id, expand(msgGold, msgData{Gold: sender.Gold}))
	dec.reply(sender.Id, expand(msgInventory, msgData{Inventory: sender.Inventory}))

	if rm, ok := d.world.Room(sender.RoomId); ok {
		dec.reply(sender.Id, display.Wrap(rm.Description))
	} else {
		dec.reply(sender.Id, msgInvalidRoom)
	}

	return dec
}

// roomEcho delivers text to every player in the sender's room, the sender
// included.
func (d *Dispatcher) roomEcho(sender *game.Player, reg *game.Registry, text string) Decision {
	var dec Decision
	reg.ForEach(func(id string, p *game.Player) {
		if p.RoomId == sender.RoomId {
			dec.reply(id, text)
		}
	})
	return dec
}

func (d *Dispatcher) shout(sender *game.Player, reg *game.Registry, args string) Decision {
	text := expandNamed(sender, msgShout, args)

	var dec Decision
	reg.ForEach(func(id string, _ *game.Player) {
		dec.reply(id, text)
	})
	return dec
}

func (d *Dispatcher) whisper(sender *game.Player, reg *game.Registry, args string) Decision {
	// The first space splits target from message; the message is forwarded
	// verbatim, including internal whitespace.
	i := strings.Index(args, " ")
	if i <= 0 {
		return Decision{Replies: []Reply{{To: sender.Id, Text: msgWhisperUsage}}}
	}
	target := args[:i]
	text := args[i+1:]

	var dec Decision
	found := false
	reg.ForEach(func(id string, p *game.Player) {
		name, named := p.Name()
		if !named || name != target {
			return
		}
		// Duplicate names are permitted; every exact match is delivered to.
		found = true
		dec.reply(id, expand(msgWhisper, msgData{Target: target, Text: text}))
		dec.reply(sender.Id, expand(msgWhisperAck, msgData{Target: target, Text: text}))
	})

	if !found {
		dec.reply(sender.Id, expand(msgWhisperNotFound, msgData{Target: target}))
	}
	return dec
}

func (d *Dispatcher) look(sender *game.Player, reg *game.Registry) Decision {
	rm, ok := d.world.Room(sender.RoomId)
	if !ok {
		return Decision{Replies: []Reply{{To: sender.Id, Text: msgInvalidRoom}}}
	}

	var here []string
	reg.ForEach(func(_ string, p *game.Player) {
		if p.RoomId != sender.RoomId {
			return
		}
		if name, named := p.Name(); named {
			here = append(here, name)
		}
	})
	sort.Strings(here)

	var dec Decision
	dec.reply(sender.Id, display.Wrap(rm.Description))
	dec.reply(sender.Id, expand(msgPlayersHere, msgData{Players: display.JoinNames(here)}))
	dec.reply(sender.Id, expand(msgExitsHere, msgData{Exits: display.JoinNames(d.world.ExitNames(sender.RoomId))}))
	return dec
}

func (d *Dispatcher) move(sender *game.Player, reg *game.Registry, args string) Decision {
	// Exit matching is case-insensitive on the player's token; exit keys are
	// stored lowercase.
	exit := strings.ToLower(args)

	rm, ok := d.world.Room(sender.RoomId)
	if !ok {
		return Decision{Replies: []Reply{{To: sender.Id, Text: msgInvalidRoom}}}
	}

	destId, ok := rm.Exits[exit]
	if !ok {
		return Decision{Replies: []Reply{
			{To: sender.Id, Text: expand(msgUnknownExit, msgData{Exit: exit})},
		}}
	}

	// The world map validated every exit destination at startup.
	dest, _ := d.world.Room(destId)
	name, _ := sender.Name()

	var dec Decision
	dec.SetRoom = &destId

	left := expand(msgLeftRoom, msgData{Name: name, Exit: exit})
	arrived := expand(msgArrivedRoom, msgData{Name: name, Exit: exit})
	reg.ForEach(func(id string, p *game.Player) {
		if id == sender.Id {
			return
		}
		if p.RoomId == sender.RoomId {
			dec.reply(id, left)
		}
		if p.RoomId == destId {
			dec.reply(id, arrived)
		}
	})

	dec.reply(sender.Id, expand(msgYouArrive, msgData{Room: dest.Name}))
	return dec
}

func expandNamed(sender *game.Player, tmplStr, text string) string {
	name, _ := sender.Name()
	return expand(tmplStr, msgData{Name: name, Text: text})
}
