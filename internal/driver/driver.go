package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-log"
	"github.com/pixil98/simple-mud/internal/commands"
	"github.com/pixil98/simple-mud/internal/game"
)

const DefaultTickLength = 100 * time.Millisecond

// CommandEvent is one line of player input, split by the transport into the
// first whitespace-delimited token and everything after the first space.
type CommandEvent struct {
	ClientId string
	Verb     string
	Args     string
}

// Transport is the network collaborator. Poll advances I/O and snapshots the
// event lists; the three accessors read that snapshot until the next Poll.
// Send is best-effort delivery to one client.
type Transport interface {
	Poll(ctx context.Context) error
	NewConnections() []string
	DroppedConnections() []string
	PendingCommands() []CommandEvent
	Send(clientId, text string) error
}

// Driver runs the game's single steady-state tick: pull transport events,
// reconcile them against the registry through the dispatcher, push replies
// back out. All world-state mutation happens here, on one goroutine.
type Driver struct {
	tickLength time.Duration
	transport  Transport
	registry   *game.Registry
	dispatcher *commands.Dispatcher
}

func NewDriver(t Transport, reg *game.Registry, disp *commands.Dispatcher, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		transport:  t,
		registry:   reg,
		dispatcher: disp,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until the context is canceled. The ticker is the idle wait
// between ticks; there is no spin when no transport work is pending.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick processes one round of transport events. Per-event problems turn into
// replies or log lines and never stop the loop; only transport failure is
// returned, and that ends the server.
func (d *Driver) Tick(ctx context.Context) error {
	err := d.transport.Poll(ctx)
	if err != nil {
		return fmt.Errorf("polling transport: %w", err)
	}

	el := errors.NewErrorList()
	el.Add(d.admitNewPlayers(ctx))
	el.Add(d.retireDroppedPlayers(ctx))
	el.Add(d.applyCommands(ctx))
	return el.Err()
}

func (d *Driver) admitNewPlayers(ctx context.Context) error {
	el := errors.NewErrorList()

	for _, id := range d.transport.NewConnections() {
		_, err := d.registry.Add(id)
		if err != nil {
			// The transport contract says ids are unique per live
			// connection; a duplicate is dropped, not fatal.
			log.GetLogger(ctx).Warnf("ignoring duplicate connection %s", id)
			continue
		}

		el.Add(d.send(id, commands.NamePrompt))
	}

	return el.Err()
}

func (d *Driver) retireDroppedPlayers(ctx context.Context) error {
	el := errors.NewErrorList()

	for _, id := range d.transport.DroppedConnections() {
		p, err := d.registry.Get(id)
		if err != nil {
			// Already removed earlier this tick, or never admitted.
			continue
		}

		name, named := p.Name()
		d.registry.Remove(id)

		// A player who never finished naming was invisible to everyone;
		// their departure is too.
		if !named {
			continue
		}

		quit := commands.QuitMessage(name)
		d.registry.ForEach(func(otherId string, _ *game.Player) {
			el.Add(d.send(otherId, quit))
		})
	}

	return el.Err()
}

func (d *Driver) applyCommands(ctx context.Context) error {
	el := errors.NewErrorList()

	for _, ev := range d.transport.PendingCommands() {
		if _, err := d.registry.Get(ev.ClientId); err != nil {
			// The sender disconnected earlier this tick; the command is
			// dropped, not queued.
			continue
		}

		dec := d.dispatcher.Dispatch(ev.ClientId, ev.Verb, ev.Args, d.registry)

		// Mutations land before any reply goes out, so every broadcast
		// scope below was computed against the state it describes.
		if dec.SetName != nil {
			if err := d.registry.SetName(ev.ClientId, *dec.SetName); err != nil {
				log.GetLogger(ctx).Warnf("setting name for %s: %s", ev.ClientId, err)
			}
		}
		if dec.SetRoom != nil {
			if err := d.registry.SetRoom(ev.ClientId, *dec.SetRoom); err != nil {
				log.GetLogger(ctx).Warnf("setting room for %s: %s", ev.ClientId, err)
			}
		}

		for _, r := range dec.Replies {
			el.Add(d.send(r.To, r.Text))
		}
	}

	return el.Err()
}

func (d *Driver) send(to, text string) error {
	err := d.transport.Send(to, text)
	if err != nil {
		return fmt.Errorf("sending to %s: %w", to, err)
	}
	return nil
}
