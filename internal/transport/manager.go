package transport

import (
	"context"
	"sync"

	"github.com/pixil98/simple-mud/internal/driver"
	"github.com/pixil98/simple-mud/internal/messaging"
)

// Bus is the messaging fabric sessions deliver through: outbound text is a
// publish to the recipient's subject, and each session subscribes to its own.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// SessionManager is the transport collaborator for the tick loop. Sessions
// append connect, disconnect, and command events from their own goroutines;
// Poll snapshots those lists atomically so the tick loop sees one consistent
// batch per tick.
type SessionManager struct {
	bus Bus

	mu       sync.Mutex
	joined   []string
	parted   []string
	commands []driver.CommandEvent

	// Snapshot served between Polls.
	curJoined   []string
	curParted   []string
	curCommands []driver.CommandEvent
}

func NewSessionManager(bus Bus) *SessionManager {
	return &SessionManager{bus: bus}
}

// Poll snapshots the pending event lists and clears the queues. Events that
// arrive after the snapshot wait for the next tick.
func (m *SessionManager) Poll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.curJoined, m.joined = m.joined, nil
	m.curParted, m.parted = m.parted, nil
	m.curCommands, m.commands = m.commands, nil
	return nil
}

func (m *SessionManager) NewConnections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.curJoined
}

func (m *SessionManager) DroppedConnections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.curParted
}

func (m *SessionManager) PendingCommands() []driver.CommandEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.curCommands
}

// Send publishes text to the client's subject. Delivery is best-effort: if
// the session is already gone the publish has no subscriber and the message
// is dropped.
func (m *SessionManager) Send(clientId, text string) error {
	return m.bus.Publish(messaging.ClientSubject(clientId), []byte(text))
}

func (m *SessionManager) enqueueJoin(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joined = append(m.joined, id)
}

func (m *SessionManager) enqueuePart(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parted = append(m.parted, id)
}

func (m *SessionManager) enqueueCommand(ev driver.CommandEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, ev)
}
