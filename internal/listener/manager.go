package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/simple-mud/internal/transport"
)

// ConnectionManager hands accepted connections to the session manager. It is
// the seam between the listeners, which speak wire protocols, and the
// transport layer, which speaks game events.
type ConnectionManager struct {
	sessions *transport.SessionManager
}

func NewConnectionManager(sessions *transport.SessionManager) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.Run(ctx, conn); err != nil {
		slog.WarnContext(ctx, "client session", "error", err)
	}
}
