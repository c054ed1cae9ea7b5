package transport

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/simple-mud/internal/driver"
	"github.com/pixil98/simple-mud/internal/messaging"
)

// sessionBuffer bounds how many undelivered messages a slow connection can
// hold before further ones are dropped.
const sessionBuffer = 64

// Run owns one connection for its whole life: it mints the client id,
// subscribes to the client's delivery subject, reports the connect, feeds
// input lines to the command queue, and reports the disconnect on the way
// out. It blocks until the connection or the context ends.
func (m *SessionManager) Run(ctx context.Context, conn io.ReadWriter) error {
	id := uuid.NewString()

	msgs := make(chan []byte, sessionBuffer)
	unsub, err := m.bus.Subscribe(messaging.ClientSubject(id), func(data []byte) {
		select {
		case msgs <- data:
		default:
			// Best-effort delivery: a connection that can't drain its
			// buffer loses messages rather than stalling the bus.
			slog.Warn("dropping message for slow client", "clientId", id)
		}
	})
	if err != nil {
		return err
	}
	defer unsub()

	// Subscribe before announcing the join so replies sent in the same tick
	// as the connect are not lost.
	m.enqueueJoin(id)
	defer m.enqueuePart(id)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-msgs:
			if _, err := conn.Write(append(msg, '\n')); err != nil {
				// The read side will surface the disconnect; the failed
				// write itself is not an error worth propagating.
				slog.Debug("writing to client", "clientId", id, "error", err)
			}

		case line, ok := <-lines:
			if !ok {
				// Connection closed.
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			verb, args, _ := strings.Cut(strings.TrimSpace(line), " ")
			m.enqueueCommand(driver.CommandEvent{
				ClientId: id,
				Verb:     verb,
				Args:     args,
			})
		}
	}
}
