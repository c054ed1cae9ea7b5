package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// ClientSubject returns the delivery subject for one client. Every outbound
// message in the game is a publish to the recipient's subject; the session
// that owns the connection is the only subscriber.
func ClientSubject(clientId string) string {
	return "client." + clientId
}

const defaultReadyTimeout = 10 * time.Second

// NatsServer runs a NATS server inside the process and keeps one internal
// client connection open for the rest of the code to publish and subscribe
// through. It is a service worker: Start blocks until the context ends.
type NatsServer struct {
	ns   *server.Server
	conn *nats.Conn

	readyTimeout time.Duration
	host         string
	port         int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		readyTimeout: defaultReadyTimeout,
		host:         "127.0.0.1",
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host: s.host,
		Port: s.port,

		// Signals are the application's job, not the embedded server's.
		NoSigs: true,
	})
	if err != nil {
		return nil, err
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.readyTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(fmt.Sprintf("nats://%s:%d", n.host, n.port))
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()

	n.conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()
	return nil
}

// Publish sends data to the subject. Fire-and-forget: nobody subscribed means
// the message is gone, which is the delivery model the sessions rely on.
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// Subscribe registers a handler for the subject and returns the matching
// unsubscribe function.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}

	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}

	return func() { _ = sub.Unsubscribe() }, nil
}
