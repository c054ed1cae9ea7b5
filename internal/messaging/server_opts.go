package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithReadyTimeout bounds how long Start waits for the embedded server to
// accept connections before giving up.
func WithReadyTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.readyTimeout = d
	}
}

// WithBindAddress sets the host and port the embedded server listens on.
// An empty host keeps the loopback default; a zero port picks a free one.
func WithBindAddress(host string, port int) NatsServerOpt {
	return func(n *NatsServer) {
		if host != "" {
			n.host = host
		}
		n.port = port
	}
}
