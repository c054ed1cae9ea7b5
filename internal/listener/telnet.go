package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"
)

// TelnetListener serves the game over plain telnet. The telnet library owns
// option negotiation and CRLF handling; connections reach the session layer
// as plain line-oriented readers and writers.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// All live connections hang off one context so a single cancel tears
	// them down together at shutdown.
	connCtx, cancelConns := context.WithCancel(context.Background())

	h := &telnetHandler{
		cm:      l.cm,
		logger:  log.GetLogger(ctx),
		connCtx: connCtx,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), h)

	serveDone := make(chan struct{})
	defer close(serveDone)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			cancelConns()
			h.wg.Wait()
		case <-serveDone:
		}
	}()

	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg      sync.WaitGroup
	cm      *ConnectionManager
	logger  logrus.FieldLogger
	connCtx context.Context
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()

	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.Errorf("closing telnet connection: %s", err)
		}
	}()

	ctx := log.SetLogger(h.connCtx, h.logger)
	h.cm.AcceptConnection(ctx, conn)
}
