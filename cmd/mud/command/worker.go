package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pixil98/simple-mud/internal/commands"
	"github.com/pixil98/simple-mud/internal/driver"
	"github.com/pixil98/simple-mud/internal/game"
	"github.com/pixil98/simple-mud/internal/listener"
	"github.com/pixil98/simple-mud/internal/transport"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Message bus carrying every outbound line to its client's session
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Static world
	world, err := cfg.World.BuildWorldMap()
	if err != nil {
		return nil, fmt.Errorf("building world map: %w", err)
	}

	// Mutable state, owned by the driver's tick loop
	registry := game.NewRegistry(world)

	// Transport collaborator: sessions feed events in, sends fan back out
	sessions := transport.NewSessionManager(nats)

	var opts []driver.DriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		opts = append(opts, driver.WithTickLength(d))
	}
	drv := driver.NewDriver(sessions, registry, commands.NewDispatcher(world), opts...)

	// Create Listeners
	cm := listener.NewConnectionManager(sessions)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	return service.WorkerList{
		"nats":      nats,
		"driver":    drv,
		"listeners": &listeners,
	}, nil
}
