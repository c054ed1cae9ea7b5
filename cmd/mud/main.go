package main

import (
	"context"

	"github.com/pixil98/go-log"
	"github.com/pixil98/go-service"
	"github.com/pixil98/simple-mud/cmd/mud/command"
)

func main() {
	logger := log.NewLogger()

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		logger.WithError(err).Fatal("building server")
	}

	if err := app.Run(context.Background()); err != nil {
		logger.WithError(err).Fatal("running server")
	}

	logger.Info("exiting")
}
