package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/duskmoor/realmd/cmd/realmd/command"
	service "github.com/pixil98/go-service"
)

func main() {
	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "err", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		slog.Error("running application", "err", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
