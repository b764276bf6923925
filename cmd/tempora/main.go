package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/adapter/cli"
	cliRecommend "github.com/temporahq/tempora/adapter/cli/recommend"
	cliSlot "github.com/temporahq/tempora/adapter/cli/slot"
	cliStats "github.com/temporahq/tempora/adapter/cli/stats"
	cliTask "github.com/temporahq/tempora/adapter/cli/task"
	"github.com/temporahq/tempora/internal/app"
	"github.com/temporahq/tempora/pkg/config"
	"github.com/temporahq/tempora/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if cfg.OutboxProcessorEnabled {
		if err := container.StartOutboxProcessor(ctx); err != nil {
			logger.Error("failed to start outbox processor", "error", err)
			os.Exit(1)
		}
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid TEMPORA_USER_ID", "error", err)
		os.Exit(1)
	}
	cli.SetApp(cli.NewApp(container, userID))

	cli.AddCommand(cliTask.Cmd)
	cli.AddCommand(cliSlot.Cmd)
	cli.AddCommand(cliRecommend.Cmd)
	cli.AddCommand(cliStats.Cmd)

	cli.ExecuteContext(ctx)
}
