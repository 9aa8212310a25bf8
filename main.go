package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"greeter/greeter"
	"greeter/server"
	"greeter/utils"

	"go.uber.org/zap"
)

func main() {
	// Resolve the configuration once, before anything else reads it
	config, err := utils.GetConfig()
	if err != nil {
		logger, _ := utils.InitLogger(utils.DefaultLogLevel)
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := utils.InitLogger(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Setup context to handle SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, config, greeter.NewGreeter(), os.Stdout); err != nil {
		logger.Fatal("server error", zap.Int("port", config.Port), zap.Error(err))
	}
}
