package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/spacebook/internal/buildinfo"
	"github.com/dmitrijs2005/spacebook/internal/cli"
	"github.com/dmitrijs2005/spacebook/internal/config"
	"github.com/dmitrijs2005/spacebook/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)
	logger.Info(ctx, "starting", "data_dir", cfg.DataDir)

	app := cli.NewApp(cfg, os.Stdin, os.Stdout, logger)
	app.Run(ctx)

}
