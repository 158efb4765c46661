package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eventportal/internal/client/cli"
	"github.com/dmitrijs2005/eventportal/internal/client/config"
	"github.com/dmitrijs2005/eventportal/internal/flagx"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	code := app.Run(ctx, flagx.Positional(os.Args[1:], config.ValueFlags))
	stop()
	os.Exit(code)

}
