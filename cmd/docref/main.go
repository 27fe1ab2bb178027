package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"
)

func main() {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	cli.MainContext(ctx, MainCommand(ctx))
}
