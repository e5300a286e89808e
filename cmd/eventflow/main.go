package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/eventflow/internal/client/app"
	"github.com/dmitrijs2005/eventflow/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	a.Run(ctx)

}
