// Command marketplace applies the marketplace schema and seed data.
//
//	go run ./migrations/marketplace [up|down|status|...]
package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := migrator.Run(context.Background(), cfg.DatabaseURL, MigrationsFS, command, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
