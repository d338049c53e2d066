// Package migrator runs the embedded goose migrations.
package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"slices"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type command func(ctx context.Context, p *goose.Provider, out io.Writer) error

var commands = map[string]command{
	"up": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		res, err := p.Up(ctx)
		report(out, res...)
		return err
	},
	"up-by-one": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		res, err := p.UpByOne(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			fmt.Fprintln(out, "no pending migrations")
			return nil
		}
		report(out, res)
		return err
	},
	"down": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		res, err := p.Down(ctx)
		report(out, res)
		return err
	},
	"reset": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		res, err := p.DownTo(ctx, 0)
		report(out, res...)
		return err
	},
	"status": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-20s %s\n", applied, s.Source.Path)
		}
		return nil
	},
	"version": func(ctx context.Context, p *goose.Provider, out io.Writer) error {
		v, err := p.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version %d\n", v)
		return nil
	},
}

// Commands lists the accepted command names.
func Commands() []string {
	return slices.Sorted(maps.Keys(commands))
}

// Run executes a goose command against files and writes a per-migration
// report to out. Unknown commands are rejected before connecting.
func Run(ctx context.Context, dbURL string, files fs.FS, name string, out io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown migration command %q (want one of %v)", name, Commands())
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	p, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	if err := cmd(ctx, p, out); err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	return nil
}

func report(out io.Writer, results ...*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		status := "OK"
		if r.Error != nil {
			status = "FAILED: " + r.Error.Error()
		}
		fmt.Fprintf(out, "%-4s %-40s %8s %s\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond), status)
	}
}
