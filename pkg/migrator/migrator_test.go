package migrator

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RejectsUnknownCommand(t *testing.T) {
	err := Run(context.Background(), "postgres://unused", fstest.MapFS{}, "drop-everything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
	assert.Contains(t, err.Error(), "up-by-one")
}

func TestCommands(t *testing.T) {
	assert.Equal(t, []string{"down", "reset", "status", "up", "up-by-one", "version"}, Commands())
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf,
		&goose.MigrationResult{
			Source:    &goose.Source{Path: "00001_init.sql", Version: 1},
			Duration:  12 * time.Millisecond,
			Direction: "up",
		},
		nil,
		&goose.MigrationResult{
			Source:    &goose.Source{Path: "00002_seed_categories.sql", Version: 2},
			Direction: "up",
			Error:     errors.New("duplicate key"),
		},
	)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "00001_init.sql")
	assert.Contains(t, string(lines[0]), "12ms")
	assert.Contains(t, string(lines[0]), "OK")
	assert.Contains(t, string(lines[1]), "FAILED: duplicate key")
}
