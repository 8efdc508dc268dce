package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/cli"
)

func TestMigrateAndSync(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "civicsync.db")

	t.Run("migrate creates tables and seeds reference data", func(t *testing.T) {
		err := cli.Run(ctx, []string{"civicsync", "migrate", "--db-dsn", dsn}, "test")
		gt.NoError(t, err).Required()
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		err := cli.Run(ctx, []string{"civicsync", "migrate", "--db-dsn", dsn}, "test")
		gt.NoError(t, err).Required()
	})

	t.Run("full sync against an in-memory document store", func(t *testing.T) {
		var buf bytes.Buffer
		restore := cli.SetSyncOutput(&buf)
		defer restore()

		err := cli.Run(ctx, []string{"civicsync", "sync", "full",
			"--db-dsn", dsn,
			"--document-store", "memory",
		}, "test")
		gt.NoError(t, err).Required()

		out := buf.String()
		gt.String(t, out).Contains("pull")
		gt.String(t, out).Contains("push")
		gt.String(t, out).Contains("report_status_codes")
	})

	t.Run("runs lists the recorded runs", func(t *testing.T) {
		var buf bytes.Buffer
		restore := cli.SetSyncOutput(&buf)
		defer restore()

		err := cli.Run(ctx, []string{"civicsync", "sync", "runs",
			"--db-dsn", dsn,
			"--document-store", "memory",
			"--limit", "5",
		}, "test")
		gt.NoError(t, err).Required()
		gt.String(t, buf.String()).Contains("push")
	})
}

func TestSyncPullWithMemoryBackends(t *testing.T) {
	var buf bytes.Buffer
	restore := cli.SetSyncOutput(&buf)
	defer restore()

	err := cli.Run(context.Background(), []string{"civicsync", "sync", "pull",
		"--db-driver", "memory",
		"--document-store", "memory",
	}, "test")
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains("pull")
}

func TestUnsupportedBackend(t *testing.T) {
	err := cli.Run(context.Background(), []string{"civicsync", "sync", "pull",
		"--db-driver", "postgres",
		"--db-dsn", "host=localhost",
		"--document-store", "memory",
	}, "test")
	gt.Value(t, err).NotNil()
}
