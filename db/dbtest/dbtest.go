// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/KAsare1/blog-server/db"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated in-memory sqlite database closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	gdb, err := db.NewStorage(db.Options{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	if err := db.Migrate(gdb, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Store wraps Open in a GormStore.
func Store(t testing.TB) *db.GormStore {
	t.Helper()
	return db.NewStore(Open(t))
}
