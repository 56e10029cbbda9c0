package sqlite

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/repository/sqlstore"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "'", "", "\"", "")

// NewStore opens a migrated in-memory store private to the calling test.
func NewStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameCleaner.Replace(t.Name()))
	store, err := sqlstore.Open(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close sqlite store: %v", err)
		}
	})
	return store
}
