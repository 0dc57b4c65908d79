package testutil

import (
	"fmt"
	"testing"

	"github.com/falcomnl/api-controller/internal/infrastructure/persistence"
	"github.com/falcomnl/api-controller/internal/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MemoryDSN returns a DSN for a private in-memory SQLite database.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

// SetupTestDB opens an in-memory SQLite database with the given models
// migrated. The connection is closed when the test ends.
func SetupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := persistence.NewDBConnection(config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  MemoryDSN(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := persistence.CloseDB(db); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, persistence.Migrate(db, models...))
	return db
}
