package postgres

import (
	"alcyxob/fitness-tracker/internal/repository/repotest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
)

// database opens POSTGRES_TEST_DSN once per test binary. Every suite uses
// random user ids, so tests share the database without cleanup.
func database(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("set POSTGRES_TEST_DSN to run postgres repository integration tests")
	}
	dbOnce.Do(func() {
		testDB, dbErr = Open(dsn)
		if dbErr != nil {
			return
		}
		dbErr = Migrate(testDB)
	})
	require.NoError(t, dbErr)
	return testDB
}

func TestPostgresTransactor(t *testing.T) {
	repotest.RunTransactorSuite(t, NewTransactor(database(t)))
}

func TestPostgresUserRepository(t *testing.T) {
	repotest.RunUserRepositorySuite(t, NewUserRepository(database(t)))
}

func TestPostgresProgramRepository(t *testing.T) {
	repotest.RunProgramRepositorySuite(t, NewProgramRepository(database(t)))
}
