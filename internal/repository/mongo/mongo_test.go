package mongo

import (
	"alcyxob/fitness-tracker/internal/repository/repotest"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// testDatabase connects to MONGO_TEST_URI, which must point at a replica set,
// and returns a throwaway database dropped at the end of the test.
func testDatabase(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("set MONGO_TEST_URI to run mongo repository integration tests")
	}
	client, err := ConnectDB(uri)
	require.NoError(t, err)

	db := client.Database("tracker_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = DisconnectDB(client)
	})
	return client, db
}

func TestMongoTransactor(t *testing.T) {
	client, db := testDatabase(t)
	repotest.RunTransactorSuite(t, NewTransactor(client, db))
}

func TestMongoUserRepository(t *testing.T) {
	_, db := testDatabase(t)
	repotest.RunUserRepositorySuite(t, NewMongoUserRepository(db))
}

func TestMongoProgramRepository(t *testing.T) {
	_, db := testDatabase(t)
	repotest.RunProgramRepositorySuite(t, NewMongoProgramRepository(db))
}
