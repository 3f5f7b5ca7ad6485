package database

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	t.Parallel()

	t.Run("db name", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "slumber", DB_NAME)
	})

	t.Run("schema name", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "slumber", GetSchemaName(false))
		require.Equal(t, "slumber_test", GetSchemaName(true))
	})

	t.Run("cloudsql connection string", func(t *testing.T) {
		t.Parallel()

		require.Equal(t,
			"user=user password=pass database=slumber host=/cloudsql/project:region:instance",
			GetCloudSQLConnectionString("user", "pass", "/cloudsql/project:region:instance"),
		)
	})

	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}

	t.Run("NewPostgresDatabase", func(t *testing.T) {
		t.Parallel()

		db, err := NewPostgresDatabase(LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		require.NotNil(t, db)
	})

	t.Run("createDatabaseIfNotExists", func(t *testing.T) {
		t.Parallel()

		db, err := sqlx.Connect("postgres", LOCAL_CONNECTION_STRING)
		require.NoError(t, err)

		t.Run("already existing", func(t *testing.T) {
			t.Parallel()

			require.NoError(t, createDatabaseIfNotExists(db, "postgres"))
			require.NoError(t, createDatabaseIfNotExists(db, DB_NAME))
		})

		t.Run("new database", func(t *testing.T) {
			t.Parallel()

			const characters = "abcdefghijklmnopqrstuvwxyz"
			bytes := make([]byte, 10)
			for i := range bytes {
				bytes[i] = characters[rand.IntN(len(characters))]
			}

			require.NoError(t, createDatabaseIfNotExists(db, fmt.Sprintf("zz_random_db_%s", string(bytes))))
		})
	})
}
