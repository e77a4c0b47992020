package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/application/usecase"
	"github.com/tregmine/webapi/internal/testutil"
)

func TestApplicationRepository_Database(t *testing.T) {
	drivers := []struct {
		name  string
		setup func(t *testing.T) *sql.DB
		repo  func(db *sql.DB) usecase.ApplicationRepository
	}{
		{
			name:  "mysql",
			setup: testutil.SetupMySQLDB,
			repo: func(db *sql.DB) usecase.ApplicationRepository {
				return NewMySQLApplicationRepository(db)
			},
		},
		{
			name:  "postgres",
			setup: testutil.SetupPostgresDB,
			repo: func(db *sql.DB) usecase.ApplicationRepository {
				return NewPostgreSQLApplicationRepository(db)
			},
		},
	}

	for _, driver := range drivers {
		t.Run(driver.name, func(t *testing.T) {
			db := driver.setup(t)
			defer testutil.TeardownDB(t, db)

			ctx := context.Background()
			repo := driver.repo(db)

			id, salt := testutil.CreateTestApplication(t, db, driver.name, "launcher")

			app, err := repo.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "launcher", app.Name)
			assert.Equal(t, salt, app.SecretSalt)
			assert.Equal(t, applicationDomain.AccessTrusted, app.AccessLevel)

			app.Name = "launcher-v2"
			app.Disabled = true
			app.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
			require.NoError(t, repo.Update(ctx, app))

			require.NoError(t, repo.UpdateSecretSalt(ctx, id, "rolled", app.UpdatedAt))

			got, err := repo.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "launcher-v2", got.Name)
			assert.True(t, got.Disabled)
			assert.Equal(t, "rolled", got.SecretSalt)

			apps, err := repo.List(ctx, 0, 10)
			require.NoError(t, err)
			assert.Len(t, apps, 1)

			require.NoError(t, repo.Delete(ctx, id))
			_, err = repo.Get(ctx, id)
			assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
		})
	}
}
