package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/database"
)

var applicationColumns = []string{
	"id", "name", "access_level", "disabled", "secret_salt", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testApplication() *applicationDomain.Application {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &applicationDomain.Application{
		ID:          snowflake.ID(175928847299117063),
		Name:        "map-viewer",
		AccessLevel: applicationDomain.AccessTrusted,
		Disabled:    false,
		SecretSalt:  "0a1b2c3d",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func applicationRow(app *applicationDomain.Application) *sqlmock.Rows {
	return sqlmock.NewRows(applicationColumns).AddRow(
		app.ID.Int64(),
		app.Name,
		string(app.AccessLevel),
		app.Disabled,
		app.SecretSalt,
		app.CreatedAt,
		app.UpdatedAt,
	)
}

func TestMySQLApplicationRepository_Create(t *testing.T) {
	ctx := context.Background()
	app := testApplication()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
			WithArgs(app.ID.Int64(), app.Name, "trusted", false, app.SecretSalt, app.CreatedAt, app.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewMySQLApplicationRepository(db).Create(ctx, app)
		assert.NoError(t, err)
	})

	t.Run("Error_Exec", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
			WillReturnError(errors.New("connection reset"))

		err := NewMySQLApplicationRepository(db).Create(ctx, app)
		assert.ErrorContains(t, err, "failed to create application")
	})
}

func TestMySQLApplicationRepository_Get(t *testing.T) {
	ctx := context.Background()
	app := testApplication()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = ?")).
			WithArgs(app.ID.Int64()).
			WillReturnRows(applicationRow(app))

		got, err := NewMySQLApplicationRepository(db).Get(ctx, app.ID)

		require.NoError(t, err)
		assert.Equal(t, app, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = ?")).
			WithArgs(app.ID.Int64()).
			WillReturnRows(sqlmock.NewRows(applicationColumns))

		got, err := NewMySQLApplicationRepository(db).Get(ctx, app.ID)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = ?")).
			WillReturnError(errors.New("connection refused"))

		got, err := NewMySQLApplicationRepository(db).Get(ctx, app.ID)

		assert.Nil(t, got)
		assert.NotErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
		assert.ErrorContains(t, err, "failed to get application")
	})
}

func TestMySQLApplicationRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	app := testApplication()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? FOR UPDATE")).
		WithArgs(app.ID.Int64()).
		WillReturnRows(applicationRow(app))
	mock.ExpectCommit()

	repo := NewMySQLApplicationRepository(db)
	err := database.NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		got, err := repo.GetForUpdate(ctx, app.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, app.Name, got.Name)
		return nil
	})
	assert.NoError(t, err)
}

func TestMySQLApplicationRepository_List(t *testing.T) {
	ctx := context.Background()
	first := testApplication()
	second := testApplication()
	second.ID = snowflake.ID(175928847299117000)
	second.Name = "launcher"
	second.AccessLevel = applicationDomain.AccessAdmin

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := applicationRow(first).AddRow(
			second.ID.Int64(), second.Name, "admin", true, second.SecretSalt, second.CreatedAt, second.UpdatedAt,
		)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC LIMIT ? OFFSET ?")).
			WithArgs(10, 20).
			WillReturnRows(rows)

		apps, err := NewMySQLApplicationRepository(db).List(ctx, 20, 10)

		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, first.ID, apps[0].ID)
		assert.Equal(t, "launcher", apps[1].Name)
		assert.Equal(t, applicationDomain.AccessAdmin, apps[1].AccessLevel)
		assert.True(t, apps[1].Disabled)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC")).
			WillReturnRows(sqlmock.NewRows(applicationColumns))

		apps, err := NewMySQLApplicationRepository(db).List(ctx, 0, 50)

		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})
}

func TestMySQLApplicationRepository_Update(t *testing.T) {
	ctx := context.Background()
	app := testApplication()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE applications")).
			WithArgs(app.Name, "trusted", false, app.UpdatedAt, app.ID.Int64()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLApplicationRepository(db).Update(ctx, app))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE applications")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMySQLApplicationRepository(db).Update(ctx, app)
		assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
	})
}

func TestMySQLApplicationRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := snowflake.ID(175928847299117063)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications WHERE id = ?")).
			WithArgs(id.Int64()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLApplicationRepository(db).Delete(ctx, id))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMySQLApplicationRepository(db).Delete(ctx, id)
		assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
	})
}

func TestMySQLApplicationRepository_UpdateSecretSalt(t *testing.T) {
	ctx := context.Background()
	id := snowflake.ID(175928847299117063)
	updatedAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET secret_salt = ?, updated_at = ? WHERE id = ?")).
			WithArgs("ffee", updatedAt, id.Int64()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLApplicationRepository(db).UpdateSecretSalt(ctx, id, "ffee", updatedAt))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET secret_salt")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMySQLApplicationRepository(db).UpdateSecretSalt(ctx, id, "ffee", updatedAt)
		assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
	})
}
