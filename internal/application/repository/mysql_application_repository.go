// Package repository implements application persistence for MySQL and PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/database"
	apperrors "github.com/tregmine/webapi/internal/errors"
)

const mysqlSelectApplication = `SELECT id, name, access_level, disabled, secret_salt, created_at, updated_at
			  FROM applications`

// MySQLApplicationRepository stores applications in MySQL. Ids are BIGINT and
// every method joins the ambient transaction through database.GetTx.
type MySQLApplicationRepository struct {
	db *sql.DB
}

// NewMySQLApplicationRepository creates a new MySQL Application repository.
func NewMySQLApplicationRepository(db *sql.DB) *MySQLApplicationRepository {
	return &MySQLApplicationRepository{db: db}
}

func (m *MySQLApplicationRepository) Create(ctx context.Context, app *applicationDomain.Application) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO applications (id, name, access_level, disabled, secret_salt, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		app.ID.Int64(),
		app.Name,
		string(app.AccessLevel),
		app.Disabled,
		app.SecretSalt,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create application")
	}
	return nil
}

// Update writes name, access level, disabled and updated_at. The salt is only
// changed through UpdateSecretSalt.
func (m *MySQLApplicationRepository) Update(ctx context.Context, app *applicationDomain.Application) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE applications
			  SET name = ?,
				  access_level = ?,
				  disabled = ?,
				  updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		app.Name,
		string(app.AccessLevel),
		app.Disabled,
		app.UpdatedAt,
		app.ID.Int64(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update application")
	}
	return requireAffected(result, "failed to update application")
}

func (m *MySQLApplicationRepository) Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, m.db)
	row := querier.QueryRowContext(ctx, mysqlSelectApplication+` WHERE id = ?`, id.Int64())
	return scanApplication(row, "failed to get application")
}

// GetForUpdate reads the row with an exclusive lock held until the surrounding
// transaction ends.
func (m *MySQLApplicationRepository) GetForUpdate(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, m.db)
	row := querier.QueryRowContext(ctx, mysqlSelectApplication+` WHERE id = ? FOR UPDATE`, id.Int64())
	return scanApplication(row, "failed to get application for update")
}

// List returns applications newest first.
func (m *MySQLApplicationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(
		ctx,
		mysqlSelectApplication+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list applications")
	}
	return scanApplications(rows)
}

func (m *MySQLApplicationRepository) Delete(ctx context.Context, id snowflake.ID) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id.Int64())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete application")
	}
	return requireAffected(result, "failed to delete application")
}

func (m *MySQLApplicationRepository) UpdateSecretSalt(
	ctx context.Context,
	id snowflake.ID,
	secretSalt string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE applications SET secret_salt = ?, updated_at = ? WHERE id = ?`,
		secretSalt,
		updatedAt,
		id.Int64(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update application salt")
	}
	return requireAffected(result, "failed to update application salt")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicationRow(row rowScanner) (*applicationDomain.Application, error) {
	var app applicationDomain.Application
	var id int64
	var accessLevel string

	if err := row.Scan(
		&id,
		&app.Name,
		&accessLevel,
		&app.Disabled,
		&app.SecretSalt,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}

	app.ID = snowflake.ID(id)
	app.AccessLevel = applicationDomain.AccessLevel(accessLevel)
	return &app, nil
}

func scanApplication(row *sql.Row, message string) (*applicationDomain.Application, error) {
	app, err := scanApplicationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, applicationDomain.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}
	return app, nil
}

func scanApplications(rows *sql.Rows) ([]*applicationDomain.Application, error) {
	defer func() {
		_ = rows.Close()
	}()

	apps := make([]*applicationDomain.Application, 0)
	for rows.Next() {
		app, err := scanApplicationRow(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan application row")
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating application rows")
	}
	return apps, nil
}

// requireAffected maps an update or delete that touched no row to ErrApplicationNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return applicationDomain.ErrApplicationNotFound
	}
	return nil
}
