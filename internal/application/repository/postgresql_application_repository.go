package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/database"
	apperrors "github.com/tregmine/webapi/internal/errors"
)

const postgresSelectApplication = `SELECT id, name, access_level, disabled, secret_salt, created_at, updated_at
			  FROM applications`

// PostgreSQLApplicationRepository stores applications in PostgreSQL.
type PostgreSQLApplicationRepository struct {
	db *sql.DB
}

// NewPostgreSQLApplicationRepository creates a new PostgreSQL Application repository.
func NewPostgreSQLApplicationRepository(db *sql.DB) *PostgreSQLApplicationRepository {
	return &PostgreSQLApplicationRepository{db: db}
}

func (p *PostgreSQLApplicationRepository) Create(ctx context.Context, app *applicationDomain.Application) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO applications (id, name, access_level, disabled, secret_salt, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

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

func (p *PostgreSQLApplicationRepository) Update(ctx context.Context, app *applicationDomain.Application) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE applications
			  SET name = $1, access_level = $2, disabled = $3, updated_at = $4
			  WHERE id = $5`

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

func (p *PostgreSQLApplicationRepository) Get(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, p.db)
	row := querier.QueryRowContext(ctx, postgresSelectApplication+` WHERE id = $1`, id.Int64())
	return scanApplication(row, "failed to get application")
}

func (p *PostgreSQLApplicationRepository) GetForUpdate(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, p.db)
	row := querier.QueryRowContext(ctx, postgresSelectApplication+` WHERE id = $1 FOR UPDATE`, id.Int64())
	return scanApplication(row, "failed to get application for update")
}

func (p *PostgreSQLApplicationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(
		ctx,
		postgresSelectApplication+` ORDER BY id DESC LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list applications")
	}
	return scanApplications(rows)
}

func (p *PostgreSQLApplicationRepository) Delete(ctx context.Context, id snowflake.ID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.Int64())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete application")
	}
	return requireAffected(result, "failed to delete application")
}

func (p *PostgreSQLApplicationRepository) UpdateSecretSalt(
	ctx context.Context,
	id snowflake.ID,
	secretSalt string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE applications SET secret_salt = $1, updated_at = $2 WHERE id = $3`,
		secretSalt,
		updatedAt,
		id.Int64(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update application salt")
	}
	return requireAffected(result, "failed to update application salt")
}
