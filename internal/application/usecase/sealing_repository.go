package usecase

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationService "github.com/tregmine/webapi/internal/application/service"
	apperrors "github.com/tregmine/webapi/internal/errors"
)

type sealingApplicationRepository struct {
	next   ApplicationRepository
	sealer applicationService.SaltSealer
}

// NewSealingApplicationRepository wraps repo so that salts are sealed before
// they are written and unsealed after they are read. Callers only see plaintext salts.
func NewSealingApplicationRepository(
	repo ApplicationRepository,
	sealer applicationService.SaltSealer,
) ApplicationRepository {
	return &sealingApplicationRepository{next: repo, sealer: sealer}
}

func (s *sealingApplicationRepository) Create(ctx context.Context, app *applicationDomain.Application) error {
	sealed, err := s.sealer.Seal(ctx, app.SecretSalt)
	if err != nil {
		return err
	}

	stored := *app
	stored.SecretSalt = sealed
	return s.next.Create(ctx, &stored)
}

func (s *sealingApplicationRepository) Update(ctx context.Context, app *applicationDomain.Application) error {
	return s.next.Update(ctx, app)
}

func (s *sealingApplicationRepository) Get(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	app, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.unseal(ctx, app)
}

func (s *sealingApplicationRepository) GetForUpdate(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	app, err := s.next.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.unseal(ctx, app)
}

func (s *sealingApplicationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	apps, err := s.next.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		if _, err := s.unseal(ctx, app); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

func (s *sealingApplicationRepository) Delete(ctx context.Context, id snowflake.ID) error {
	return s.next.Delete(ctx, id)
}

func (s *sealingApplicationRepository) UpdateSecretSalt(
	ctx context.Context,
	id snowflake.ID,
	secretSalt string,
	updatedAt time.Time,
) error {
	sealed, err := s.sealer.Seal(ctx, secretSalt)
	if err != nil {
		return err
	}
	return s.next.UpdateSecretSalt(ctx, id, sealed, updatedAt)
}

func (s *sealingApplicationRepository) unseal(
	ctx context.Context,
	app *applicationDomain.Application,
) (*applicationDomain.Application, error) {
	salt, err := s.sealer.Unseal(ctx, app.SecretSalt)
	if err != nil {
		return nil, apperrors.Wrapf(err, "application %s", app.ID)
	}
	app.SecretSalt = salt
	return app, nil
}
