package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationService "github.com/tregmine/webapi/internal/application/service"
	"github.com/tregmine/webapi/internal/database"
	apperrors "github.com/tregmine/webapi/internal/errors"
)

type applicationUseCase struct {
	txManager    database.TxManager
	appRepo      ApplicationRepository
	tokenUseCase TokenUseCase
	saltService  applicationService.SaltService
	idGenerator  applicationService.IDGenerator
	now          func() time.Time
}

// NewApplicationUseCase creates a new ApplicationUseCase with the provided dependencies.
func NewApplicationUseCase(
	txManager database.TxManager,
	appRepo ApplicationRepository,
	tokenUseCase TokenUseCase,
	saltService applicationService.SaltService,
	idGenerator applicationService.IDGenerator,
) ApplicationUseCase {
	return &applicationUseCase{
		txManager:    txManager,
		appRepo:      appRepo,
		tokenUseCase: tokenUseCase,
		saltService:  saltService,
		idGenerator:  idGenerator,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func validateFields(name string, level applicationDomain.AccessLevel) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "name must not be blank")
	}
	if !level.IsValid() {
		return apperrors.Wrapf(applicationDomain.ErrInvalidAccessLevel, "%q", string(level))
	}
	return nil
}

func (a *applicationUseCase) Create(
	ctx context.Context,
	input *applicationDomain.CreateApplicationInput,
) (*applicationDomain.CreateApplicationOutput, error) {
	if err := validateFields(input.Name, input.AccessLevel); err != nil {
		return nil, err
	}

	salt, err := a.saltService.GenerateSalt()
	if err != nil {
		return nil, err
	}

	now := a.now()
	app := &applicationDomain.Application{
		ID:          a.idGenerator.Generate(),
		Name:        input.Name,
		AccessLevel: input.AccessLevel,
		Disabled:    input.Disabled,
		SecretSalt:  salt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	token, err := a.tokenUseCase.CreateToken(ctx, app)
	if err != nil {
		return nil, err
	}

	return &applicationDomain.CreateApplicationOutput{
		Application: app,
		Token:       token,
	}, nil
}

func (a *applicationUseCase) Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error) {
	return a.appRepo.Get(ctx, id)
}

func (a *applicationUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	return a.appRepo.List(ctx, offset, limit)
}

func (a *applicationUseCase) Update(
	ctx context.Context,
	id snowflake.ID,
	input *applicationDomain.UpdateApplicationInput,
) (*applicationDomain.Application, error) {
	if err := validateFields(input.Name, input.AccessLevel); err != nil {
		return nil, err
	}

	var app *applicationDomain.Application
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := a.appRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		current.Name = input.Name
		current.AccessLevel = input.AccessLevel
		current.Disabled = input.Disabled
		current.UpdatedAt = a.now()

		if err := a.appRepo.Update(ctx, current); err != nil {
			return err
		}
		app = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (a *applicationUseCase) Delete(ctx context.Context, id snowflake.ID) error {
	return a.appRepo.Delete(ctx, id)
}

// RollSalt locks the row, writes the new salt and commits before minting the
// returned token, so the token never outlives a rolled-back rotation.
func (a *applicationUseCase) RollSalt(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.RollSaltOutput, error) {
	var app *applicationDomain.Application
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := a.appRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		salt, err := a.saltService.GenerateSalt()
		if err != nil {
			return err
		}

		updatedAt := a.now()
		if err := a.appRepo.UpdateSecretSalt(ctx, id, salt, updatedAt); err != nil {
			return err
		}

		current.SecretSalt = salt
		current.UpdatedAt = updatedAt
		app = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := a.tokenUseCase.CreateToken(ctx, app)
	if err != nil {
		return nil, err
	}

	return &applicationDomain.RollSaltOutput{
		Application: app,
		Token:       token,
	}, nil
}

func (a *applicationUseCase) IssueToken(ctx context.Context, id snowflake.ID) (string, error) {
	return a.tokenUseCase.CreateTokenByID(ctx, id)
}
