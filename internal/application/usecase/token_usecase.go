package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationService "github.com/tregmine/webapi/internal/application/service"
)

type tokenUseCase struct {
	appRepo ApplicationRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewTokenUseCase creates a TokenUseCase reading applications from appRepo.
// appRepo must return plaintext salts.
func NewTokenUseCase(appRepo ApplicationRepository, logger *slog.Logger) TokenUseCase {
	return &tokenUseCase{
		appRepo: appRepo,
		logger:  logger,
		now:     time.Now,
	}
}

func (t *tokenUseCase) CreateToken(_ context.Context, app *applicationDomain.Application) (string, error) {
	return applicationService.EncodeToken(app.ID, t.now(), app.SecretSalt), nil
}

func (t *tokenUseCase) CreateTokenByID(ctx context.Context, id snowflake.ID) (string, error) {
	app, err := t.appRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, applicationDomain.ErrApplicationNotFound) {
			return "", applicationDomain.ErrUnknownApplication
		}
		return "", err
	}
	return t.CreateToken(ctx, app)
}

// DecodeToken checks, in order: structure, segment encoding, timestamp range,
// application id, application existence, signature and signed payload.
func (t *tokenUseCase) DecodeToken(ctx context.Context, token string) (*applicationDomain.DecodedToken, error) {
	parsed, err := applicationService.ParseToken(token)
	if err != nil {
		return nil, err
	}

	app, err := t.appRepo.Get(ctx, parsed.ID)
	if err != nil {
		if errors.Is(err, applicationDomain.ErrApplicationNotFound) {
			return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonUnknownApplication, nil)
		}
		return nil, err
	}

	payload, err := applicationService.NewSigner(app.SecretSalt).Unsign(token)
	if err != nil {
		t.logger.Warn("application token signature mismatch",
			slog.String("application_id", parsed.ApplicationID),
			slog.Time("issued_at", parsed.IssuedAt),
		)
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonSignatureMismatch, err)
	}
	if payload != parsed.Payload {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonPayloadMismatch, nil)
	}

	return &applicationDomain.DecodedToken{
		ApplicationID: parsed.ApplicationID,
		IssuedAt:      parsed.IssuedAt,
		Payload:       payload,
		Application:   app,
	}, nil
}

func (t *tokenUseCase) GetApplication(ctx context.Context, token string) (*applicationDomain.Application, error) {
	decoded, err := t.DecodeToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return decoded.Application, nil
}
