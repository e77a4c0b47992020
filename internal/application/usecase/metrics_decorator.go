package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/metrics"
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type applicationUseCaseWithMetrics struct {
	next    ApplicationUseCase
	metrics metrics.BusinessMetrics
}

// NewApplicationUseCaseWithMetrics wraps an ApplicationUseCase with metrics recording.
func NewApplicationUseCaseWithMetrics(useCase ApplicationUseCase, m metrics.BusinessMetrics) ApplicationUseCase {
	return &applicationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *applicationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "application", operation, status)
	a.metrics.RecordDuration(ctx, "application", operation, time.Since(start), status)
}

func (a *applicationUseCaseWithMetrics) Create(
	ctx context.Context,
	input *applicationDomain.CreateApplicationInput,
) (*applicationDomain.CreateApplicationOutput, error) {
	start := time.Now()
	output, err := a.next.Create(ctx, input)
	a.record(ctx, "create", start, err)
	return output, err
}

func (a *applicationUseCaseWithMetrics) Get(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	start := time.Now()
	app, err := a.next.Get(ctx, id)
	a.record(ctx, "get", start, err)
	return app, err
}

func (a *applicationUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	start := time.Now()
	apps, err := a.next.List(ctx, offset, limit)
	a.record(ctx, "list", start, err)
	return apps, err
}

func (a *applicationUseCaseWithMetrics) Update(
	ctx context.Context,
	id snowflake.ID,
	input *applicationDomain.UpdateApplicationInput,
) (*applicationDomain.Application, error) {
	start := time.Now()
	app, err := a.next.Update(ctx, id, input)
	a.record(ctx, "update", start, err)
	return app, err
}

func (a *applicationUseCaseWithMetrics) Delete(ctx context.Context, id snowflake.ID) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)
	a.record(ctx, "delete", start, err)
	return err
}

func (a *applicationUseCaseWithMetrics) RollSalt(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.RollSaltOutput, error) {
	start := time.Now()
	output, err := a.next.RollSalt(ctx, id)
	a.record(ctx, "roll_salt", start, err)
	return output, err
}

func (a *applicationUseCaseWithMetrics) IssueToken(ctx context.Context, id snowflake.ID) (string, error) {
	start := time.Now()
	token, err := a.next.IssueToken(ctx, id)
	a.record(ctx, "issue_token", start, err)
	return token, err
}

type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording. Every
// decode is also counted by result: valid, invalid, or error for storage faults.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	t.metrics.RecordOperation(ctx, "token", operation, status)
	t.metrics.RecordDuration(ctx, "token", operation, time.Since(start), status)
}

func (t *tokenUseCaseWithMetrics) recordDecode(ctx context.Context, err error) {
	switch {
	case err == nil:
		t.metrics.RecordTokenDecode(ctx, metrics.DecodeResultValid)
	case errors.Is(err, applicationDomain.ErrInvalidToken):
		t.metrics.RecordTokenDecode(ctx, metrics.DecodeResultInvalid)
	default:
		t.metrics.RecordTokenDecode(ctx, metrics.DecodeResultError)
	}
}

func (t *tokenUseCaseWithMetrics) CreateToken(
	ctx context.Context,
	app *applicationDomain.Application,
) (string, error) {
	start := time.Now()
	token, err := t.next.CreateToken(ctx, app)
	t.record(ctx, "create", start, err)
	return token, err
}

func (t *tokenUseCaseWithMetrics) CreateTokenByID(ctx context.Context, id snowflake.ID) (string, error) {
	start := time.Now()
	token, err := t.next.CreateTokenByID(ctx, id)
	t.record(ctx, "create_by_id", start, err)
	return token, err
}

func (t *tokenUseCaseWithMetrics) DecodeToken(
	ctx context.Context,
	token string,
) (*applicationDomain.DecodedToken, error) {
	start := time.Now()
	decoded, err := t.next.DecodeToken(ctx, token)
	t.record(ctx, "decode", start, err)
	t.recordDecode(ctx, err)
	return decoded, err
}

func (t *tokenUseCaseWithMetrics) GetApplication(
	ctx context.Context,
	token string,
) (*applicationDomain.Application, error) {
	start := time.Now()
	app, err := t.next.GetApplication(ctx, token)
	t.record(ctx, "get_application", start, err)
	t.recordDecode(ctx, err)
	return app, err
}
