package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/mock"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// memoryApplicationRepository is an in-memory ApplicationRepository. getErr,
// when set, is returned by Get to simulate storage faults.
type memoryApplicationRepository struct {
	mu     sync.Mutex
	apps   map[snowflake.ID]applicationDomain.Application
	getErr error
}

func newMemoryApplicationRepository(apps ...*applicationDomain.Application) *memoryApplicationRepository {
	repo := &memoryApplicationRepository{apps: make(map[snowflake.ID]applicationDomain.Application)}
	for _, app := range apps {
		repo.apps[app.ID] = *app
	}
	return repo
}

func (r *memoryApplicationRepository) Create(_ context.Context, app *applicationDomain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = *app
	return nil
}

func (r *memoryApplicationRepository) Update(_ context.Context, app *applicationDomain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.apps[app.ID]
	if !ok {
		return applicationDomain.ErrApplicationNotFound
	}
	current.Name = app.Name
	current.AccessLevel = app.AccessLevel
	current.Disabled = app.Disabled
	current.UpdatedAt = app.UpdatedAt
	r.apps[app.ID] = current
	return nil
}

func (r *memoryApplicationRepository) Get(_ context.Context, id snowflake.ID) (*applicationDomain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	app, ok := r.apps[id]
	if !ok {
		return nil, applicationDomain.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *memoryApplicationRepository) GetForUpdate(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	return r.Get(ctx, id)
}

func (r *memoryApplicationRepository) List(
	_ context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := make([]*applicationDomain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		app := app
		apps = append(apps, &app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	if offset >= len(apps) {
		return []*applicationDomain.Application{}, nil
	}
	apps = apps[offset:]
	if limit < len(apps) {
		apps = apps[:limit]
	}
	return apps, nil
}

func (r *memoryApplicationRepository) Delete(_ context.Context, id snowflake.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return applicationDomain.ErrApplicationNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *memoryApplicationRepository) UpdateSecretSalt(
	_ context.Context,
	id snowflake.ID,
	secretSalt string,
	updatedAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return applicationDomain.ErrApplicationNotFound
	}
	app.SecretSalt = secretSalt
	app.UpdatedAt = updatedAt
	r.apps[id] = app
	return nil
}

// mockApplicationRepository is a testify mock of ApplicationRepository.
type mockApplicationRepository struct {
	mock.Mock
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *applicationDomain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepository) Update(ctx context.Context, app *applicationDomain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepository) Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.Application), args.Error(1)
}

func (m *mockApplicationRepository) GetForUpdate(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.Application), args.Error(1)
}

func (m *mockApplicationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*applicationDomain.Application), args.Error(1)
}

func (m *mockApplicationRepository) Delete(ctx context.Context, id snowflake.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockApplicationRepository) UpdateSecretSalt(
	ctx context.Context,
	id snowflake.ID,
	secretSalt string,
	updatedAt time.Time,
) error {
	return m.Called(ctx, id, secretSalt, updatedAt).Error(0)
}

type mockSaltService struct {
	mock.Mock
}

func (m *mockSaltService) GenerateSalt() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type fixedIDGenerator struct {
	id snowflake.ID
}

func (g fixedIDGenerator) Generate() snowflake.ID {
	return g.id
}
