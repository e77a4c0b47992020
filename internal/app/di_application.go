package app

import (
	"fmt"
	"sync"

	"github.com/tregmine/webapi/internal/application/repository"
	applicationService "github.com/tregmine/webapi/internal/application/service"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
	"github.com/tregmine/webapi/internal/database"
)

// applicationComponents groups the lazily built application module.
type applicationComponents struct {
	saltService        applicationService.SaltService
	idGenerator        applicationService.IDGenerator
	saltSealer         applicationService.SaltSealer
	applicationRepo    applicationUseCase.ApplicationRepository
	tokenUseCase       applicationUseCase.TokenUseCase
	applicationUseCase applicationUseCase.ApplicationUseCase

	saltServiceInit        sync.Once
	idGeneratorInit        sync.Once
	saltSealerInit         sync.Once
	applicationRepoInit    sync.Once
	tokenUseCaseInit       sync.Once
	applicationUseCaseInit sync.Once
}

// SaltService returns the generator of fresh application salts.
func (c *Container) SaltService() applicationService.SaltService {
	c.saltServiceInit.Do(func() {
		c.saltService = applicationService.NewSaltService(c.config.SaltLength)
	})
	return c.saltService
}

// IDGenerator returns the snowflake generator for this server's SERVER_ID.
func (c *Container) IDGenerator() (applicationService.IDGenerator, error) {
	c.idGeneratorInit.Do(func() {
		generator, err := applicationService.NewIDGenerator(c.config.ServerID)
		if err != nil {
			c.setInitError("idGenerator", fmt.Errorf("failed to create id generator: %w", err))
			return
		}
		c.idGenerator = generator
	})
	if err := c.initError("idGenerator"); err != nil {
		return nil, err
	}
	return c.idGenerator, nil
}

// SaltSealer returns the sealer for salts at rest, selected by SALT_KEEPER_URI.
func (c *Container) SaltSealer() (applicationService.SaltSealer, error) {
	c.saltSealerInit.Do(func() {
		sealer, err := applicationService.OpenSaltSealer(c.ctx, c.config.SaltKeeperURI)
		if err != nil {
			c.setInitError("saltSealer", err)
			return
		}
		c.saltSealer = sealer
	})
	if err := c.initError("saltSealer"); err != nil {
		return nil, err
	}
	return c.saltSealer, nil
}

// ApplicationRepository returns the repository for the configured driver,
// wrapped so that salts are sealed at rest.
func (c *Container) ApplicationRepository() (applicationUseCase.ApplicationRepository, error) {
	c.applicationRepoInit.Do(func() {
		repo, err := c.initApplicationRepository()
		if err != nil {
			c.setInitError("applicationRepo", err)
			return
		}
		c.applicationRepo = repo
	})
	if err := c.initError("applicationRepo"); err != nil {
		return nil, err
	}
	return c.applicationRepo, nil
}

// TokenUseCase returns the application token authenticator.
func (c *Container) TokenUseCase() (applicationUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		useCase, err := c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
			return
		}
		c.tokenUseCase = useCase
	})
	if err := c.initError("tokenUseCase"); err != nil {
		return nil, err
	}
	return c.tokenUseCase, nil
}

// ApplicationUseCase returns the application management use case.
func (c *Container) ApplicationUseCase() (applicationUseCase.ApplicationUseCase, error) {
	c.applicationUseCaseInit.Do(func() {
		useCase, err := c.initApplicationUseCase()
		if err != nil {
			c.setInitError("applicationUseCase", err)
			return
		}
		c.applicationUseCase = useCase
	})
	if err := c.initError("applicationUseCase"); err != nil {
		return nil, err
	}
	return c.applicationUseCase, nil
}

func (c *Container) initApplicationRepository() (applicationUseCase.ApplicationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for application repository: %w", err)
	}

	var repo applicationUseCase.ApplicationRepository
	switch {
	case database.IsPostgres(c.config.DBDriver):
		repo = repository.NewPostgreSQLApplicationRepository(db)
	case c.config.DBDriver == "mysql":
		repo = repository.NewMySQLApplicationRepository(db)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	sealer, err := c.SaltSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get salt sealer for application repository: %w", err)
	}
	return applicationUseCase.NewSealingApplicationRepository(repo, sealer), nil
}

func (c *Container) initTokenUseCase() (applicationUseCase.TokenUseCase, error) {
	appRepo, err := c.ApplicationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get application repository for token use case: %w", err)
	}

	baseUseCase := applicationUseCase.NewTokenUseCase(appRepo, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return applicationUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initApplicationUseCase() (applicationUseCase.ApplicationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for application use case: %w", err)
	}
	appRepo, err := c.ApplicationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get application repository for application use case: %w", err)
	}
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for application use case: %w", err)
	}
	idGenerator, err := c.IDGenerator()
	if err != nil {
		return nil, err
	}

	baseUseCase := applicationUseCase.NewApplicationUseCase(
		txManager,
		appRepo,
		tokenUseCase,
		c.SaltService(),
		idGenerator,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for application use case: %w", err)
		}
		return applicationUseCase.NewApplicationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
