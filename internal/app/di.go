// Package app provides the dependency injection container that assembles the
// API server, its storage and its use cases.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/tregmine/webapi/internal/config"
	"github.com/tregmine/webapi/internal/database"
	"github.com/tregmine/webapi/internal/http"
	"github.com/tregmine/webapi/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	config *config.Config

	// ctx lives until Shutdown and bounds background work of long-lived components.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Application components
	applicationComponents

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// setInitError records the first failure of a component.
func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// initError returns the recorded failure of a component, if any.
func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.setInitError("db", err)
			return
		}
		c.db = db
	})
	if err := c.initError("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err := c.initError("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the Prometheus backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err := c.initError("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the use case metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("businessMetrics", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), provider.Namespace())
		if err != nil {
			c.setInitError("businessMetrics", fmt.Errorf("failed to create business metrics: %w", err))
			return
		}
		c.businessMetrics = businessMetrics
	})
	if err := c.initError("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.setInitError("httpServer", err)
			return
		}
		c.httpServer = server
	})
	if err := c.initError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("metricsServer", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	})
	if err := c.initError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown stops background work and releases every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	c.cancel()

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if c.saltSealer != nil {
		if err := c.saltSealer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("salt sealer close: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

// initLogger creates a JSON logger at the configured level. Unknown levels mean info.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}
	appUseCase, err := c.ApplicationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get application use case for http server: %w", err)
	}
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.ctx, c.config, appUseCase, tokenUseCase, metricsProvider)
	return server, nil
}
