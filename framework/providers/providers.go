// Package providers holds the service providers every application boots
// with: configuration, logging, telemetry and the HTTP router.
package providers

import (
	"errors"
	"log/slog"

	"github.com/km-arc/go-eustace/framework/config"
	"github.com/km-arc/go-eustace/framework/container"
	"github.com/km-arc/go-eustace/framework/observability"
	"github.com/km-arc/go-eustace/framework/routing"
)

// ConfigServiceProvider binds an already loaded configuration.
//
// Bound: *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) {
	cfg := p.Config
	container.Register(c, func(container.Resolver) (*config.Config, error) {
		return cfg, nil
	})
}

// LoggerServiceProvider binds the application logger.
//
// Bound: *slog.Logger
type LoggerServiceProvider struct {
	container.BaseProvider
	Logger *slog.Logger
}

func (p *LoggerServiceProvider) Register(c *container.Container) {
	logger := p.Logger
	if logger == nil {
		logger = observability.Discard()
	}
	container.Register(c, func(container.Resolver) (*slog.Logger, error) {
		return logger, nil
	})
}

// TelemetryServiceProvider binds the metric and span recorders.
//
// Bound: *observability.Telemetry
type TelemetryServiceProvider struct {
	container.BaseProvider
	Telemetry *observability.Telemetry
}

func (p *TelemetryServiceProvider) Register(c *container.Container) {
	tel := p.Telemetry
	container.Register(c, func(container.Resolver) (*observability.Telemetry, error) {
		return tel, nil
	})
}

// RoutingServiceProvider binds a router built on the bound logger. Each
// resolve returns a new router with Mount applied to it.
//
// Bound: *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
	Mount func(r container.Resolver, router *routing.Router) error
}

func (p *RoutingServiceProvider) Register(c *container.Container) {
	mount := p.Mount
	container.Register(c, func(r container.Resolver) (*routing.Router, error) {
		logger, ok, err := container.Resolve[*slog.Logger](r)
		if err != nil && !errors.Is(err, container.ErrUnregisteredService) {
			return nil, err
		}
		if !ok {
			logger = observability.Discard()
		}
		router := routing.New(logger)
		if mount != nil {
			if err := mount(r, router); err != nil {
				return nil, err
			}
		}
		return router, nil
	})
}

// Boot checks that the router and everything Mount needs can be built.
func (p *RoutingServiceProvider) Boot(r container.Resolver) error {
	_, _, err := container.Resolve[*routing.Router](r)
	return err
}
