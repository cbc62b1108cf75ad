// Package app wires configuration, logging, telemetry and the garage into a
// single Application that can either run the configurator demo or serve it
// over HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/km-arc/go-eustace/framework/config"
	"github.com/km-arc/go-eustace/framework/container"
	"github.com/km-arc/go-eustace/framework/observability"
	"github.com/km-arc/go-eustace/framework/providers"
	"github.com/km-arc/go-eustace/framework/routing"
	"github.com/km-arc/go-eustace/garage"
)

// Application is the top-level container. It embeds the Container and the
// ProviderRegistry so callers can register services and providers directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg       *config.Config
	logger    *slog.Logger
	telemetry *observability.Telemetry
}

// New loads configuration from envFiles and registers the core providers.
// Log output goes to logOut.
func New(logOut io.Writer, envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, logOut).
		With(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env))

	tel, err := observability.NewTelemetry(cfg.Telemetry.Metrics, cfg.Telemetry.Tracing, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	a := &Application{cfg: cfg, logger: logger, telemetry: tel}
	a.Container = a.NewContainer("app")
	a.Providers = container.NewProviderRegistry(a.Container)

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggerServiceProvider{Logger: logger},
		&providers.TelemetryServiceProvider{Telemetry: tel},
		&garage.HTTPProvider{NewContainer: func() *container.Container { return a.NewContainer("request") }},
		&providers.RoutingServiceProvider{Mount: mountGarage},
	} {
		if err := a.Providers.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// NewContainer returns an empty container reporting through the
// application's logger and telemetry.
func (a *Application) NewContainer(name string) *container.Container {
	return container.New(
		container.WithName(name),
		container.WithLogger(a.logger),
		container.WithMetrics(a.telemetry.Metrics),
		container.WithTracing(a.telemetry.Spans),
	)
}

func mountGarage(r container.Resolver, router *routing.Router) error {
	h, ok, err := container.Resolve[*garage.Handler](r)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("garage handler resolved to nothing")
	}
	h.Routes(router)
	return nil
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Demo builds every order on one container, the way the configurator
// reconfigures a single workshop between builds, then builds two bare
// chassis by serial. Results are written to w.
func (a *Application) Demo(ctx context.Context, w io.Writer) error {
	orders := garage.DefaultOrders(a.cfg.Garage.ChassisSerial)
	if path := a.cfg.Garage.OrdersFile; path != "" {
		loaded, err := garage.LoadOrders(path)
		if err != nil {
			return err
		}
		orders = loaded
	}

	workshop := a.NewContainer("workshop")

	fmt.Fprintln(w, "- Example 1")
	for _, o := range orders {
		car, err := garage.Assemble(ctx, workshop, o.Spec)
		if err != nil {
			return fmt.Errorf("order %s: %w", o.Name, err)
		}
		a.logger.Info("car built", slog.String("order", o.Name), slog.String("id", car.ID.String()))
		fmt.Fprintf(w, "%s car: %s\n", o.Name, car)
	}

	fmt.Fprintln(w, "\n- Example 2")
	workshop.DisposeAll()
	container.RegisterWith(workshop, func(_ container.Resolver, serial string) (*garage.Chassis, error) {
		return garage.NewChassis(serial), nil
	})
	for _, serial := range []string{"abc_1", "xyz_2"} {
		chassis, ok, err := container.ResolveWithContext[*garage.Chassis](ctx, workshop, serial)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("chassis %s resolved to nothing", serial)
		}
		fmt.Fprintf(w, "Chassis: %s\n", chassis.SerialNumber)
	}

	return a.telemetry.Summary(ctx)
}

// Run boots the application if needed and serves HTTP until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	router, ok, err := container.ResolveContext[*routing.Router](ctx, a.Container)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("router resolved to nothing")
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return a.telemetry.Summary(shutdownCtx)
}

// Shutdown releases telemetry resources.
func (a *Application) Shutdown(ctx context.Context) error {
	return a.telemetry.Shutdown(ctx)
}

// Environment returns APP_ENV.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
