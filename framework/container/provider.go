package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register is called as soon as the provider is added to a ProviderRegistry.
// Boot is called after ALL providers have been registered, making it safe to
// resolve services that other providers contribute.
//
//	type GarageProvider struct{ container.BaseProvider }
//
//	func (p *GarageProvider) Register(c *container.Container) {
//	    container.Register(c, func(r container.Resolver) (Engine, error) { ... })
//	}
//
//	func (p *GarageProvider) Boot(r container.Resolver) error {
//	    _, _, err := container.Resolve[*Car](r)
//	    return err
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other services here; use Boot for that.
	Register(c *Container)

	// Boot is called after all providers are registered.
	Boot(r Resolver) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ Resolver) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
type ProviderRegistry struct {
	c          *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
	// providers[:bootedN] have booted successfully
	bootedN int
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Adding the same
// provider twice is a no-op. If the registry has already booted, the
// provider is booted immediately and its Boot error returned.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	provider.Register(r.c)
	r.providers = append(r.providers, provider)

	if r.booted {
		return bootProvider(r.c, provider)
	}
	return nil
}

// Boot calls Boot on every provider in registration order, stopping at the
// first error. A later call resumes at the provider that failed, so no
// provider is booted twice. Once it has succeeded further calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	for ; r.bootedN < len(r.providers); r.bootedN++ {
		if err := bootProvider(r.c, r.providers[r.bootedN]); err != nil {
			return err
		}
	}
	r.booted = true
	return nil
}

func bootProvider(c *Container, provider ServiceProvider) error {
	if err := provider.Boot(c); err != nil {
		return fmt.Errorf("boot %T: %w", provider, err)
	}
	return nil
}

// Booted returns true once Boot has succeeded.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
