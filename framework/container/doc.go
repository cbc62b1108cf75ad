// Package container provides a type-keyed service registry (an IoC
// container) for Go.
//
// # Overview
//
// Callers register a construction recipe for a service type, optionally
// parameterized by a single creation-time value, and later ask for an
// instance by naming only the type. Recipes are stored erased and the static
// type is recovered with a checked assertion at two points: when a
// parameterized recipe receives its argument, and when a result is handed
// back to the caller. A failed assertion yields "no result", not an error.
//
// There is no reflection-based auto-wiring and no dependency ordering: a
// factory pulls in whatever it needs by resolving it through the Resolver it
// is given.
//
// # Registering
//
//	c := container.New()
//
//	// zero-parameter recipe, keyed by Engine
//	container.Register(c, func(r container.Resolver) (Engine, error) {
//	    return &SportsEngine{}, nil
//	})
//
//	// one-parameter recipe, keyed by (Chassis, string)
//	container.RegisterWith(c, func(r container.Resolver, serial string) (Chassis, error) {
//	    return NewChassis(serial), nil
//	})
//
// Registering the same key again replaces the previous recipe.
//
// # Resolving
//
//	engine, ok, err := container.Resolve[Engine](c)
//	chassis, ok, err := container.ResolveWith[Chassis](c, "abc_1")
//
// err is a *ResolutionError wrapping one of ErrEmptyRegistry,
// ErrUnregisteredService or ErrCircularDependency, or whatever the factory
// itself returned. ok is false when the factory produced nothing usable.
//
// # Nested resolution and cycles
//
// Factories resolve their own dependencies through the Resolver argument:
//
//	container.Register(c, func(r container.Resolver) (*Car, error) {
//	    engine, _, err := container.Resolve[Engine](r)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &Car{Engine: engine}, nil
//	})
//
// The Resolver carries the chain of keys being resolved. Asking for a key
// that is already on the chain fails with ErrCircularDependency instead of
// recursing, whatever the length of the cycle.
//
// # Disposing
//
//	container.Dispose[Engine](c)
//	container.DisposeWith[Chassis, string](c)
//	c.DisposeAll()
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&garage.Provider{Spec: spec})
//	_ = registry.Boot()
package container
