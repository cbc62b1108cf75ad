package container

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/km-arc/go-eustace/framework/observability"
)

// ── Factory types ─────────────────────────────────────────────────────────────

// Factory builds a T. It receives the Resolver of the current resolution
// chain and should use it (not a captured *Container) for nested
// resolutions. A cycle through a captured container is still reported as
// ErrCircularDependency, but only after the recursion is a thousand calls
// deep and without the full path.
//
//	container.Register(c, func(r container.Resolver) (Engine, error) {
//	    return &SportsEngine{}, nil
//	})
type Factory[T any] func(r Resolver) (T, error)

// ParamFactory builds a T from a single creation-time value of type P.
//
//	container.RegisterWith(c, func(r container.Resolver, serial string) (Chassis, error) {
//	    return NewChassis(serial), nil
//	})
type ParamFactory[T, P any] func(r Resolver, p P) (T, error)

// builder is the erased form every factory is stored as. ok=false means the
// factory had nothing to offer for this call (e.g. wrong parameter type).
type builder func(r Resolver, param any) (instance any, ok bool, err error)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a type-keyed service registry.
//
// It keeps two stores: zero-parameter factories keyed by service type, and
// one-parameter factories keyed by (service type, parameter type). Callers
// register recipes with Register / RegisterWith and obtain instances with
// Resolve / ResolveWith, naming only the type they want.
//
// A Container is safe for concurrent use. Factories run without any lock
// held, so they may resolve, register or dispose re-entrantly.
type Container struct {
	mu sync.RWMutex

	name string

	// service type → factory
	factories map[TypeKey]builder

	// (service type, parameter type) → factory
	parameterized map[TypeKey]builder

	// fired after every successful factory call
	afterResolving []func(TypeKey, any)

	// root resolutions in flight per key; see maxRootsInFlight
	rootsMu sync.Mutex
	roots   map[TypeKey]int

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures a Container.
type Option func(*Container)

// WithName labels the container in log records.
func WithName(name string) Option { return func(c *Container) { c.name = name } }

// WithLogger sets the logger used for debug and failure records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every resolution on m.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Container) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing wraps every resolution in a span started by s.
func WithTracing(s observability.SpanManager) Option {
	return func(c *Container) {
		if s != nil {
			c.spans = s
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		name:          "default",
		factories:     make(map[TypeKey]builder),
		parameterized: make(map[TypeKey]builder),
		roots:         make(map[TypeKey]int),
		logger:        observability.Discard(),
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("container", c.name))
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores f as the recipe for T, replacing any previous one.
//
//	container.Register(c, func(r container.Resolver) (Seats, error) {
//	    return &LeatherSeats{}, nil
//	})
func Register[T any](c *Container, f Factory[T]) {
	if f == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", KeyOf[T]()))
	}
	c.store(KeyOf[T](), func(r Resolver, _ any) (any, bool, error) {
		v, err := f(r)
		if err != nil {
			return nil, false, err
		}
		return v, any(v) != nil, nil
	})
}

// RegisterWith stores f as the recipe for T given a P, replacing any previous
// recipe for the same (T, P) pair. Recipes for other parameter types of T are
// left alone.
//
// The stored adapter checks the parameter it receives; a value that is not a
// P yields no result rather than an error.
func RegisterWith[T, P any](c *Container, f ParamFactory[T, P]) {
	if f == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", KeyWith[T, P]()))
	}
	c.store(KeyWith[T, P](), func(r Resolver, param any) (any, bool, error) {
		p, ok := param.(P)
		if !ok {
			return nil, false, nil
		}
		v, err := f(r, p)
		if err != nil {
			return nil, false, err
		}
		return v, any(v) != nil, nil
	})
}

func (c *Container) store(key TypeKey, b builder) {
	c.mu.Lock()
	if key.Parameterized() {
		c.parameterized[key] = b
	} else {
		c.factories[key] = b
	}
	c.mu.Unlock()

	c.logger.Debug("service registered", slog.String("key", key.String()))
}

// ── Disposal ──────────────────────────────────────────────────────────────────

// Dispose removes the recipe for T. Disposing an absent key is a no-op.
func Dispose[T any](c *Container) {
	c.remove(KeyOf[T]())
}

// DisposeWith removes the recipe for T given a P.
func DisposeWith[T, P any](c *Container) {
	c.remove(KeyWith[T, P]())
}

func (c *Container) remove(key TypeKey) {
	c.mu.Lock()
	if key.Parameterized() {
		delete(c.parameterized, key)
	} else {
		delete(c.factories, key)
	}
	c.mu.Unlock()

	c.logger.Debug("service disposed", slog.String("key", key.String()))
}

// DisposeAll empties both stores. Resolutions already running keep the
// factories they looked up before the call.
func (c *Container) DisposeAll() {
	c.mu.Lock()
	c.factories = make(map[TypeKey]builder)
	c.parameterized = make(map[TypeKey]builder)
	c.mu.Unlock()

	c.logger.Debug("all services disposed")
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve builds a T using the recipe registered for it.
//
// It returns ok=false with a nil error when the factory produced nothing, or
// produced a value that is not a T. It fails with ErrEmptyRegistry,
// ErrCircularDependency or ErrUnregisteredService (wrapped in a
// *ResolutionError), or with whatever error the factory returned.
//
//	engine, ok, err := container.Resolve[Engine](c)
func Resolve[T any](r Resolver) (T, bool, error) {
	return ResolveContext[T](r.ctx(), r)
}

// ResolveContext is Resolve with an explicit context for tracing.
func ResolveContext[T any](ctx context.Context, r Resolver) (T, bool, error) {
	raw, ok, err := r.registry().resolve(ctx, r.path(), KeyOf[T](), nil)
	return downcast[T](raw, ok, err)
}

// ResolveWith builds a T from p using the recipe registered for (T, type of p).
//
// When P is an interface type the dynamic type of p is tried first, then P
// itself, so a recipe registered for the concrete type wins over one
// registered for the interface.
//
//	chassis, ok, err := container.ResolveWith[Chassis](c, "abc_1")
func ResolveWith[T, P any](r Resolver, p P) (T, bool, error) {
	return ResolveWithContext[T](r.ctx(), r, p)
}

// ResolveWithContext is ResolveWith with an explicit context for tracing.
func ResolveWithContext[T, P any](ctx context.Context, r Resolver, p P) (T, bool, error) {
	c := r.registry()
	key := KeyWith[T, P]()
	if dyn := reflect.TypeOf(any(p)); dyn != nil && dyn != key.param && c.has(keyFor[T](dyn)) {
		key = keyFor[T](dyn)
	}
	raw, ok, err := c.resolve(ctx, r.path(), key, p)
	return downcast[T](raw, ok, err)
}

// MustResolve is like Resolve but panics when T cannot be produced.
// Meant for composition roots and tests.
//
//	router := container.MustResolve[*routing.Router](app)
func MustResolve[T any](r Resolver) T {
	v, ok, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Sprintf("container: [%s] resolved to nothing", KeyOf[T]()))
	}
	return v
}

// downcast performs the checked downcast at the result boundary.
func downcast[T any](raw any, ok bool, err error) (T, bool, error) {
	var zero T
	if err != nil || !ok {
		return zero, false, err
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false, nil
	}
	return typed, true, nil
}

// resolve is the erased resolver shared by both store variants. parent is
// the caller's chain; it is never modified.
func (c *Container) resolve(ctx context.Context, parent []TypeKey, key TypeKey, param any) (instance any, ok bool, err error) {
	start := time.Now()
	ctx, span := c.spans.StartResolveSpan(ctx, key.String(), len(parent))
	defer func() {
		c.spans.EndSpanWithError(span, err)
		c.metrics.RecordResolution(ctx, key.String(), len(parent), time.Since(start), err)
		if err != nil && len(parent) == 0 {
			observability.LogResolveFailure(c.logger, key.String(), err)
		}
	}()

	c.mu.RLock()
	store := c.factories
	if key.Parameterized() {
		store = c.parameterized
	}
	empty := len(store) == 0
	build, found := store[key]
	c.mu.RUnlock()

	path := append(slices.Clip(parent), key)

	switch {
	case empty:
		return nil, false, &ResolutionError{Key: key, Path: path, Err: ErrEmptyRegistry}
	case slices.Contains(parent, key):
		return nil, false, &ResolutionError{Key: key, Path: path, Err: ErrCircularDependency}
	case !found:
		return nil, false, &ResolutionError{Key: key, Path: path, Err: ErrUnregisteredService}
	}

	if len(parent) == 0 {
		if !c.enterRoot(key) {
			return nil, false, &ResolutionError{Key: key, Path: path, Err: ErrCircularDependency}
		}
		defer c.leaveRoot(key)
	}

	c.logger.Debug("resolving service",
		slog.String("key", key.String()),
		slog.Int("depth", len(parent)),
	)

	instance, ok, err = c.invoke(&chain{c: c, rctx: ctx, keys: path}, build, param)
	if err != nil {
		return nil, false, err
	}
	if ok {
		c.fireAfterResolving(key, instance)
	}
	return instance, ok, nil
}

// maxRootsInFlight bounds how many root resolutions of one key may be in
// flight at once. A factory that resolves through a captured *Container
// instead of its Resolver starts a new root chain on every call, so a cycle
// through it shows up here as an ever-growing count rather than on a chain.
const maxRootsInFlight = 1000

func (c *Container) enterRoot(key TypeKey) bool {
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()
	if c.roots[key] >= maxRootsInFlight {
		return false
	}
	c.roots[key]++
	return true
}

func (c *Container) leaveRoot(key TypeKey) {
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()
	if c.roots[key]--; c.roots[key] == 0 {
		delete(c.roots, key)
	}
}

// invoke runs a factory, converting a panic into an error.
func (c *Container) invoke(ch *chain, build builder, param any) (instance any, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			key := ch.keys[len(ch.keys)-1]
			instance, ok = nil, false
			err = &ResolutionError{Key: key, Path: ch.Resolving(), Err: fmt.Errorf("%w: %v", ErrFactoryPanic, rec)}
		}
	}()
	return build(ch, param)
}

// has reports whether a factory is stored under key.
func (c *Container) has(key TypeKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if key.Parameterized() {
		_, ok := c.parameterized[key]
		return ok
	}
	_, ok := c.factories[key]
	return ok
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether a zero-parameter recipe for T is registered.
func Bound[T any](c *Container) bool { return c.has(KeyOf[T]()) }

// BoundWith reports whether a recipe for T given a P is registered.
func BoundWith[T, P any](c *Container) bool { return c.has(KeyWith[T, P]()) }

// Len returns the number of stored recipes across both stores.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.factories) + len(c.parameterized)
}

// Keys returns every registered key, sorted by its string form.
func (c *Container) Keys() []TypeKey {
	c.mu.RLock()
	out := make([]TypeKey, 0, len(c.factories)+len(c.parameterized))
	for k := range c.factories {
		out = append(out, k)
	}
	for k := range c.parameterized {
		out = append(out, k)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b TypeKey) int {
		return cmp.Compare(a.String(), b.String())
	})
	return out
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any factory produced an
// instance, nested resolutions included.
func (c *Container) AfterResolving(cb func(key TypeKey, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(key TypeKey, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(key, instance)
	}
}
