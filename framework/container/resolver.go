package container

import "context"

// Resolver is what factories and callers resolve through. It is implemented
// by *Container, which starts a fresh resolution chain, and by the value a
// factory receives, which continues the chain its caller is on.
//
// Cycle detection follows the chain: a key that is already on it cannot be
// resolved again until the call that pushed it returns. Chains belong to one
// call tree, so unrelated resolutions, sequential or concurrent, never see
// each other's keys.
type Resolver interface {
	// Resolving returns the keys currently being resolved on this chain,
	// outermost first. It is empty for a *Container.
	Resolving() []TypeKey

	registry() *Container
	path() []TypeKey
	ctx() context.Context
}

var (
	_ Resolver = (*Container)(nil)
	_ Resolver = (*chain)(nil)
)

// Resolving always returns nil: a container is the root of every chain.
func (c *Container) Resolving() []TypeKey { return nil }

func (c *Container) registry() *Container { return c }
func (c *Container) path() []TypeKey      { return nil }
func (c *Container) ctx() context.Context { return context.Background() }

// chain is the Resolver handed to a factory. keys ends with the key the
// factory is building. A chain is never mutated after creation; nested
// resolutions derive a new one.
type chain struct {
	c    *Container
	rctx context.Context
	keys []TypeKey
}

func (ch *chain) Resolving() []TypeKey {
	out := make([]TypeKey, len(ch.keys))
	copy(out, ch.keys)
	return out
}

func (ch *chain) registry() *Container { return ch.c }
func (ch *chain) path() []TypeKey      { return ch.keys }
func (ch *chain) ctx() context.Context { return ch.rctx }
