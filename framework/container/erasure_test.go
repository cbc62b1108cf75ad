package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ResultOfWrongType_EmptyResult(t *testing.T) {
	c := New()
	c.store(KeyOf[someProtocol](), func(Resolver, any) (any, bool, error) { return 42, true, nil })

	got, ok, err := Resolve[someProtocol](c)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestParamAdapter_WrongParameterType_EmptyResult(t *testing.T) {
	c := New()
	called := false
	RegisterWith(c, func(_ Resolver, s string) (someProtocol, error) {
		called = true
		return simpleClass{}, nil
	})

	raw, ok, err := c.resolve(context.Background(), nil, KeyWith[someProtocol, string](), 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
	assert.False(t, called)
}

func TestResolve_ParentChainNeverModified(t *testing.T) {
	c := New()
	Register(c, func(Resolver) (someProtocol, error) { return simpleClass{}, nil })

	parent := make([]TypeKey, 1, 8)
	parent[0] = KeyOf[string]()
	_, _, err := c.resolve(context.Background(), parent, KeyOf[someProtocol](), nil)
	require.NoError(t, err)

	assert.Equal(t, []TypeKey{KeyOf[string]()}, parent)
	assert.Equal(t, TypeKey{}, parent[:2][1], "spare capacity must not be written")
}
