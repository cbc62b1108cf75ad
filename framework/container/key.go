package container

import (
	"reflect"
)

// ── TypeKey ───────────────────────────────────────────────────────────────────

// TypeKey addresses a stored factory. It is derived from the service type
// alone, or from the (service type, parameter type) pair for factories that
// take a creation-time value.
//
// Two keys are equal if and only if they denote the same pairing, so a
// TypeKey can be used directly as a map key or compared with ==.
//
//	container.KeyOf[Engine]()             // ".../garage.Engine"
//	container.KeyWith[Engine, Power]()    // ".../garage.Engine|.../garage.Power"
type TypeKey struct {
	service reflect.Type
	param   reflect.Type
}

// KeyOf returns the key for a zero-parameter factory of T.
//
// Interface types are keyed by the interface itself, never by whatever
// implementation happens to be registered for it.
func KeyOf[T any]() TypeKey {
	return TypeKey{service: reflect.TypeFor[T]()}
}

// KeyWith returns the key for a one-parameter factory of T taking a P.
func KeyWith[T, P any]() TypeKey {
	return TypeKey{service: reflect.TypeFor[T](), param: reflect.TypeFor[P]()}
}

// keyFor builds a parameterized key from an already known parameter type.
func keyFor[T any](param reflect.Type) TypeKey {
	return TypeKey{service: reflect.TypeFor[T](), param: param}
}

// IsZero reports whether the key was never derived from a type.
func (k TypeKey) IsZero() bool { return k.service == nil }

// Parameterized reports whether the key addresses a one-parameter factory.
func (k TypeKey) Parameterized() bool { return k.param != nil }

// String renders the key as "pkg/path.Service" or
// "pkg/path.Service|pkg/path.Param". The rendering is stable across runs.
func (k TypeKey) String() string {
	if k.service == nil {
		return "<empty>"
	}
	if k.param == nil {
		return typeName(k.service)
	}
	return typeName(k.service) + "|" + typeName(k.param)
}

// typeName returns the package-qualified name of t. Pointers keep their
// star so *Foo and Foo never render the same; unnamed types fall back to
// reflect's own rendering.
func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + typeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
