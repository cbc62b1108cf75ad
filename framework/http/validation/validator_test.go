package validation_test

import (
	"testing"

	"github.com/km-arc/go-eustace/framework/http/validation"
)

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, got %+v", field, v.Errors().Bag)
		}
	})
}

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"power": "required"}

	pass(t, "non-empty value", map[string]string{"power": "sports"}, r)
	fail(t, "empty string", "power", map[string]string{"power": ""}, r)
	fail(t, "whitespace only", "power", map[string]string{"power": "   "}, r)
	fail(t, "missing key", "power", map[string]string{}, r)
}

func TestValidation_Required_MessageFormat(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"power": "required"})
	_ = v.Fails()
	if got, want := v.Errors().First("power"), "The power field is required."; got != want {
		t.Errorf("message: got %q want %q", got, want)
	}
}

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"power": "in:standard, sports,supersports"}

	pass(t, "first", map[string]string{"power": "standard"}, r)
	pass(t, "trimmed", map[string]string{"power": "sports"}, r)
	fail(t, "outside the set", "power", map[string]string{"power": "turbo"}, r)
	fail(t, "case sensitive", "power", map[string]string{"power": "Sports"}, r)
}

func TestValidation_AlphaDash(t *testing.T) {
	r := validation.Rules{"serial": "alpha_dash"}

	pass(t, "underscore", map[string]string{"serial": "abc_1"}, r)
	pass(t, "dash", map[string]string{"serial": "abc-1"}, r)
	fail(t, "space", "serial", map[string]string{"serial": "abc 1"}, r)
	fail(t, "slash", "serial", map[string]string{"serial": "abc/1"}, r)
}

func TestValidation_MinMax(t *testing.T) {
	r := validation.Rules{"serial": "min:3|max:5"}

	pass(t, "lower bound", map[string]string{"serial": "abc"}, r)
	pass(t, "upper bound", map[string]string{"serial": "abcde"}, r)
	fail(t, "too short", "serial", map[string]string{"serial": "ab"}, r)
	fail(t, "too long", "serial", map[string]string{"serial": "abcdef"}, r)
	pass(t, "counts runes", map[string]string{"serial": "äöü"}, r)
}

func TestValidation_Nullable(t *testing.T) {
	r := validation.Rules{"serial": "nullable|alpha_dash|min:3"}

	pass(t, "empty skips remaining rules", map[string]string{}, r)
	pass(t, "valid value", map[string]string{"serial": "abc_1"}, r)
	fail(t, "invalid value still checked", "serial", map[string]string{"serial": "a b"}, r)
}

func TestValidation_BailsOnFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"power": "required|in:standard"})
	_ = v.Fails()
	if n := len(v.Errors().Bag["power"]); n != 1 {
		t.Errorf("errors for power: got %d want 1", n)
	}
}

func TestValidation_UnknownRuleIgnored(t *testing.T) {
	pass(t, "unknown", map[string]string{"power": "sports"}, validation.Rules{"power": "required|shiny"})
}

func TestValidation_MultipleFields(t *testing.T) {
	v := validation.Make(
		map[string]string{"power": "turbo", "optionals": "luxury"},
		validation.Rules{
			"power":     "required|in:standard,sports,supersports",
			"optionals": "required|in:standard,medium,luxury",
		},
	)
	if !v.Fails() {
		t.Fatal("expected FAIL")
	}
	if v.Errors().First("power") == "" {
		t.Error("expected error on power")
	}
	if v.Errors().First("optionals") != "" {
		t.Error("optionals should pass")
	}
}

func TestValidation_FailsIsStable(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"power": "required"})
	_ = v.Fails()
	_ = v.Fails()
	if n := len(v.Errors().Bag["power"]); n != 1 {
		t.Errorf("errors after two Fails calls: got %d want 1", n)
	}
}
