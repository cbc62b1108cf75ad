// Package validation checks flat string inputs against pipe-separated rule
// strings such as "required|in:standard,sports,supersports".
package validation

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors collects messages per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Rules maps a field to its rule string.
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a Validator for data.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs validation and reports whether any rule failed.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.validate()
		v.ran = true
	}
	return v.errors.Has()
}

// Passes is the negation of Fails.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// check reports whether value satisfies the rule; the message is used on failure.
type check func(value, param string) (bool, string)

var alphaDash = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var checks = map[string]check{
	"required": func(value, _ string) (bool, string) {
		return strings.TrimSpace(value) != "", "The %s field is required."
	},
	"in": func(value, param string) (bool, string) {
		allowed := strings.Split(param, ",")
		for i := range allowed {
			allowed[i] = strings.TrimSpace(allowed[i])
		}
		return slices.Contains(allowed, value), "The selected %s is invalid."
	},
	"alpha_dash": func(value, _ string) (bool, string) {
		return alphaDash.MatchString(value), "The %s may only contain letters, numbers, dashes and underscores."
	},
	"min": func(value, param string) (bool, string) {
		n, _ := strconv.Atoi(param)
		return utf8.RuneCountInString(value) >= n, "The %s must be at least " + param + " characters."
	},
	"max": func(value, param string) (bool, string) {
		n, _ := strconv.Atoi(param)
		return utf8.RuneCountInString(value) <= n, "The %s may not be greater than " + param + " characters."
	},
}

func (v *Validator) validate() {
	for _, field := range slices.Sorted(maps.Keys(v.rules)) {
		value := v.data[field]
		rules := strings.Split(v.rules[field], "|")

		// nullable lets an empty value skip the remaining rules.
		if value == "" && slices.Contains(rules, "nullable") {
			continue
		}

		for _, rule := range rules {
			name, param, _ := strings.Cut(strings.TrimSpace(rule), ":")
			fn, ok := checks[name]
			if !ok {
				continue
			}
			if pass, msg := fn(value, param); !pass {
				v.errors.add(field, fmt.Sprintf(msg, field))
				break
			}
		}
	}
}
