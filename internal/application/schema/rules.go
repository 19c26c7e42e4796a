package schema

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// Rule checks, and may transform, a coerced value.
// A rule must be pure: the same input always yields the same result.
type Rule func(value any) (any, error)

// MinLen requires a string of at least n characters.
func MinLen(n int, msg string) Rule {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok || utf8.RuneCountInString(s) < n {
			return nil, errors.New(msg)
		}
		return s, nil
	}
}

// MaxLen requires a string of at most n characters.
func MaxLen(n int, msg string) Rule {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok || utf8.RuneCountInString(s) > n {
			return nil, errors.New(msg)
		}
		return s, nil
	}
}

// Pattern requires a string matching re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok || !re.MatchString(s) {
			return nil, errors.New(msg)
		}
		return s, nil
	}
}

// Min requires an integer of at least n.
func Min(n int64, msg string) Rule {
	return func(v any) (any, error) {
		i, ok := v.(int64)
		if !ok || i < n {
			return nil, errors.New(msg)
		}
		return i, nil
	}
}

// MinItems requires an identifier list with at least n entries.
func MinItems(n int, msg string) Rule {
	return func(v any) (any, error) {
		ids, ok := v.([]int64)
		if !ok || len(ids) < n {
			return nil, errors.New(msg)
		}
		return ids, nil
	}
}

// Transform replaces the value with fn's result. It never fails.
func Transform(fn func(any) any) Rule {
	return func(v any) (any, error) {
		return fn(v), nil
	}
}

// Refine fails with msg when pred rejects the value.
func Refine(pred func(any) bool, msg string) Rule {
	return func(v any) (any, error) {
		if !pred(v) {
			return nil, errors.New(msg)
		}
		return v, nil
	}
}
