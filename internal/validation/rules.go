package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const defaultMessage = "Invalid value"

var (
	intRegex     = regexp.MustCompile(`^[-+]?[0-9]+$`)
	numericRegex = regexp.MustCompile(`^[+-]?(?:[0-9]*[.])?[0-9]+$`)
)

// stringChecks is the validator instance the string checks run on.
var stringChecks = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	register := func(tag string, fn func(s string) bool) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	register("isint", intRegex.MatchString)
	register("isnumeric", numericRegex.MatchString)
	register("isboolean", func(s string) bool {
		switch s {
		case "true", "false", "1", "0":
			return true
		}
		return false
	})
	return v
}

// Location is the part of the request a chain reads its field from.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

type check struct {
	test    func(value interface{}, present bool) bool
	message string
}

// Chain is an ordered list of checks against a single request field.
type Chain struct {
	location Location
	field    string
	checks   []check
}

// Param starts a chain over a route parameter.
func Param(field string) *Chain {
	return &Chain{location: LocationParams, field: field}
}

// Body starts a chain over a top-level field of the JSON body.
func Body(field string) *Chain {
	return &Chain{location: LocationBody, field: field}
}

func (c *Chain) tag(tag string) *Chain {
	return c.add(func(value interface{}, _ bool) bool {
		return stringChecks.Var(ToString(value), tag) == nil
	})
}

func (c *Chain) add(test func(value interface{}, present bool) bool) *Chain {
	c.checks = append(c.checks, check{test: test, message: defaultMessage})
	return c
}

// IsInt requires a base-10 integer, optionally signed.
func (c *Chain) IsInt() *Chain { return c.tag("isint") }

// IsNumeric requires a plain decimal number.
func (c *Chain) IsNumeric() *Chain { return c.tag("isnumeric") }

// IsBoolean requires one of true, false, 1 or 0.
func (c *Chain) IsBoolean() *Chain { return c.tag("isboolean") }

// NotEmpty requires a non-empty value.
func (c *Chain) NotEmpty() *Chain { return c.tag("required") }

// Custom adds a check on the raw decoded value. present is false when the
// field was not sent at all.
func (c *Chain) Custom(fn func(value interface{}, present bool) bool) *Chain {
	return c.add(fn)
}

// WithMessage sets the error message of the most recently added check.
func (c *Chain) WithMessage(msg string) *Chain {
	if n := len(c.checks); n > 0 {
		c.checks[n-1].message = msg
	}
	return c
}

func (c *Chain) run(req request) []FieldError {
	value, present := req.lookup(c.location, c.field)
	var errs []FieldError
	for _, ch := range c.checks {
		if ch.test(value, present) {
			continue
		}
		errs = append(errs, FieldError{
			Type:     "field",
			Value:    value,
			Msg:      ch.message,
			Path:     c.field,
			Location: c.location,
		})
	}
	return errs
}
