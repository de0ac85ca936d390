package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf keys, so errors name the
// setting an operator would change.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})

	return v
}

// Validate checks field constraints and then the settings each selected
// backend requires. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	}

	problems = append(problems, c.dependencyProblems()...)
	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
}

// requirement is a setting that must be present when a selector has a value.
type requirement struct {
	when  bool
	set   bool
	issue string
}

func (c *Config) dependencyProblems() []string {
	reqs := []requirement{
		{c.Store.Driver == "postgres", c.Database.DSN != "", "database.dsn is required when store.driver is postgres"},
		{c.Store.Driver == "rest", c.Rest.BaseURL != "", "rest.base_url is required when store.driver is rest"},
		{c.Cache.Driver == "redis", c.Redis.Addr != "", "redis.addr is required when cache.driver is redis"},
		{c.Cache.Driver == "sqlite", c.SQLite.Path != "", "sqlite.path is required when cache.driver is sqlite"},
		{c.Auth.Mode == "firebase", c.Firebase.Enabled, "firebase.enabled must be true when auth.mode is firebase"},
		{c.CORS.Enabled, len(c.CORS.AllowOrigins) > 0, "cors.allow_origins is required when cors.enabled is true"},
	}

	var out []string
	for _, r := range reqs {
		if r.when && !r.set {
			out = append(out, r.issue)
		}
	}

	if c.Notifications.Enabled {
		if _, err := time.LoadLocation(c.Notifications.Timezone); err != nil {
			out = append(out, fmt.Sprintf("notifications.timezone %q is not a valid IANA zone", c.Notifications.Timezone))
		}
	}

	if c.Client.Retry.MaxInterval > 0 && c.Client.Retry.InitialInterval > c.Client.Retry.MaxInterval {
		out = append(out, "client.retry.initial_interval must not exceed client.retry.max_interval")
	}

	return out
}

// describe renders a field error as "<key> <problem>", the key being the
// dotted koanf path without the root.
func describe(fe validator.FieldError) string {
	_, key, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, conditionOf(fe))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return key + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q", key, fe.Tag())
	}
}

// conditionOf turns a required_if param like "Mode header" into
// "mode is header".
func conditionOf(fe validator.FieldError) string {
	field, value, _ := strings.Cut(fe.Param(), " ")
	return strings.ToLower(field) + " is " + value
}
