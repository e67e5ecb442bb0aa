// Package config resolves the configuration of one invocation from
// command-line flags, GCAL_* environment variables and an optional
// ~/.config/google-calendar/config.yaml, in that order of precedence.
package config
