package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
)

// Arguments shared by every tool.
const (
	ArgTokenPath = "tokenPath"
	ArgScopes    = "scopes"
)

// StringArg returns args[key] when it is a string, trimmed of surrounding blanks.
func StringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// IntArg returns args[key] as an int. JSON numbers arrive as float64;
// numeric strings are accepted too. Missing values yield 0.
func IntArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return 0, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(n), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

// OptionalBoolArg returns nil when key is absent, so the caller can leave
// the corresponding query parameter unset. String values are parsed with
// builder.ParseBool.
func OptionalBoolArg(args map[string]any, key string) (*bool, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		b, err := builder.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
}

// BoolArg is OptionalBoolArg with absent meaning false.
func BoolArg(args map[string]any, key string) (bool, error) {
	b, err := OptionalBoolArg(args, key)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

// ListArg accepts either an array of strings or a comma separated string.
func ListArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case string:
		return builder.SplitList(v)
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, builder.SplitList(s)...)
			}
		}
		return out
	case []string:
		var out []string
		for _, s := range v {
			out = append(out, builder.SplitList(s)...)
		}
		return out
	default:
		return nil
	}
}

// InputArg turns a JSON argument into a builder.Input. A string is taken
// as JSON text; any other value is re-encoded. An absent key yields an
// absent input.
func InputArg(args map[string]any, key string) (builder.Input, error) {
	switch v := args[key].(type) {
	case nil:
		return builder.Input{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return builder.Input{}, nil
		}
		return builder.InlineInput(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return builder.Input{}, fmt.Errorf("%s: %w", key, err)
		}
		return builder.InlineInput(string(data)), nil
	}
}

// AuthFromArgs returns the credential selection given in args. Empty
// values fall back to the server configuration.
func AuthFromArgs(args map[string]any) command.Auth {
	return command.Auth{
		TokenPath: StringArg(args, ArgTokenPath),
		Scopes:    scopesArg(args),
	}
}

// scopesArg reads the scopes argument, splitting on commas and blanks.
func scopesArg(args map[string]any) []string {
	var out []string
	for _, s := range ListArg(args, ArgScopes) {
		out = append(out, strings.Fields(s)...)
	}
	return out
}

// StringsArg accepts an array of strings or a single string. Unlike
// ListArg it never splits on commas, so values such as RRULE lines
// survive intact.
func StringsArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return []string{v}
		}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []string:
		return v
	}
	return nil
}
