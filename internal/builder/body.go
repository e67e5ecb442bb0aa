package builder

import (
	"encoding/json"
	"strings"
)

// CreateBody returns the body for a create command. An override input, when
// present, is used verbatim and the fields are ignored. Otherwise the
// fields are assembled and every key in required must be set.
func CreateBody(override Input, fields Fields, required ...string) (any, error) {
	value, present, err := override.Resolve()
	if err != nil {
		return nil, err
	}
	if present {
		return value, nil
	}

	body := fields.Assemble()
	var missing []string
	for _, key := range required {
		if _, ok := body[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, usageError(ErrMissingRequiredFields,
			strings.Join(missing, ", ")+" (or pass a body)")
	}
	return body, nil
}

// UpdateBody returns the body for a partial update. The override wins when
// present. An empty result from either source fails with
// ErrNoUpdateFieldsProvided; empty covers {}, [], "", false and zero.
func UpdateBody(override Input, fields Fields) (any, error) {
	value, present, err := override.Resolve()
	if err != nil {
		return nil, err
	}
	if !present {
		value = fields.Assemble()
	}
	if isEmpty(value) {
		return nil, usageError(ErrNoUpdateFieldsProvided, "")
	}
	return value, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	default:
		return false
	}
}

// ParseBool accepts true/1/yes/y and false/0/no/n, ignoring case and
// surrounding blanks.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, usageError(ErrInvalidBoolean, "got "+s)
	}
}
