package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters.
//
// Values are encoded as follows: strings verbatim, numbers in their JSON
// text form, booleans as true/false, slices as one repeated key per
// element, nested objects as JSON text. Nil values are skipped.
type Params []Param

// Add appends a parameter.
func (p *Params) Add(key string, value any) {
	*p = append(*p, Param{Key: key, Value: value})
}

// AddString appends key=value when value is not empty.
func (p *Params) AddString(key, value string) {
	if value != "" {
		p.Add(key, value)
	}
}

// AddInt appends key=value when value is positive.
func (p *Params) AddInt(key string, value int) {
	if value > 0 {
		p.Add(key, value)
	}
}

// ParamsFromMap converts a decoded JSON object, ordering keys alphabetically.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(keys))
	for _, k := range keys {
		p.Add(k, m[k])
	}
	return p
}

// Values encodes the parameters as url.Values.
func (p Params) Values() (url.Values, error) {
	values := url.Values{}
	for _, param := range p {
		if err := addValue(values, param.Key, param.Value); err != nil {
			return nil, fmt.Errorf("query parameter %q: %w", param.Key, err)
		}
	}
	return values, nil
}

func addValue(values url.Values, key string, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		values.Add(key, t)
	case json.Number:
		values.Add(key, t.String())
	case bool:
		values.Add(key, strconv.FormatBool(t))
	case int:
		values.Add(key, strconv.Itoa(t))
	case int64:
		values.Add(key, strconv.FormatInt(t, 10))
	case float64:
		values.Add(key, strconv.FormatFloat(t, 'f', -1, 64))
	case []string:
		for _, s := range t {
			values.Add(key, s)
		}
	case []any:
		for _, elem := range t {
			if err := addValue(values, key, elem); err != nil {
				return err
			}
		}
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		values.Add(key, string(data))
	}
	return nil
}

// Request describes one API call.
type Request struct {
	// Method is one of GET, POST, PUT, PATCH or DELETE.
	Method string

	// Target is an absolute http(s) URL, used verbatim, or a path joined
	// onto the base URL passed to Dispatcher.Do.
	Target string

	Params Params

	// Body is JSON-encoded when non-nil.
	Body any

	// Operation names the call in spans, e.g. "events.list".
	// Defaults to a name derived from Method.
	Operation string
}

// NormalizeMethod upper-cases method and rejects anything the APIs do not use.
func NormalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	switch m {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// ResolveURL returns target unchanged when it is an absolute http(s) URL,
// and otherwise joins it onto baseURL with exactly one leading slash.
func ResolveURL(baseURL, target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return baseURL + target
}
