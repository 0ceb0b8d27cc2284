package retention

import (
	"strconv"
	"strings"

	"github.com/reconquest/karma-go"
)

// Params holds the key=value parameters following the policy type in a
// configuration string. Constructors read what they understand; anything
// left unread is rejected by Decode.
type Params struct {
	values map[string]string
	order  []string
	used   map[string]bool
}

func parseParams(raw string) (*Params, error) {
	params := &Params{
		values: map[string]string{},
		used:   map[string]bool{},
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if !ok || key == "" || value == "" {
			return nil, karma.
				Describe("param", field).
				Reason("expected parameter in form key=value")
		}

		if _, exists := params.values[key]; exists {
			return nil, karma.
				Describe("param", key).
				Reason("parameter is given more than once")
		}

		params.values[key] = value
		params.order = append(params.order, key)
	}

	return params, nil
}

// Int reads an integer parameter, returning fallback when it is absent.
func (params *Params) Int(key string, fallback int, minimum int) (int, error) {
	if _, ok := params.values[key]; !ok {
		return fallback, nil
	}

	return params.RequireInt(key, minimum)
}

// RequireInt reads an integer parameter that must be present and not
// lower than minimum.
func (params *Params) RequireInt(key string, minimum int) (int, error) {
	raw, ok := params.values[key]
	if !ok {
		return 0, karma.
			Describe("param", key).
			Reason("required parameter is missing")
	}

	params.used[key] = true

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, karma.
			Describe("param", key).
			Describe("value", raw).
			Format(err, "unexpected non-number value")
	}

	if value < minimum {
		return 0, karma.
			Describe("param", key).
			Describe("value", value).
			Reason("value must be at least " + strconv.Itoa(minimum))
	}

	return value, nil
}

// Enum reads a string parameter limited to the allowed values. The first
// allowed value is the default.
func (params *Params) Enum(key string, allowed ...string) (string, error) {
	raw, ok := params.values[key]
	if !ok {
		return allowed[0], nil
	}

	params.used[key] = true

	value := strings.ToLower(raw)
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}

	return "", karma.
		Describe("param", key).
		Describe("value", raw).
		Reason("unsupported value, supported values are: " + strings.Join(allowed, ", "))
}

func (params *Params) unused() []string {
	unused := []string{}
	for _, key := range params.order {
		if !params.used[key] {
			unused = append(unused, key)
		}
	}

	return unused
}
