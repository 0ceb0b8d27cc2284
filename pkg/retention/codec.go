package retention

import (
	"strings"

	"github.com/reconquest/karma-go"
)

// Decoded is the outcome of decoding a configuration string that is not
// malformed: either no policy is configured, or exactly one policy is.
type Decoded struct {
	policy Policy
}

// Absent reports that no policy is configured.
func (decoded Decoded) Absent() bool {
	return decoded.policy == nil
}

// Policy returns the configured policy, nil when Absent.
func (decoded Decoded) Policy() Policy {
	return decoded.policy
}

// Decode turns a configuration string like "keep-last:count=10" or
// "gfs:hourly=24,daily=7" into a policy. An empty string decodes to an
// absent policy; anything else that does not describe a registered policy
// is a *DecodeError.
func Decode(env Env, registry *Registry, config string) (Decoded, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		return Decoded{}, nil
	}

	tag, rest := splitConfig(config)

	policyType, ok := registry.Lookup(tag)
	if !ok {
		return Decoded{}, &DecodeError{
			Config: config,
			Err:    unsupportedType(tag, registry.Names()),
		}
	}

	params, err := parseParams(rest)
	if err != nil {
		return Decoded{}, &DecodeError{Config: config, Err: err}
	}

	policy, err := policyType.Construct(env, params)
	if err != nil {
		return Decoded{}, &DecodeError{Config: config, Err: err}
	}

	if unused := params.unused(); len(unused) > 0 {
		return Decoded{}, &DecodeError{
			Config: config,
			Err: karma.
				Describe("type", policyType.Name).
				Describe("params", unused).
				Reason("unknown parameters for policy type"),
		}
	}

	return Decoded{policy: policy}, nil
}

// Encode returns the canonical configuration string for policy.
func Encode(policy Policy) string {
	return policy.Encode()
}

func splitConfig(config string) (string, string) {
	i := strings.IndexAny(config, ": \t")
	if i < 0 {
		return normalizeTag(config), ""
	}

	return normalizeTag(config[:i]), config[i+1:]
}
