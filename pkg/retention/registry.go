package retention

import (
	"strings"

	"github.com/reconquest/karma-go"
)

// PolicyType describes one kind of policy a configuration string can name.
type PolicyType struct {
	Name      string
	Aliases   []string
	Usage     string
	Construct PolicyConstructor
}

// Registry maps policy type tags onto constructors. It keeps registration
// order so that listings and error messages are stable.
type Registry struct {
	types []PolicyType
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		index: map[string]int{},
	}
}

// DefaultRegistry returns a registry with every built-in policy type.
func DefaultRegistry() *Registry {
	registry := NewRegistry()

	for _, policyType := range []PolicyType{
		keepLastType,
		gfsType,
		dailyType,
		allType,
	} {
		err := registry.Register(policyType)
		if err != nil {
			panic(err)
		}
	}

	return registry
}

func (registry *Registry) Register(policyType PolicyType) error {
	if policyType.Construct == nil {
		return karma.
			Describe("type", policyType.Name).
			Reason("policy type has no constructor")
	}

	tags := append([]string{policyType.Name}, policyType.Aliases...)
	for _, tag := range tags {
		tag = normalizeTag(tag)
		if tag == "" {
			return karma.
				Describe("type", policyType.Name).
				Reason("policy type tag can not be empty")
		}

		if _, exists := registry.index[tag]; exists {
			return karma.
				Describe("type", tag).
				Reason("policy type is already registered")
		}
	}

	registry.types = append(registry.types, policyType)
	for _, tag := range tags {
		registry.index[normalizeTag(tag)] = len(registry.types) - 1
	}

	return nil
}

func (registry *Registry) Lookup(tag string) (PolicyType, bool) {
	i, ok := registry.index[normalizeTag(tag)]
	if !ok {
		return PolicyType{}, false
	}

	return registry.types[i], true
}

// Types returns the registered policy types in registration order.
func (registry *Registry) Types() []PolicyType {
	types := make([]PolicyType, len(registry.types))
	copy(types, registry.types)

	return types
}

func (registry *Registry) Names() []string {
	names := []string{}
	for _, policyType := range registry.types {
		names = append(names, policyType.Name)
	}

	return names
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
