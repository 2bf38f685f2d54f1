package connector

import (
	"fmt"
	"sort"
	"strings"
)

// Constructor returns a ready Connector.
type Constructor func() Connector

var registry = map[string]Constructor{}

// Register makes a log source available as provider name. Sources register
// themselves from init, so a blank import is enough to enable one.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get looks up a provider. The error names the registered providers, which
// is usually a missing blank import.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("connector: unknown provider %q (registered: %s)", name, strings.Join(Providers(), ", "))
	}
	return ctor, nil
}

// Providers lists the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
