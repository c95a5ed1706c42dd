package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key represents the identity of one logical request: the URL plus the full
// set of query parameters.
type Key struct {
	// URL is the request URL without query string
	// (e.g., "https://api.worldbank.org/v2/countries")
	URL string

	// Params are the query parameters (e.g., {"format": "json"})
	Params map[string]string
}

// String generates a deterministic cache key string. Parameters are sorted
// by name so that insertion order never produces distinct keys.
// Format: wb:url:param1=val1:param2=val2
//
// Example:
//
//	wb:https://api.worldbank.org/v2/countries:format=json:per_page=1000
func (k Key) String() string {
	parts := []string{"wb", k.URL}

	if len(k.Params) > 0 {
		names := make([]string, 0, len(k.Params))
		for name := range k.Params {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Params[name]))
		}
	}

	return strings.Join(parts, ":")
}
