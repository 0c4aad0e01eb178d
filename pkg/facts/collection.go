// Package facts resolves host facts (kernel, operating system,
// virtualization and resources) by running system utilities through the
// execution package.
package facts

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// Collection holds resolved facts by name. Values are strings, booleans,
// numbers, or nested map[string]any for structured facts. It is safe for
// concurrent use.
type Collection struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewCollection() *Collection {
	return &Collection{values: make(map[string]any)}
}

// Add stores a fact, replacing any previous value. Empty strings and empty
// maps are ignored.
func (c *Collection) Add(name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case map[string]any:
		if len(v) == 0 {
			return
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
}

// Get returns a fact. A dotted name descends into structured facts, so
// "os.release.major" reads the "major" key of the "release" map of "os".
func (c *Collection) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if v, ok := c.values[name]; ok {
		return v, true
	}
	head, rest, ok := strings.Cut(name, ".")
	if !ok {
		return nil, false
	}
	current, ok := c.values[head]
	for _, key := range strings.Split(rest, ".") {
		m, isMap := current.(map[string]any)
		if !ok || !isMap {
			return nil, false
		}
		current, ok = m[key]
	}
	return current, ok
}

// String returns a fact as a string, or "" when it is missing or not a
// string.
func (c *Collection) String(name string) string {
	v, _ := c.Get(name)
	s, _ := v.(string)
	return s
}

// Names returns the top-level fact names in sorted order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.values))
}

// Map returns a copy of the top-level facts.
func (c *Collection) Map() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// JSON renders the collection as a JSON object.
func (c *Collection) JSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// Query answers each gjson path against the JSON rendering of the facts.
// Paths that match nothing are left out of the result.
func (c *Collection) Query(paths ...string) (map[string]any, error) {
	doc, err := c.JSON()
	if err != nil {
		return nil, err
	}
	results := make(map[string]any, len(paths))
	for _, path := range paths {
		if r := gjson.GetBytes(doc, path); r.Exists() {
			results[path] = r.Value()
		}
	}
	return results, nil
}
