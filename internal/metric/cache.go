package metric

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/simplelru"
)

// defaultCacheSize bounds how many distinct compiled metrics are kept
// around at once. Repeated similar() calls across a long-lived dictionary
// tend to reuse the same handful of rule sets, so a small cache already
// avoids most recompilation.
const defaultCacheSize = 64

// Cache memoizes Compile by rule-set signature: lock, look up, compile on
// miss, store. The key is a canonical rendering of the rule set, so two
// rule slices with the same rules in any order share one compilation.
type Cache struct {
	mu  sync.Mutex
	lru *lru.LRU
}

// NewCache returns an empty Cache bounded to defaultCacheSize entries.
func NewCache() *Cache {
	l, _ := lru.NewLRU(defaultCacheSize, nil)
	return &Cache{lru: l}
}

// Compile returns a compiled Metric for rules, reusing a cached compilation
// when this exact rule set (by value, not by slice identity) has been
// compiled before.
func (c *Cache) Compile(rules []Rule) (*Metric, error) {
	key := signature(rules)

	c.mu.Lock()
	if cached, ok := c.lru.Get(key); ok {
		c.mu.Unlock()
		return cached.(*Metric), nil
	}
	c.mu.Unlock()

	m, err := Compile(rules)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lru.Add(key, m)
	c.mu.Unlock()
	return m, nil
}

func signature(rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = fmt.Sprintf("%x>%x=%g", r.From, r.To, r.Cost)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}
