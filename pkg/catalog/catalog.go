// Package catalog builds the merged reference catalog used to
// override portal channel names and logos, and resolves raw names
// against it.
package catalog

import (
	"context"
	"strings"

	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/mactv-dev/mactv/pkg/normalize"
)

// Entry is one reference definition: the display name to force, the
// logo to use, and the external EPG id when the source knows it.
type Entry struct {
	Name       string
	Logo       string
	ExternalID string
}

// Catalog maps normalized name keys to entries. Iteration order is
// insertion order, which is source-priority order; partial matching
// depends on that to resolve ambiguous names toward the most trusted
// source.
type Catalog struct {
	keys    []string
	entries map[string]Entry
}

// Build fetches every source in the given order and merges the
// results. Earlier sources win key collisions. A source that fails to
// fetch or parse is logged and skipped; the run continues with a
// smaller catalog.
func Build(ctx context.Context, sources ...Source) *Catalog {
	log := logger.FromCtx(ctx)

	c := &Catalog{entries: make(map[string]Entry)}
	for _, src := range sources {
		raws, err := src.Fetch(ctx)
		if err != nil {
			log.Warnw("skipping catalog source", "source", src.Name(), "error", err)
			continue
		}

		added := 0
		for _, r := range raws {
			key := normalize.Key(r.Name)
			if key == "" {
				continue
			}
			if _, ok := c.entries[key]; ok {
				continue
			}

			c.entries[key] = Entry{
				Name:       strings.TrimSpace(r.Name),
				Logo:       r.Logo,
				ExternalID: r.ExternalID,
			}
			c.keys = append(c.keys, key)
			added++
		}

		log.Infow("loaded catalog source", "source", src.Name(), "entries", added)
	}

	return c
}

// Len reports the number of distinct keys in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns the catalog keys in source-priority order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Get looks up an entry by its normalized key.
func (c *Catalog) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Match resolves a raw channel name against the catalog. The exact
// key lookup runs first; only when it misses does the substring scan
// run, in source-priority order. Partial matching is a known source
// of false positives, so it never preempts an exact hit.
func (c *Catalog) Match(rawName string) (Entry, bool) {
	key := normalize.Key(rawName)
	if key == "" {
		return Entry{}, false
	}

	if e, ok := c.entries[key]; ok {
		return e, true
	}

	for _, k := range c.keys {
		if k == "" {
			// an empty key would match every name
			continue
		}
		if strings.Contains(key, k) || strings.Contains(k, key) {
			return c.entries[k], true
		}
	}

	return Entry{}, false
}
