/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import "strings"

type rangeEntry struct {
	text          string
	authoritative bool
}

// RangeCache collects the best-known reference range per (test name,
// unit) key across all pages of one document. Extractor-supplied ranges
// are authoritative and always win; regex-recovered ranges only fill
// keys with no authoritative entry, last write wins among themselves.
// The cache is built fresh per document and discarded after Fill.
type RangeCache struct {
	entries map[RangeKey]rangeEntry
}

// NewRangeCache returns an empty per-document range cache.
func NewRangeCache() *RangeCache {
	return &RangeCache{entries: make(map[RangeKey]rangeEntry)}
}

// KeyFor computes the cache key for an observation.
func KeyFor(obs TestObservation) RangeKey {
	return RangeKey{
		Name: strings.ToLower(obs.TestName),
		Unit: strings.ToLower(obs.Unit),
	}
}

// Observe records one page observation against the page's recovered
// ranges.
func (c *RangeCache) Observe(obs TestObservation, recovered map[RangeKey]string) {
	key := KeyFor(obs)

	if obs.ReferenceRange != "" {
		c.entries[key] = rangeEntry{text: obs.ReferenceRange, authoritative: true}
		return
	}

	text, ok := recovered[key]
	if !ok {
		return
	}
	if existing, ok := c.entries[key]; ok && existing.authoritative {
		return
	}
	c.entries[key] = rangeEntry{text: text}
}

// Fill back-fills missing reference ranges in place from the cache.
// Observations are otherwise passed through unchanged; duplicates
// across pages are kept.
func (c *RangeCache) Fill(observations []TestObservation) {
	for i := range observations {
		if observations[i].ReferenceRange != "" {
			continue
		}
		if entry, ok := c.entries[KeyFor(observations[i])]; ok {
			observations[i].ReferenceRange = entry.text
		}
	}
}
