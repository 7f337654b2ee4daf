/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/humaidq/medvault/db"
	"github.com/humaidq/medvault/extract"
)

// candidatesFor filters a patient's test vocabulary down to the names
// that could plausibly be the same test as obs: same measurement type,
// same panel, same unit. An exact name match is excluded since it needs
// no resolution.
func candidatesFor(obs extract.TestObservation, vocabulary []db.PatientTest) []string {
	signature := extract.SignatureOf(obs.TestName, obs.Unit)
	unit := strings.ToLower(obs.Unit)

	var candidates []string
	for _, entry := range vocabulary {
		if strings.EqualFold(entry.TestName, obs.TestName) {
			continue
		}
		if !strings.EqualFold(entry.Unit, unit) {
			continue
		}
		if extract.SignatureOf(entry.TestName, entry.Unit) != signature {
			continue
		}
		candidates = append(candidates, entry.TestName)
	}

	return candidates
}

// resolveName maps a reported test name onto the patient's existing
// vocabulary. An exact (case-folded) match wins outright; otherwise the
// matcher is asked to pick among the filtered candidates. When nothing
// matches, the reported name becomes its own identity.
func (ing *Ingestor) resolveName(ctx context.Context, obs extract.TestObservation, vocabulary []db.PatientTest) string {
	name := strings.ToLower(obs.TestName)

	for _, entry := range vocabulary {
		if strings.EqualFold(entry.TestName, name) && strings.EqualFold(entry.Unit, obs.Unit) {
			return entry.TestName
		}
	}

	candidates := candidatesFor(obs, vocabulary)
	if len(candidates) == 0 {
		return name
	}

	matched, ok := ing.matcher.MatchTestName(ctx, name, candidates)
	if !ok {
		return name
	}

	logger.Debug("Resolved test identity", "reported", name, "canonical", matched)

	return matched
}

// resolveResults turns observations into storable results, linking each
// to a canonical test identity. Names resolved earlier in the same
// document join the vocabulary so later pages converge on them.
func (ing *Ingestor) resolveResults(ctx context.Context, observations []extract.TestObservation, vocabulary []db.PatientTest) ([]db.TestResult, error) {
	type identity struct {
		name string
		unit string
	}

	canonicalIDs := make(map[identity]string)
	results := make([]db.TestResult, 0, len(observations))

	for _, obs := range observations {
		// Blank rows get dropped at insert anyway; skipping them here
		// keeps junk canonical identities from being created.
		if strings.TrimSpace(obs.TestName) == "" || strings.TrimSpace(obs.Value) == "" {
			continue
		}

		name := ing.resolveName(ctx, obs, vocabulary)
		unit := strings.ToLower(obs.Unit)
		key := identity{name: name, unit: unit}

		canonicalID, seen := canonicalIDs[key]
		if !seen {
			existing, err := db.GetCanonicalTestByName(ctx, name, unit)
			if err != nil {
				return nil, fmt.Errorf("failed to look up canonical test: %w", err)
			}

			if existing != nil {
				canonicalID = existing.ID
			} else {
				panel := string(extract.PanelOf(name))
				canonicalID, err = db.CreateCanonicalTest(ctx, name, unit, panel)
				if err != nil {
					return nil, fmt.Errorf("failed to create canonical test: %w", err)
				}
			}

			canonicalIDs[key] = canonicalID
			vocabulary = append(vocabulary, db.PatientTest{TestName: name, Unit: unit})
		}

		// Store under the resolved name so history and trend charts
		// aggregate one test across its reported spellings.
		id := canonicalID
		results = append(results, db.TestResult{
			CanonicalID: &id,
			TestName:    name,
			TestContext: obs.TestContext,
			Value:       obs.Value,
			Unit:        unit,
			NormalRange: obs.ReferenceRange,
		})
	}

	return results, nil
}
