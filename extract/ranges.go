/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// RangeKey identifies a recovered reference range by lower-cased test
// name and lower-cased unit.
type RangeKey struct {
	Name string
	Unit string
}

var (
	unitToken     = regexp.MustCompile(`(?i)(mg/dl|ug/dl|ng/ml|uiu/ml|ratio)`)
	intervalRange = regexp.MustCompile(`(\d+(\.\d+)?)\s*[-–]\s*(\d+(\.\d+)?)`)
	limitRange    = regexp.MustCompile(`(?i)(upto|<|≤)\s*(\d+(\.\d+)?)`)
)

// RecoverRanges scans one page of raw report text for reference ranges
// the structured extractor tends to miss. Upper-case section lines act
// as test headings; lines under a heading are checked for a unit token
// and either a numeric interval or a single-sided limit. Later matches
// for the same key overwrite earlier ones. Lines before the first
// heading contribute nothing.
func RecoverRanges(pageText string) map[RangeKey]string {
	recovered := make(map[RangeKey]string)

	var currentTest string
	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isHeadingLine(line) {
			currentTest = strings.ToLower(line)
			continue
		}
		if currentTest == "" {
			continue
		}

		unit := ""
		if m := unitToken.FindString(line); m != "" {
			unit = strings.ToLower(m)
		}
		key := RangeKey{Name: currentTest, Unit: unit}

		if m := intervalRange.FindString(line); m != "" {
			recovered[key] = m
			continue
		}

		if m := limitRange.FindStringSubmatch(line); m != nil {
			recovered[key] = fmt.Sprintf("%s %s", m[1], m[2])
		}
	}

	return recovered
}

// isHeadingLine reports whether a line introduces a new test section:
// longer than 8 characters, entirely upper-case, and not a METHOD or
// PROFILE label (those head non-test sections).
func isHeadingLine(line string) bool {
	if len(line) <= 8 {
		return false
	}
	hasCased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	if !hasCased {
		return false
	}
	return !strings.Contains(line, "METHOD") && !strings.Contains(line, "PROFILE")
}
