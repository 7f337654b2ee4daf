/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package extract implements the deterministic half of the lab-report
// pipeline: reference-range recovery from raw page text, merging of
// extracted and recovered ranges, structural test classification, and
// abnormal-value detection over the ad hoc range grammar found in
// scanned reports. Everything in this package is pure; the LLM-backed
// half lives in the llm package.
package extract

import (
	"regexp"
	"strings"
)

// TestObservation is a single test result extracted from one page of a
// lab report. Multiple observations may refer to the same logical test
// across pages of one document.
type TestObservation struct {
	TestName       string `json:"test_name"`
	TestContext    string `json:"test_context"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTestName applies light, non-semantic normalization to an
// extracted test name. It removes formatting noise only; semantic
// matching against historical names is the identity resolver's job.
func NormalizeTestName(name string) string {
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.ReplaceAll(name, " ,", ",")
	name = strings.ReplaceAll(name, ", ", ",")
	return strings.TrimSpace(name)
}
