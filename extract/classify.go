/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import "strings"

// TestType is the coarse measurement type of a test.
type TestType string

// TestType values distinguish derived ratios from base measurements.
const (
	TypeRatio         TestType = "ratio"
	TypeConcentration TestType = "concentration"
)

// Panel is the coarse clinical panel a test belongs to.
type Panel string

// Panel values represent recognized clinical panels.
const (
	PanelThyroid Panel = "thyroid"
	PanelLipid   Panel = "lipid"
	PanelLiver   Panel = "liver"
	PanelUnknown Panel = "unknown"
)

var panelKeywords = []struct {
	panel    Panel
	keywords []string
}{
	{PanelThyroid, []string{"thyroid", "tsh", "t3", "t4"}},
	{PanelLipid, []string{"cholesterol", "triglyceride", "hdl", "ldl", "vldl", "lipid"}},
	{PanelLiver, []string{"bilirubin", "liver"}},
}

// Signature is the structural signature of a test, used as a cheap
// exclusionary pre-filter before any name matching. Two genuinely
// identical tests never differ in type or panel.
type Signature struct {
	Type  TestType
	Panel Panel
}

// TypeOf classifies a test as a ratio or a concentration from its name
// and unit.
func TypeOf(name, unit string) TestType {
	if strings.Contains(strings.ToLower(name), "/") || strings.EqualFold(unit, "ratio") {
		return TypeRatio
	}
	return TypeConcentration
}

// PanelOf derives the clinical panel from the test name. Keyword sets
// are checked in a fixed order, first match wins.
func PanelOf(name string) Panel {
	n := strings.ToLower(name)
	for _, entry := range panelKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(n, keyword) {
				return entry.panel
			}
		}
	}
	return PanelUnknown
}

// SignatureOf computes the structural signature for a test.
func SignatureOf(name, unit string) Signature {
	return Signature{Type: TypeOf(name, unit), Panel: PanelOf(name)}
}
