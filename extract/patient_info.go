/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"regexp"
	"strings"
)

// PatientInfo holds the identity fields recovered from a document's
// full text. Name is empty when no patient name could be detected;
// ingestion treats that as a hard stop.
type PatientInfo struct {
	Name       string
	ReportDate string
}

var (
	patientNamePattern = regexp.MustCompile(`(?i)Patient Name\s*:\s*(?:Mr\.?|Ms\.?|Mrs\.?)?\s*([A-Z][A-Z .]*)`)
	reportDatePattern  = regexp.MustCompile(`(?i)Reporting On\s*:\s*(\d{2}[/\-][A-Za-z]{3}[/\-]\d{4})`)
)

// ParsePatientInfo extracts the patient name and report date from the
// full document text. Names are case-folded; they act as the patient's
// unique key.
func ParsePatientInfo(text string) PatientInfo {
	var info PatientInfo

	if m := patientNamePattern.FindStringSubmatch(text); m != nil {
		info.Name = strings.ToLower(strings.TrimSpace(m[1]))
	}
	if m := reportDatePattern.FindStringSubmatch(text); m != nil {
		info.ReportDate = m[1]
	}

	return info
}
