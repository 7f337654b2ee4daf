/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "time"

// Patient is a person that lab reports belong to. Names are stored
// lowercased so uploads for the same person land on one row.
type Patient struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Report is one ingested document for a patient. ReportDate is kept as
// the text printed on the report rather than a parsed timestamp.
type Report struct {
	ID         string
	PatientID  string
	ReportDate *string
	SourceFile string
	CreatedAt  time.Time
}

// TestResult is a single measured value from a report. CanonicalID is
// nil when the result has not been linked to a canonical test identity.
type TestResult struct {
	ID          string
	ReportID    string
	CanonicalID *string
	TestName    string
	TestContext string
	Value       string
	Unit        string
	NormalRange string
	CreatedAt   time.Time
}

// CanonicalTest is a resolved test identity that different reported
// names can map onto.
type CanonicalTest struct {
	ID            string
	CanonicalName string
	Unit          *string
	Panel         *string
}

// PatientTest is a distinct test name/unit pair seen in a patient's
// history, used as the candidate vocabulary for identity resolution.
type PatientTest struct {
	TestName string
	Unit     string
}

// ResultWithDate is a test result joined with its report's date, for
// history views and trend charts.
type ResultWithDate struct {
	TestResult
	ReportDate *string
	SourceFile string
}
