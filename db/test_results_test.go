// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import "testing"

func TestInsertTestResultsSkipsBlankRows(t *testing.T) {
	resetDatabase(t)

	patient := mustCreatePatient(t, "john doe")
	reportID := mustInsertReport(t, patient.ID, stringPtr("12/Jan/2024"))

	results := []TestResult{
		{TestName: "hemoglobin", Value: "13.2", Unit: "g/dl", NormalRange: "13-17"},
		{TestName: "", Value: "5.0"},
		{TestName: "platelets", Value: "   "},
		{TestName: "t3,total", Value: "1.1", Unit: "ng/ml", NormalRange: "0.8-2.0"},
	}

	inserted := mustInsertResults(t, reportID, results)
	if inserted != 2 {
		t.Fatalf("expected 2 inserted results, got %d", inserted)
	}

	stored, err := GetResultsForPatient(testContext(), patient.ID)
	if err != nil {
		t.Fatalf("GetResultsForPatient failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored results, got %d", len(stored))
	}
	if stored[0].ReportDate == nil || *stored[0].ReportDate != "12/Jan/2024" {
		t.Fatalf("expected report date to be joined in, got %v", stored[0].ReportDate)
	}
}

func TestGetPatientTestVocabulary(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	patient := mustCreatePatient(t, "john doe")
	firstReport := mustInsertReport(t, patient.ID, nil)
	secondReport := mustInsertReport(t, patient.ID, nil)

	mustInsertResults(t, firstReport, []TestResult{
		{TestName: "tsh", Value: "2.1", Unit: "uiu/ml"},
		{TestName: "hemoglobin", Value: "13.2", Unit: "g/dl"},
	})
	mustInsertResults(t, secondReport, []TestResult{
		{TestName: "tsh", Value: "2.4", Unit: "uiu/ml"},
	})

	vocabulary, err := GetPatientTestVocabulary(ctx, patient.ID)
	if err != nil {
		t.Fatalf("GetPatientTestVocabulary failed: %v", err)
	}
	if len(vocabulary) != 2 {
		t.Fatalf("expected 2 distinct tests, got %d", len(vocabulary))
	}
	if vocabulary[0].TestName != "hemoglobin" || vocabulary[1].TestName != "tsh" {
		t.Fatalf("unexpected vocabulary order: %+v", vocabulary)
	}

	// Another patient's history must not leak in.
	other := mustCreatePatient(t, "jane roe")
	otherVocabulary, err := GetPatientTestVocabulary(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetPatientTestVocabulary failed: %v", err)
	}
	if len(otherVocabulary) != 0 {
		t.Fatalf("expected empty vocabulary, got %+v", otherVocabulary)
	}
}

func TestGetResultsByTestName(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	patient := mustCreatePatient(t, "john doe")
	firstReport := mustInsertReport(t, patient.ID, stringPtr("01/Jan/2024"))
	secondReport := mustInsertReport(t, patient.ID, stringPtr("01/Feb/2024"))

	mustInsertResults(t, firstReport, []TestResult{
		{TestName: "tsh", Value: "2.1", Unit: "uiu/ml"},
	})
	mustInsertResults(t, secondReport, []TestResult{
		{TestName: "tsh", Value: "2.4", Unit: "uiu/ml"},
		{TestName: "hemoglobin", Value: "13.2", Unit: "g/dl"},
	})

	results, err := GetResultsByTestName(ctx, patient.ID, "tsh")
	if err != nil {
		t.Fatalf("GetResultsByTestName failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Value != "2.1" || results[1].Value != "2.4" {
		t.Fatalf("expected oldest-first order, got %q then %q", results[0].Value, results[1].Value)
	}
}

func TestInsertTestResultsWithCanonicalLink(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	patient := mustCreatePatient(t, "john doe")
	reportID := mustInsertReport(t, patient.ID, nil)

	canonicalID, err := CreateCanonicalTest(ctx, "tsh", "uiu/ml", "thyroid")
	if err != nil {
		t.Fatalf("CreateCanonicalTest failed: %v", err)
	}

	mustInsertResults(t, reportID, []TestResult{
		{TestName: "tsh,serum", Value: "2.1", Unit: "uiu/ml", CanonicalID: &canonicalID},
	})

	stored, err := GetResultsForPatient(ctx, patient.ID)
	if err != nil {
		t.Fatalf("GetResultsForPatient failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 result, got %d", len(stored))
	}
	if stored[0].CanonicalID == nil || *stored[0].CanonicalID != canonicalID {
		t.Fatalf("expected canonical link %s, got %v", canonicalID, stored[0].CanonicalID)
	}
}
