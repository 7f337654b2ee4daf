// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func mustCreatePatient(t *testing.T, name string) *Patient {
	t.Helper()
	patient, err := GetOrCreatePatient(testContext(), name)
	if err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}
	return patient
}

func mustInsertReport(t *testing.T, patientID string, reportDate *string) string {
	t.Helper()
	reportID, err := InsertReport(testContext(), patientID, reportDate, "report.txt")
	if err != nil {
		t.Fatalf("failed to insert report: %v", err)
	}
	return reportID
}

func mustInsertResults(t *testing.T, reportID string, results []TestResult) int {
	t.Helper()
	inserted, err := InsertTestResults(testContext(), reportID, results)
	if err != nil {
		t.Fatalf("failed to insert test results: %v", err)
	}
	return inserted
}
