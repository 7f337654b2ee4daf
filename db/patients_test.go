// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import "testing"

func TestGetOrCreatePatientNormalizesName(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	first, err := GetOrCreatePatient(ctx, "  John DOE ")
	if err != nil {
		t.Fatalf("GetOrCreatePatient failed: %v", err)
	}
	if first.Name != "john doe" {
		t.Fatalf("expected lowercased name, got %q", first.Name)
	}

	second, err := GetOrCreatePatient(ctx, "John Doe")
	if err != nil {
		t.Fatalf("GetOrCreatePatient failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same patient row, got %s and %s", first.ID, second.ID)
	}

	patients, err := ListPatients(ctx)
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(patients))
	}
}

func TestGetOrCreatePatientRejectsEmptyName(t *testing.T) {
	resetDatabase(t)

	if _, err := GetOrCreatePatient(testContext(), "   "); err != ErrPatientNameEmpty {
		t.Fatalf("expected ErrPatientNameEmpty, got %v", err)
	}
}

func TestGetPatientByName(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	created := mustCreatePatient(t, "jane roe")

	found, err := GetPatientByName(ctx, "Jane ROE")
	if err != nil {
		t.Fatalf("GetPatientByName failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected to find patient %s", created.ID)
	}

	missing, err := GetPatientByName(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetPatientByName failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown patient, got %+v", missing)
	}
}
