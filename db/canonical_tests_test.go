// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import "testing"

func TestCanonicalTestLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	missing, err := GetCanonicalTestByName(ctx, "tsh", "uiu/ml")
	if err != nil {
		t.Fatalf("GetCanonicalTestByName failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil before creation, got %+v", missing)
	}

	id, err := CreateCanonicalTest(ctx, "tsh", "uiu/ml", "thyroid")
	if err != nil {
		t.Fatalf("CreateCanonicalTest failed: %v", err)
	}

	found, err := GetCanonicalTestByName(ctx, "tsh", "uiu/ml")
	if err != nil {
		t.Fatalf("GetCanonicalTestByName failed: %v", err)
	}
	if found == nil || found.ID != id {
		t.Fatalf("expected canonical test %s, got %+v", id, found)
	}
	if found.Panel == nil || *found.Panel != "thyroid" {
		t.Fatalf("expected thyroid panel, got %v", found.Panel)
	}

	// Same name under a different unit is a different identity.
	other, err := GetCanonicalTestByName(ctx, "tsh", "ng/ml")
	if err != nil {
		t.Fatalf("GetCanonicalTestByName failed: %v", err)
	}
	if other != nil {
		t.Fatalf("expected nil for different unit, got %+v", other)
	}

	tests, err := ListCanonicalTests(ctx)
	if err != nil {
		t.Fatalf("ListCanonicalTests failed: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("expected 1 canonical test, got %d", len(tests))
	}
}
