// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import "testing"

func TestExplanationCacheRoundTrip(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	missing, err := GetTestExplanation(ctx, "tsh", "serum", "high")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	if missing != "" {
		t.Fatalf("expected empty explanation before save, got %q", missing)
	}

	if err := SaveTestExplanation(ctx, "TSH", " Serum ", "HIGH", "thyroid is overactive"); err != nil {
		t.Fatalf("SaveTestExplanation failed: %v", err)
	}

	// Lookup keys are case-folded, so mixed case must hit the cache.
	explanation, err := GetTestExplanation(ctx, "tsh", "serum", "high")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	if explanation != "thyroid is overactive" {
		t.Fatalf("expected cached explanation, got %q", explanation)
	}

	if err := SaveTestExplanation(ctx, "tsh", "serum", "high", "updated text"); err != nil {
		t.Fatalf("SaveTestExplanation failed: %v", err)
	}

	updated, err := GetTestExplanation(ctx, "tsh", "serum", "high")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	if updated != "updated text" {
		t.Fatalf("expected replacement on conflict, got %q", updated)
	}
}

func TestExplanationsKeyedPerAbnormalType(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	if err := SaveTestExplanation(ctx, "tsh", "serum", "high", "too high"); err != nil {
		t.Fatalf("SaveTestExplanation failed: %v", err)
	}
	if err := SaveTestExplanation(ctx, "tsh", "serum", "low", "too low"); err != nil {
		t.Fatalf("SaveTestExplanation failed: %v", err)
	}

	high, err := GetTestExplanation(ctx, "tsh", "serum", "high")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	low, err := GetTestExplanation(ctx, "tsh", "serum", "low")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	if high != "too high" || low != "too low" {
		t.Fatalf("expected distinct entries per abnormal type, got %q and %q", high, low)
	}
}

func TestClearTestExplanations(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	if err := SaveTestExplanation(ctx, "tsh", "serum", "high", "too high"); err != nil {
		t.Fatalf("SaveTestExplanation failed: %v", err)
	}

	if err := ClearTestExplanations(ctx); err != nil {
		t.Fatalf("ClearTestExplanations failed: %v", err)
	}

	explanation, err := GetTestExplanation(ctx, "tsh", "serum", "high")
	if err != nil {
		t.Fatalf("GetTestExplanation failed: %v", err)
	}
	if explanation != "" {
		t.Fatalf("expected cache to be empty, got %q", explanation)
	}
}
