/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ========== Canonical Test Operations ==========

// GetCanonicalTestByName returns the canonical test with the given
// name and unit, or nil when none exists.
func GetCanonicalTestByName(ctx context.Context, canonicalName, unit string) (*CanonicalTest, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	var test CanonicalTest
	query := `
		SELECT id, canonical_name, unit, panel
		FROM canonical_tests
		WHERE canonical_name = $1 AND unit IS NOT DISTINCT FROM $2
	`

	err := pool.QueryRow(ctx, query, canonicalName, unit).Scan(
		&test.ID, &test.CanonicalName, &test.Unit, &test.Panel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get canonical test: %w", err)
	}

	return &test, nil
}

// CreateCanonicalTest registers a new canonical test identity and
// returns its ID.
func CreateCanonicalTest(ctx context.Context, canonicalName, unit, panel string) (string, error) {
	if pool == nil {
		return "", fmt.Errorf("database connection not initialized")
	}

	var id string
	query := `
		INSERT INTO canonical_tests (canonical_name, unit, panel)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := pool.QueryRow(ctx, query, canonicalName, unit, panel).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create canonical test: %w", err)
	}

	return id, nil
}

// ListCanonicalTests returns all canonical test identities ordered by
// name.
func ListCanonicalTests(ctx context.Context) ([]CanonicalTest, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT id, canonical_name, unit, panel
		FROM canonical_tests
		ORDER BY canonical_name ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list canonical tests: %w", err)
	}
	defer rows.Close()

	var tests []CanonicalTest
	for rows.Next() {
		var test CanonicalTest
		if err := rows.Scan(&test.ID, &test.CanonicalName, &test.Unit, &test.Panel); err != nil {
			return nil, fmt.Errorf("failed to scan canonical test: %w", err)
		}
		tests = append(tests, test)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating canonical tests: %w", err)
	}

	return tests, nil
}
