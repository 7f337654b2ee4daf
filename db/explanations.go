/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ========== Test Explanation Operations ==========

// Explanations are keyed on the lowercased (test name, context,
// abnormal type) triple so the same abnormal finding is only ever
// explained once.

func explanationKey(testName, testContext, abnormalType string) (string, string, string) {
	return strings.ToLower(strings.TrimSpace(testName)),
		strings.ToLower(strings.TrimSpace(testContext)),
		strings.ToLower(strings.TrimSpace(abnormalType))
}

// GetTestExplanation returns the cached explanation for an abnormal
// finding, or "" when none has been generated yet.
func GetTestExplanation(ctx context.Context, testName, testContext, abnormalType string) (string, error) {
	if pool == nil {
		return "", fmt.Errorf("database connection not initialized")
	}

	name, contextKey, abnormal := explanationKey(testName, testContext, abnormalType)

	var explanation string
	query := `
		SELECT explanation
		FROM test_explanations
		WHERE test_name = $1 AND test_context = $2 AND abnormal_type = $3
	`

	err := pool.QueryRow(ctx, query, name, contextKey, abnormal).Scan(&explanation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get test explanation: %w", err)
	}

	return explanation, nil
}

// SaveTestExplanation caches an explanation, replacing any previous
// one for the same finding.
func SaveTestExplanation(ctx context.Context, testName, testContext, abnormalType, explanation string) error {
	if pool == nil {
		return fmt.Errorf("database connection not initialized")
	}

	name, contextKey, abnormal := explanationKey(testName, testContext, abnormalType)

	query := `
		INSERT INTO test_explanations (test_name, test_context, abnormal_type, explanation)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (test_name, test_context, abnormal_type)
		DO UPDATE SET explanation = EXCLUDED.explanation, created_at = now()
	`

	_, err := pool.Exec(ctx, query, name, contextKey, abnormal, explanation)
	if err != nil {
		return fmt.Errorf("failed to save test explanation: %w", err)
	}

	return nil
}

// ClearTestExplanations drops every cached explanation so they are
// regenerated on next view.
func ClearTestExplanations(ctx context.Context) error {
	if pool == nil {
		return fmt.Errorf("database connection not initialized")
	}

	_, err := pool.Exec(ctx, `DELETE FROM test_explanations`)
	if err != nil {
		return fmt.Errorf("failed to clear test explanations: %w", err)
	}

	return nil
}
