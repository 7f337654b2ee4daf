/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"
)

// ========== Test Result Operations ==========

// InsertTestResults stores a batch of results for a report in one
// transaction and returns how many rows were written. Results with an
// empty test name or empty value are skipped rather than rejected, so
// one garbled extraction does not sink the whole report.
func InsertTestResults(ctx context.Context, reportID string, results []TestResult) (int, error) {
	if pool == nil {
		return 0, fmt.Errorf("database connection not initialized")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO test_results (report_id, canonical_id, test_name, test_context, value, unit, normal_range)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	inserted := 0
	for _, result := range results {
		if strings.TrimSpace(result.TestName) == "" || strings.TrimSpace(result.Value) == "" {
			continue
		}

		_, err := tx.Exec(ctx, query,
			reportID, result.CanonicalID,
			result.TestName, result.TestContext,
			result.Value, result.Unit, result.NormalRange,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert test result %q: %w", result.TestName, err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit test results: %w", err)
	}

	return inserted, nil
}

// GetPatientTestVocabulary returns the distinct test name/unit pairs
// seen across a patient's history.
func GetPatientTestVocabulary(ctx context.Context, patientID string) ([]PatientTest, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT DISTINCT tr.test_name, tr.unit
		FROM test_results tr
		JOIN reports r ON r.id = tr.report_id
		WHERE r.patient_id = $1
		ORDER BY tr.test_name ASC
	`

	rows, err := pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test vocabulary: %w", err)
	}
	defer rows.Close()

	var vocabulary []PatientTest
	for rows.Next() {
		var entry PatientTest
		if err := rows.Scan(&entry.TestName, &entry.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan test vocabulary entry: %w", err)
		}
		vocabulary = append(vocabulary, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating test vocabulary: %w", err)
	}

	return vocabulary, nil
}

// GetResultsForPatient returns every result across a patient's
// reports, newest report first.
func GetResultsForPatient(ctx context.Context, patientID string) ([]ResultWithDate, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT tr.id, tr.report_id, tr.canonical_id, tr.test_name, tr.test_context,
		       tr.value, tr.unit, tr.normal_range, tr.created_at,
		       r.report_date, r.source_file
		FROM test_results tr
		JOIN reports r ON r.id = tr.report_id
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC, tr.test_name ASC
	`

	return queryResultsWithDate(ctx, query, patientID)
}

// GetResultsByTestName returns a patient's results for one reported
// test name, oldest first, for trend charting.
func GetResultsByTestName(ctx context.Context, patientID, testName string) ([]ResultWithDate, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT tr.id, tr.report_id, tr.canonical_id, tr.test_name, tr.test_context,
		       tr.value, tr.unit, tr.normal_range, tr.created_at,
		       r.report_date, r.source_file
		FROM test_results tr
		JOIN reports r ON r.id = tr.report_id
		WHERE r.patient_id = $1 AND tr.test_name = $2
		ORDER BY r.created_at ASC
	`

	return queryResultsWithDate(ctx, query, patientID, testName)
}

func queryResultsWithDate(ctx context.Context, query string, args ...any) ([]ResultWithDate, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query test results: %w", err)
	}
	defer rows.Close()

	var results []ResultWithDate
	for rows.Next() {
		var result ResultWithDate
		err := rows.Scan(
			&result.ID, &result.ReportID, &result.CanonicalID,
			&result.TestName, &result.TestContext,
			&result.Value, &result.Unit, &result.NormalRange, &result.CreatedAt,
			&result.ReportDate, &result.SourceFile,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating test results: %w", err)
	}

	return results, nil
}
