/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
)

// ========== Report Operations ==========

// InsertReport records a new ingested document for a patient and
// returns its ID. reportDate may be nil when the document carried no
// recognizable date.
func InsertReport(ctx context.Context, patientID string, reportDate *string, sourceFile string) (string, error) {
	if pool == nil {
		return "", fmt.Errorf("database connection not initialized")
	}

	var id string
	query := `
		INSERT INTO reports (patient_id, report_date, source_file)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := pool.QueryRow(ctx, query, patientID, reportDate, sourceFile).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}

	return id, nil
}

// ListReportsForPatient returns a patient's reports, most recent first.
func ListReportsForPatient(ctx context.Context, patientID string) ([]Report, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT id, patient_id, report_date, source_file, created_at
		FROM reports
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		err := rows.Scan(&report.ID, &report.PatientID, &report.ReportDate, &report.SourceFile, &report.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}
