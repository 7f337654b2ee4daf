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

// ========== Patient Operations ==========

// GetOrCreatePatient returns the patient with the given name, creating
// the row if it does not exist. Names are trimmed and lowercased before
// lookup so repeated uploads resolve to the same patient.
func GetOrCreatePatient(ctx context.Context, name string) (*Patient, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrPatientNameEmpty
	}

	var patient Patient
	query := `
		INSERT INTO patients (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`

	err := pool.QueryRow(ctx, query, name).Scan(&patient.ID, &patient.Name, &patient.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create patient: %w", err)
	}

	return &patient, nil
}

// ListPatients returns all patients ordered by name.
func ListPatients(ctx context.Context) ([]Patient, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	query := `
		SELECT id, name, created_at
		FROM patients
		ORDER BY name ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		var patient Patient
		if err := rows.Scan(&patient.ID, &patient.Name, &patient.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

// GetPatient returns a patient by ID.
func GetPatient(ctx context.Context, id string) (*Patient, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	var patient Patient
	query := `
		SELECT id, name, created_at
		FROM patients
		WHERE id = $1
	`

	err := pool.QueryRow(ctx, query, id).Scan(&patient.ID, &patient.Name, &patient.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return &patient, nil
}

// GetPatientByName returns the patient with the given (lowercased)
// name, or nil when no such patient exists.
func GetPatientByName(ctx context.Context, name string) (*Patient, error) {
	if pool == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	name = strings.ToLower(strings.TrimSpace(name))

	var patient Patient
	query := `
		SELECT id, name, created_at
		FROM patients
		WHERE name = $1
	`

	err := pool.QueryRow(ctx, query, name).Scan(&patient.ID, &patient.Name, &patient.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return &patient, nil
}
