/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package routes holds the web handlers for browsing patients, uploading
// reports and reviewing abnormal findings.
package routes

import (
	"github.com/google/uuid"

	"github.com/humaidq/medvault/ingest"
)

var ingestor *ingest.Ingestor

// SetIngestor installs the ingestion pipeline used by the upload and
// problems handlers. Must be called before the server starts.
func SetIngestor(ing *ingest.Ingestor) {
	ingestor = ing
}

// validPatientID reports whether a path parameter looks like a patient
// UUID, so garbage IDs are bounced before hitting the database.
func validPatientID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
