/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import "errors"

var (
	// ErrNoPatientName means the document carried no recognizable
	// patient name, so results cannot be attributed to anyone.
	ErrNoPatientName = errors.New("no patient name found in document")
)
