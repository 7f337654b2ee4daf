/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medvault/db"
	"github.com/humaidq/medvault/extract"
)

// resultRow is a stored result decorated with its abnormality flag for
// display.
type resultRow struct {
	db.ResultWithDate
	Abnormal extract.AbnormalType
}

// ViewPatient displays a patient's full result history.
func ViewPatient(c flamego.Context, s session.Session, f session.Flash, t template.Template, data template.Data) {
	if f != nil {
		data["Flash"] = f
	}

	patientID := c.Param("id")
	if !validPatientID(patientID) {
		SetErrorFlash(s, "Invalid patient ID")
		c.Redirect("/", http.StatusSeeOther)
		return
	}
	ctx := c.Request().Context()

	patient, err := db.GetPatient(ctx, patientID)
	if err != nil {
		logger.Warn("Patient not found", "id", patientID, "error", err)
		SetErrorFlash(s, "Patient not found")
		c.Redirect("/", http.StatusSeeOther)
		return
	}
	data["Patient"] = patient

	reports, err := db.ListReportsForPatient(ctx, patientID)
	if err != nil {
		logger.Error("Failed to list reports", "patient", patientID, "error", err)
		data["Error"] = "Failed to load reports"
		t.HTML(http.StatusOK, "patient")
		return
	}
	data["Reports"] = reports

	results, err := db.GetResultsForPatient(ctx, patientID)
	if err != nil {
		logger.Error("Failed to load results", "patient", patientID, "error", err)
		data["Error"] = "Failed to load results"
		t.HTML(http.StatusOK, "patient")
		return
	}

	rows := make([]resultRow, 0, len(results))
	for _, result := range results {
		rows = append(rows, resultRow{
			ResultWithDate: result,
			Abnormal:       extract.DetectAbnormal(result.Value, result.NormalRange),
		})
	}
	data["Results"] = rows

	t.HTML(http.StatusOK, "patient")
}
