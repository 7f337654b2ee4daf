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
	"github.com/humaidq/medvault/ingest"
)

// problemRow pairs an abnormal finding with its cached explanation, if
// one exists.
type problemRow struct {
	ingest.Problem
	Explanation string
}

// ViewProblems displays a patient's abnormal findings with any cached
// explanations. Explanations are only generated on explicit request so
// viewing the page stays cheap.
func ViewProblems(c flamego.Context, s session.Session, f session.Flash, t template.Template, data template.Data) {
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

	problems, err := ingest.FindProblems(ctx, patientID)
	if err != nil {
		logger.Error("Failed to find problems", "patient", patientID, "error", err)
		data["Error"] = "Failed to load abnormal results"
		t.HTML(http.StatusOK, "problems")
		return
	}

	rows := make([]problemRow, 0, len(problems))
	for _, problem := range problems {
		explanation, err := db.GetTestExplanation(ctx, problem.TestName, problem.TestContext, string(problem.Abnormal))
		if err != nil {
			logger.Warn("Failed to read explanation cache", "test", problem.TestName, "error", err)
		}
		rows = append(rows, problemRow{Problem: problem, Explanation: explanation})
	}
	data["Problems"] = rows

	t.HTML(http.StatusOK, "problems")
}

// GenerateExplanations produces explanations for all of a patient's
// abnormal findings that do not have one cached yet.
func GenerateExplanations(c flamego.Context, s session.Session) {
	patientID := c.Param("id")
	ctx := c.Request().Context()

	problems, err := ingest.FindProblems(ctx, patientID)
	if err != nil {
		logger.Error("Failed to find problems", "patient", patientID, "error", err)
		SetErrorFlash(s, "Failed to load abnormal results")
		c.Redirect("/patient/"+patientID+"/problems", http.StatusSeeOther)
		return
	}

	failed := 0
	for _, problem := range problems {
		if _, err := ingestor.ExplainProblem(ctx, problem); err != nil {
			logger.Warn("Failed to explain problem", "test", problem.TestName, "error", err)
			failed++
		}
	}

	if failed > 0 {
		SetWarningFlash(s, "Some explanations could not be generated")
	} else {
		SetSuccessFlash(s, "Explanations generated")
	}
	c.Redirect("/patient/"+patientID+"/problems", http.StatusSeeOther)
}

// ResetExplanations clears the explanation cache.
func ResetExplanations(c flamego.Context, s session.Session) {
	patientID := c.Param("id")
	ctx := c.Request().Context()

	if err := db.ClearTestExplanations(ctx); err != nil {
		logger.Error("Failed to clear explanations", "error", err)
		SetErrorFlash(s, "Failed to clear explanations")
	} else {
		SetSuccessFlash(s, "Explanations cleared")
	}
	c.Redirect("/patient/"+patientID+"/problems", http.StatusSeeOther)
}
