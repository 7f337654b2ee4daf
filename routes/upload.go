/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medvault/ingest"
)

// Reports arrive as plain text with pages separated by form feeds, the
// way pdftotext and friends emit them.
const pageSeparator = "\f"

// UploadForm renders the report upload page.
func UploadForm(c flamego.Context, f session.Flash, t template.Template, data template.Data) {
	if f != nil {
		data["Flash"] = f
	}

	t.HTML(http.StatusOK, "upload")
}

// Upload ingests a pasted or uploaded report document.
func Upload(c flamego.Context, s session.Session) {
	ctx := c.Request().Context()

	if err := c.Request().ParseMultipartForm(10 << 20); err != nil {
		logger.Warn("Failed to parse upload form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	text := c.Request().Form.Get("report_text")
	sourceName := "pasted text"

	if file, header, err := c.Request().FormFile("report_file"); err == nil {
		defer file.Close()

		contents, err := io.ReadAll(file)
		if err != nil {
			logger.Warn("Failed to read uploaded file", "error", err)
			SetErrorFlash(s, "Failed to read uploaded file")
			c.Redirect("/upload", http.StatusSeeOther)
			return
		}

		text = string(contents)
		sourceName = header.Filename
	}

	if strings.TrimSpace(text) == "" {
		SetWarningFlash(s, "No report text provided")
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	pages := strings.Split(text, pageSeparator)

	summary, err := ingestor.IngestDocument(ctx, pages, sourceName)
	if err != nil {
		if errors.Is(err, ingest.ErrNoPatientName) {
			SetErrorFlash(s, "Could not find a patient name in the document")
		} else {
			logger.Error("Ingestion failed", "source", sourceName, "error", err)
			SetErrorFlash(s, "Failed to process report")
		}
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, fmt.Sprintf("Stored %d of %d extracted results for %s",
		summary.TestsStored, summary.TestsExtracted, summary.PatientName))
	c.Redirect("/patient/"+summary.PatientID, http.StatusSeeOther)
}
