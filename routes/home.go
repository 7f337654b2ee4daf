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
)

// Home displays all patients with reports on file.
func Home(c flamego.Context, f session.Flash, t template.Template, data template.Data) {
	if f != nil {
		data["Flash"] = f
	}

	ctx := c.Request().Context()
	patients, err := db.ListPatients(ctx)
	if err != nil {
		logger.Error("Failed to list patients", "error", err)
		data["Error"] = "Failed to load patients"
	} else {
		data["Patients"] = patients
	}

	t.HTML(http.StatusOK, "home")
}
