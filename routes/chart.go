/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/medvault/db"
	"github.com/humaidq/medvault/extract"
)

// generateTestChart creates a line chart of one test's values over a
// patient's reports. Results whose value does not parse as a number are
// left out of the series.
func generateTestChart(c flamego.Context, patientID, testName string) (string, error) {
	results, err := db.GetResultsByTestName(c.Request().Context(), patientID, testName)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	var unitLabel string
	var rangeLabel string

	xAxis := make([]string, 0, len(results))
	yData := make([]opts.LineData, 0, len(results))

	for _, result := range results {
		value, ok := extract.ParseValue(result.Value)
		if !ok {
			continue
		}

		label := "report"
		if result.ReportDate != nil && *result.ReportDate != "" {
			label = *result.ReportDate
		}
		xAxis = append(xAxis, label)
		yData = append(yData, opts.LineData{Value: value})

		if unitLabel == "" {
			unitLabel = result.Unit
		}
		if rangeLabel == "" {
			rangeLabel = result.NormalRange
		}
	}

	if len(yData) == 0 {
		return "", nil
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    testName,
			Subtitle: "normal range: " + rangeLabel,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: unitLabel,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
	}

	// Draw the reference bounds as dashed lines when the stored range
	// parses into numbers.
	spec := extract.ParseRange(rangeLabel)
	var markLineItems []interface{}
	switch spec.Kind {
	case extract.RangeInterval:
		markLineItems = append(markLineItems,
			opts.MarkLineNameYAxisItem{Name: "Low", YAxis: spec.Low},
			opts.MarkLineNameYAxisItem{Name: "High", YAxis: spec.High},
		)
	case extract.RangeUpperBound:
		markLineItems = append(markLineItems,
			opts.MarkLineNameYAxisItem{Name: "High", YAxis: spec.High},
		)
	case extract.RangeLowerBound:
		markLineItems = append(markLineItems,
			opts.MarkLineNameYAxisItem{Name: "Low", YAxis: spec.Low},
		)
	}

	if len(markLineItems) > 0 {
		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(testName, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// TestChart displays a trend chart for one of a patient's tests.
func TestChart(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	patientID := c.Param("id")
	if !validPatientID(patientID) {
		SetErrorFlash(s, "Invalid patient ID")
		c.Redirect("/", http.StatusSeeOther)
		return
	}
	testName := c.Query("test")
	ctx := c.Request().Context()

	patient, err := db.GetPatient(ctx, patientID)
	if err != nil {
		logger.Warn("Patient not found", "id", patientID, "error", err)
		SetErrorFlash(s, "Patient not found")
		c.Redirect("/", http.StatusSeeOther)
		return
	}
	data["Patient"] = patient
	data["TestName"] = testName

	chart, err := generateTestChart(c, patientID, testName)
	if err != nil {
		logger.Error("Failed to generate chart", "test", testName, "error", err)
		data["Error"] = "Failed to generate chart"
	} else if chart == "" {
		data["Error"] = "No numeric results for this test"
	} else {
		data["Chart"] = htmltemplate.HTML(chart)
	}

	t.HTML(http.StatusOK, "chart")
}
