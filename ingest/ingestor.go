/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ingest turns the pages of a lab report into stored,
// identity-resolved test results for a patient.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/humaidq/medvault/db"
	"github.com/humaidq/medvault/extract"
)

// Extractor pulls structured test observations out of one page of
// report text.
type Extractor interface {
	ExtractTests(ctx context.Context, pageText string) []extract.TestObservation
}

// Matcher decides whether a newly seen test name is the same test as
// one of the candidate names from a patient's history.
type Matcher interface {
	MatchTestName(ctx context.Context, newName string, candidates []string) (string, bool)
}

// Explainer produces a plain-language explanation of an abnormal
// finding.
type Explainer interface {
	GenerateExplanation(ctx context.Context, testName, testContext string, abnormal extract.AbnormalType) (string, error)
}

// Ingestor runs the full pipeline for one document: extraction, range
// recovery, merging, identity resolution and storage.
type Ingestor struct {
	extractor Extractor
	matcher   Matcher
	explainer Explainer
}

// NewIngestor wires an ingestor from its collaborators. explainer may
// be nil when explanations are not needed (e.g. ingest-only CLI runs).
func NewIngestor(extractor Extractor, matcher Matcher, explainer Explainer) *Ingestor {
	return &Ingestor{
		extractor: extractor,
		matcher:   matcher,
		explainer: explainer,
	}
}

// Summary describes what one ingestion run did.
type Summary struct {
	PatientID      string
	PatientName    string
	ReportID       string
	ReportDate     string
	PagesProcessed int
	TestsExtracted int
	TestsStored    int
}

// IngestDocument processes the pages of one report and stores the
// results. The patient name is taken from the document text itself; a
// document with no recognizable name is rejected before any extraction
// work happens.
func (ing *Ingestor) IngestDocument(ctx context.Context, pages []string, sourceName string) (*Summary, error) {
	info := extract.ParsePatientInfo(strings.Join(pages, "\n"))
	if info.Name == "" {
		return nil, ErrNoPatientName
	}

	logger.Info("Ingesting document", "source", sourceName, "patient", info.Name, "pages", len(pages))

	cache := extract.NewRangeCache()
	var observations []extract.TestObservation

	for i, page := range pages {
		extracted := ing.extractor.ExtractTests(ctx, page)
		recovered := extract.RecoverRanges(page)

		for _, obs := range extracted {
			cache.Observe(obs, recovered)
		}

		logger.Debug("Processed page", "page", i+1, "tests", len(extracted), "recovered_ranges", len(recovered))
		observations = append(observations, extracted...)
	}

	cache.Fill(observations)

	patient, err := db.GetOrCreatePatient(ctx, info.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	vocabulary, err := db.GetPatientTestVocabulary(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load test vocabulary: %w", err)
	}

	var reportDate *string
	if info.ReportDate != "" {
		reportDate = &info.ReportDate
	}

	reportID, err := db.InsertReport(ctx, patient.ID, reportDate, sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	results, err := ing.resolveResults(ctx, observations, vocabulary)
	if err != nil {
		return nil, err
	}

	stored, err := db.InsertTestResults(ctx, reportID, results)
	if err != nil {
		return nil, fmt.Errorf("failed to store test results: %w", err)
	}

	logger.Info("Document ingested", "patient", patient.Name, "report", reportID,
		"extracted", len(observations), "stored", stored)

	return &Summary{
		PatientID:      patient.ID,
		PatientName:    patient.Name,
		ReportID:       reportID,
		ReportDate:     info.ReportDate,
		PagesProcessed: len(pages),
		TestsExtracted: len(observations),
		TestsStored:    stored,
	}, nil
}
