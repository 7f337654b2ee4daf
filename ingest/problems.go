/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"context"
	"fmt"

	"github.com/humaidq/medvault/db"
	"github.com/humaidq/medvault/extract"
)

// Problem is a stored result whose value falls outside its reference
// range.
type Problem struct {
	TestName    string
	TestContext string
	Value       string
	Unit        string
	NormalRange string
	Abnormal    extract.AbnormalType
	ReportDate  string
	SourceFile  string
}

// FindProblems scans a patient's full history and returns every result
// flagged as outside its reference range. Results whose value or range
// cannot be parsed are silently kept out of the list.
func FindProblems(ctx context.Context, patientID string) ([]Problem, error) {
	results, err := db.GetResultsForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient results: %w", err)
	}

	var problems []Problem
	for _, result := range results {
		abnormal := extract.DetectAbnormal(result.Value, result.NormalRange)
		if abnormal == extract.AbnormalNone {
			continue
		}

		problem := Problem{
			TestName:    result.TestName,
			TestContext: result.TestContext,
			Value:       result.Value,
			Unit:        result.Unit,
			NormalRange: result.NormalRange,
			Abnormal:    abnormal,
			SourceFile:  result.SourceFile,
		}
		if result.ReportDate != nil {
			problem.ReportDate = *result.ReportDate
		}
		problems = append(problems, problem)
	}

	return problems, nil
}

// ExplainProblem returns a plain-language explanation for a problem,
// serving from the cache when the same finding was explained before and
// generating (then caching) otherwise.
func (ing *Ingestor) ExplainProblem(ctx context.Context, problem Problem) (string, error) {
	cached, err := db.GetTestExplanation(ctx, problem.TestName, problem.TestContext, string(problem.Abnormal))
	if err != nil {
		return "", fmt.Errorf("failed to check explanation cache: %w", err)
	}
	if cached != "" {
		return cached, nil
	}

	if ing.explainer == nil {
		return "", fmt.Errorf("no explainer configured")
	}

	explanation, err := ing.explainer.GenerateExplanation(ctx, problem.TestName, problem.TestContext, problem.Abnormal)
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}

	if err := db.SaveTestExplanation(ctx, problem.TestName, problem.TestContext, string(problem.Abnormal), explanation); err != nil {
		return "", fmt.Errorf("failed to cache explanation: %w", err)
	}

	return explanation, nil
}
