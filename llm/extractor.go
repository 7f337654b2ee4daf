/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/humaidq/medvault/extract"
)

const extractSystemPrompt = "You are a medical laboratory report parser. Output JSON only, no explanations."

// buildExtractPrompt creates the per-page extraction prompt.
func buildExtractPrompt(pageText string) string {
	var sb strings.Builder

	sb.WriteString("You will be given the text of ONE PAGE of a medical lab report.\n\n")
	sb.WriteString("Your task is to extract ONLY clinically reported laboratory test results.\n\n")
	sb.WriteString("A laboratory test result MUST include:\n")
	sb.WriteString("- a test name\n")
	sb.WriteString("- a measured value (numeric or qualitative like Negative/Absent)\n")
	sb.WriteString("- optionally a unit\n")
	sb.WriteString("- optionally a reference range\n\n")
	sb.WriteString("You MUST ALSO determine a test_context for each test.\n\n")
	sb.WriteString("test_context means the panel, section, or sample type the test belongs to.\n")
	sb.WriteString("Use the nearest section heading or panel name on the page.\n")
	sb.WriteString("If the context is unclear, use an empty string.\n\n")
	sb.WriteString("You MUST IGNORE:\n")
	sb.WriteString("- lab names, package names, branding\n")
	sb.WriteString("- section headings without results\n")
	sb.WriteString("- reference-only ranges (e.g. trimester ranges)\n")
	sb.WriteString("- guidelines, explanations, comments, notes\n")
	sb.WriteString("- repeated patient information\n")
	sb.WriteString("- page numbers or table headers\n")
	sb.WriteString("- educational or descriptive paragraphs\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Do NOT infer or guess values\n")
	sb.WriteString("- Do NOT include ranges without an actual measured result\n")
	sb.WriteString("- If the page has no valid test results, return an empty list\n")
	sb.WriteString("- Output JSON ONLY, no explanations\n\n")
	sb.WriteString("Additional rule for reference ranges:\n")
	sb.WriteString("- If a numeric range (e.g. 0.80-2.0, 6.09 - 12.23) appears on the SAME LINE\n")
	sb.WriteString("  as the measured value or immediately adjacent to it, treat it as\n")
	sb.WriteString("  the reference_range.\n")
	sb.WriteString("- Do NOT extract ranges that appear in guidelines, trimester tables,\n")
	sb.WriteString("  explanatory text, or standalone reference sections.\n\n")
	sb.WriteString("Additional clarification:\n")
	sb.WriteString("- Calculated or derived tests are valid if they include a measured value.\n")
	sb.WriteString("- Do NOT exclude a test solely because it appears at the end of a section.\n\n")
	sb.WriteString("Output format:\n")
	sb.WriteString(`{"tests": [{"test_name": "", "test_context": "", "value": "", "unit": "", "reference_range": ""}]}`)
	sb.WriteString("\n\nPage text:\n")
	sb.WriteString(pageText)

	return sb.String()
}

type extractResponse struct {
	Tests []extract.TestObservation `json:"tests"`
}

// ExtractTests extracts clinically reported test results from one page
// of report text. A transport failure, timeout, or malformed response
// yields an empty list; extraction is best effort and must never abort
// the ingestion pipeline.
func (c *Client) ExtractTests(ctx context.Context, pageText string) []extract.TestObservation {
	raw, err := c.chatCompletion(ctx, extractSystemPrompt, buildExtractPrompt(pageText), c.config.ExtractTimeout)
	if err != nil {
		logger.Warn("Test extraction call failed", "error", err)
		return nil
	}

	var parsed extractResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		logger.Warn("Test extraction returned malformed JSON", "error", err, "snippet", snippet(raw))
		return nil
	}

	for i := range parsed.Tests {
		parsed.Tests[i].TestName = extract.NormalizeTestName(parsed.Tests[i].TestName)
	}

	return parsed.Tests
}

func snippet(s string) string {
	if len(s) > 120 {
		return fmt.Sprintf("%s…", s[:120])
	}
	return s
}
