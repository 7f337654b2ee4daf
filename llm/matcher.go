/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

const matchSystemPrompt = "You are a medical lab test name matcher. Output JSON only."

// noMatchSentinel is the value the matcher returns when the new test
// is not the same clinical test as any candidate.
const noMatchSentinel = "no_match"

func buildMatchPrompt(newName string, candidates []string) string {
	var sb strings.Builder

	sb.WriteString("Rules:\n")
	sb.WriteString("- Match ONLY if it is the same lab test.\n")
	sb.WriteString("- Ratios are NOT the same as base measurements.\n")
	sb.WriteString("- If unsure, return no_match.\n")
	sb.WriteString("- Output JSON only.\n\n")
	sb.WriteString("NEW TEST:\n")
	sb.WriteString(newName)
	sb.WriteString("\n\nEXISTING TESTS:\n")
	for _, candidate := range candidates {
		sb.WriteString("- ")
		sb.WriteString(candidate)
		sb.WriteString("\n")
	}
	sb.WriteString("\nOutput:\n")
	sb.WriteString(`{"match": "<existing test name or no_match>", "confidence": 0.0}`)

	return sb.String()
}

type matchResponse struct {
	Match      string  `json:"match"`
	Confidence float64 `json:"confidence"`
}

// MatchTestName asks the model whether newName refers to the same
// clinical test as one of the candidate names already on record. The
// match is accepted only when the response is well-formed, is not the
// no-match sentinel, and carries a confidence at or above the
// configured threshold. Every failure mode degrades to no match:
// fragmenting a record is recoverable, silently merging two different
// tests is not.
func (c *Client) MatchTestName(ctx context.Context, newName string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	raw, err := c.chatCompletion(ctx, matchSystemPrompt, buildMatchPrompt(newName, candidates), c.config.MatchTimeout)
	if err != nil {
		logger.Warn("Test name match call failed", "test", newName, "error", err)
		return "", false
	}

	var parsed matchResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		logger.Warn("Test name match returned malformed JSON", "test", newName, "snippet", snippet(raw))
		return "", false
	}

	if parsed.Match == "" || parsed.Match == noMatchSentinel {
		return "", false
	}
	if parsed.Confidence < c.config.MatchThreshold {
		logger.Debug("Test name match below threshold", "test", newName, "match", parsed.Match, "confidence", parsed.Confidence)
		return "", false
	}

	return parsed.Match, true
}
