/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/humaidq/medvault/extract"
)

const explainSystemPrompt = "You are a medical reference system. You describe what lab tests measure in general terms. You never diagnose, never give treatment advice, and never personalize."

func buildExplainPrompt(testName, testContext string, abnormal extract.AbnormalType) string {
	var sb strings.Builder

	sb.WriteString("Rules:\n")
	sb.WriteString("- bullet points only\n")
	sb.WriteString("- extremely short\n")
	sb.WriteString("- no diagnosis\n")
	sb.WriteString("- no treatment advice\n")
	sb.WriteString("- no personalization\n\n")
	sb.WriteString("Format exactly:\n\n")
	fmt.Fprintf(&sb, "%q:\n", fmt.Sprintf("%s (%s)", testName, testContext))
	sb.WriteString("- what this test measures\n\n")
	fmt.Fprintf(&sb, "%q:\n", fmt.Sprintf("%s value may be seen when", abnormal))
	sb.WriteString("- 1-2 short bullets\n\n")
	sb.WriteString("\"notes\":\n")
	sb.WriteString("- 1 short bullet if relevant\n")

	return sb.String()
}

// GenerateExplanation produces a short plain-language explanation for
// an abnormal finding. The caller is expected to cache the result; one
// explanation per (test, context, abnormal type) triple is enough.
func (c *Client) GenerateExplanation(ctx context.Context, testName, testContext string, abnormal extract.AbnormalType) (string, error) {
	text, err := c.chatCompletion(ctx, explainSystemPrompt, buildExplainPrompt(testName, testContext, abnormal), c.config.MatchTimeout)
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}
	return text, nil
}
