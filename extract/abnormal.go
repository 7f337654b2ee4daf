/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"strconv"
	"strings"
)

// AbnormalType classifies a measured value against its reference range.
type AbnormalType string

// AbnormalType values: AbnormalNone covers both in-range values and
// anything undecidable (missing or unparsable value or range).
const (
	AbnormalNone AbnormalType = ""
	AbnormalLow  AbnormalType = "low"
	AbnormalHigh AbnormalType = "high"
)

// ParseValue parses a stored measured value, stripping trailing H/L
// abnormality flags some labs append ("12.5 H").
func ParseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimRight(s, "HL"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DetectAbnormal classifies a stored value against a stored reference
// range. Qualitative values, missing ranges, and unparsable ranges all
// classify as AbnormalNone rather than erroring; abnormality detection
// is best effort over whatever the extraction pipeline persisted.
func DetectAbnormal(valueText, rangeText string) AbnormalType {
	value, ok := ParseValue(valueText)
	if !ok || rangeText == "" {
		return AbnormalNone
	}

	switch spec := ParseRange(rangeText); spec.Kind {
	case RangeInterval:
		if value < spec.Low {
			return AbnormalLow
		}
		if value > spec.High {
			return AbnormalHigh
		}
	case RangeUpperBound:
		if value > spec.High {
			return AbnormalHigh
		}
	case RangeLowerBound:
		if value < spec.Low {
			return AbnormalLow
		}
	}

	return AbnormalNone
}
