// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package extract

import "testing"

func TestRecoverRangesInterval(t *testing.T) {
	t.Parallel()

	page := "SERUM CREATININE\nResult 1.1 mg/dL 0.7-1.3\n"

	recovered := RecoverRanges(page)
	key := RangeKey{Name: "serum creatinine", Unit: "mg/dl"}
	if got := recovered[key]; got != "0.7-1.3" {
		t.Fatalf("expected interval range, got %q (all: %v)", got, recovered)
	}
}

func TestRecoverRangesSingleSidedLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "upto", line: "Adults upto 40", want: "upto 40"},
		{name: "less than", line: "Desirable < 200 mg/dL", want: "< 200"},
		{name: "leq", line: "Normal ≤ 5.5", want: "≤ 5.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recovered := RecoverRanges("TOTAL BILIRUBIN\n" + tt.line + "\n")
			var got string
			for _, v := range recovered {
				got = v
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRecoverRangesIntervalWinsOverLimit(t *testing.T) {
	t.Parallel()

	// A line with both shapes records the interval only.
	recovered := RecoverRanges("SERUM URIC ACID\nvalue 3.5-7.2 upto 9\n")
	key := RangeKey{Name: "serum uric acid", Unit: ""}
	if got := recovered[key]; got != "3.5-7.2" {
		t.Fatalf("expected interval to win, got %q", got)
	}
}

func TestRecoverRangesLastMatchWinsPerKey(t *testing.T) {
	t.Parallel()

	page := "FASTING GLUCOSE\n70-100\n74-106\n"

	recovered := RecoverRanges(page)
	key := RangeKey{Name: "fasting glucose", Unit: ""}
	if got := recovered[key]; got != "74-106" {
		t.Fatalf("expected later match to win, got %q", got)
	}
}

func TestRecoverRangesNoHeading(t *testing.T) {
	t.Parallel()

	// Lines before the first heading are ignored; a page without any
	// heading yields nothing.
	recovered := RecoverRanges("glucose 70-100 mg/dL\nvalue 3.2-4.5\n")
	if len(recovered) != 0 {
		t.Fatalf("expected empty map, got %v", recovered)
	}
}

func TestRecoverRangesProfileLineIsNotHeading(t *testing.T) {
	t.Parallel()

	page := "THYROID PROFILE\nTSH 3.2-\nTSH ULTRASENSITIVE\n4.5 mIU/mL (0.4-4.5)\n"

	recovered := RecoverRanges(page)
	// The unit vocabulary does not include mIU/mL, so the unit guess
	// stays empty.
	key := RangeKey{Name: "tsh ultrasensitive", Unit: ""}
	if got := recovered[key]; got != "0.4-4.5" {
		t.Fatalf("expected range under real heading, got %q (all: %v)", got, recovered)
	}
	for k := range recovered {
		if k.Name == "thyroid profile" {
			t.Fatalf("PROFILE line must not become a heading: %v", recovered)
		}
	}
}

func TestHeadingLineRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"SERUM CREATININE", true},
		{"LIPID METHOD NOTES", false},
		{"THYROID PROFILE", false},
		{"SHORT", false},
		{"Serum Creatinine", false},
		{"123456789", false},
	}

	for _, tt := range tests {
		if got := isHeadingLine(tt.line); got != tt.want {
			t.Fatalf("isHeadingLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
