package domain

import (
	"testing"
	"time"
)

func TestEmployeeCountForBucket(t *testing.T) {
	tests := []struct {
		bucket string
		want   int
	}{
		{"small", 25},
		{"medium", 100},
		{"large", 500},
		{"enterprise", 1000},
		{"unknown", 0},
		{"", 0},
	}

	for _, tc := range tests {
		if got := EmployeeCountForBucket(tc.bucket); got != tc.want {
			t.Errorf("EmployeeCountForBucket(%q) = %d, want %d", tc.bucket, got, tc.want)
		}
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first string
		last  string
		want  string
	}{
		{"John", "Doe", "John Doe"},
		{"John", "", "John"},
		{"", "Doe", "Doe"},
		{"", "", ""},
	}

	for _, tc := range tests {
		lead := Lead{FirstName: tc.first, LastName: tc.last}
		if got := lead.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestFormatCRMDates(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)

	if got := FormatCRMDate(ts); got != "03/07/2026" {
		t.Errorf("FormatCRMDate = %q, want 03/07/2026", got)
	}
	if got := FormatCRMDateTime(ts); got != "03/07/2026 8:00 AM" {
		t.Errorf("FormatCRMDateTime = %q, want 03/07/2026 8:00 AM", got)
	}
}

func TestDefaultCriteriaRequiresEmail(t *testing.T) {
	criteria := DefaultCriteria()

	if len(criteria.RequiredFields) != 1 || criteria.RequiredFields[0] != "email" {
		t.Errorf("RequiredFields = %v, want [email]", criteria.RequiredFields)
	}
}

func TestGenerationRequestNormalize(t *testing.T) {
	req := GenerationRequest{Industry: "software"}
	req.Normalize()

	if req.Count != 5 {
		t.Errorf("Count = %d, want 5", req.Count)
	}
	if req.MinRelevanceScore != 0.7 {
		t.Errorf("MinRelevanceScore = %v, want 0.7", req.MinRelevanceScore)
	}
}
