package notion

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"
)

func datePropOf(t time.Time) *notionapi.DateProperty {
	d := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

func TestScalar_ByKind(t *testing.T) {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{
			Title: []notionapi.RichText{{PlainText: "Checking"}},
		},
		"Reason": &notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: "rent deposit"}}},
		},
		"Balance Amount": &notionapi.NumberProperty{Number: 1250.75},
		"Account Type":   &notionapi.SelectProperty{Select: notionapi.Option{Name: "Savings"}},
		"Date":           datePropOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		"Is Active":      &notionapi.CheckboxProperty{Checkbox: true},
		"Email":          &notionapi.EmailProperty{Email: "ana@example.com"},
	}

	tests := []struct {
		field string
		want  any
	}{
		{"Name", "Checking"},
		{"Reason", "rent deposit"},
		{"Balance Amount", 1250.75},
		{"Account Type", "Savings"},
		{"Date", "2024-03-01"},
		{"Is Active", true},
		{"Email", "ana@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := Scalar(props, tt.field)
			if got != tt.want {
				t.Errorf("Scalar(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestScalar_AbsenceIsNil(t *testing.T) {
	props := notionapi.Properties{
		"Empty Title":  &notionapi.TitleProperty{},
		"Empty Text":   &notionapi.RichTextProperty{},
		"No Selection": &notionapi.SelectProperty{},
		"No Date":      &notionapi.DateProperty{},
		"Unknown Kind": &notionapi.URLProperty{URL: "https://example.com"},
	}

	for _, field := range []string{
		"Empty Title", "Empty Text", "No Selection", "No Date", "Unknown Kind", "Missing",
	} {
		if got := Scalar(props, field); got != nil {
			t.Errorf("Scalar(%q) = %v, want nil", field, got)
		}
	}
}

func TestTypedHelpers_Fallbacks(t *testing.T) {
	props := notionapi.Properties{
		"Amount": &notionapi.NumberProperty{Number: -42.5},
	}

	if got := Number(props, "Amount", 0); got != -42.5 {
		t.Errorf("Number = %v, want -42.5", got)
	}
	if got := Number(props, "Missing", 7); got != 7 {
		t.Errorf("Number fallback = %v, want 7", got)
	}
	if got := Text(props, "Amount", "N/A"); got != "N/A" {
		t.Errorf("Text over number = %q, want fallback", got)
	}
	if got := Flag(props, "Missing", false); got != false {
		t.Errorf("Flag fallback = %v, want false", got)
	}
}

func TestStartTime(t *testing.T) {
	when := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	props := notionapi.Properties{
		"Date":    datePropOf(when),
		"No Date": &notionapi.DateProperty{},
	}

	got, ok := StartTime(props, "Date")
	if !ok || !got.Equal(when) {
		t.Errorf("StartTime = %v, %v; want %v, true", got, ok, when)
	}
	if _, ok := StartTime(props, "No Date"); ok {
		t.Error("StartTime on empty date reported ok")
	}
	if _, ok := StartTime(props, "Missing"); ok {
		t.Error("StartTime on missing field reported ok")
	}
}
