package notion

import (
	"time"

	"github.com/jomei/notionapi"
)

// Scalar unwraps one page property into a plain Go value according to its
// kind. It covers the property kinds the dashboard databases use:
//
//	title, rich_text -> first text run's plain content (nil if no runs)
//	number           -> float64, as stored
//	select           -> selected option name (nil if none selected)
//	date             -> start date as "YYYY-MM-DD" (nil if unset)
//	checkbox         -> bool
//	email            -> the email string
//
// A missing field or an unrecognized kind yields nil. Absence is always
// representable; Scalar never panics.
func Scalar(props notionapi.Properties, name string) any {
	prop, ok := props[name]
	if !ok || prop == nil {
		return nil
	}

	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		if len(p.Title) == 0 {
			return nil
		}
		return plainText(p.Title[0])
	case *notionapi.RichTextProperty:
		if len(p.RichText) == 0 {
			return nil
		}
		return plainText(p.RichText[0])
	case *notionapi.NumberProperty:
		return p.Number
	case *notionapi.SelectProperty:
		if p.Select.Name == "" {
			return nil
		}
		return p.Select.Name
	case *notionapi.DateProperty:
		if p.Date == nil || p.Date.Start == nil {
			return nil
		}
		return time.Time(*p.Date.Start).Format("2006-01-02")
	case *notionapi.CheckboxProperty:
		return p.Checkbox
	case *notionapi.EmailProperty:
		return p.Email
	}

	return nil
}

// Text returns the string value of a property, or fallback when the field
// is absent, empty or not string-shaped.
func Text(props notionapi.Properties, name, fallback string) string {
	if s, ok := Scalar(props, name).(string); ok && s != "" {
		return s
	}
	return fallback
}

// Number returns the numeric value of a property, or fallback when the
// field is absent or not a number.
func Number(props notionapi.Properties, name string, fallback float64) float64 {
	if n, ok := Scalar(props, name).(float64); ok {
		return n
	}
	return fallback
}

// Flag returns the checkbox value of a property, or fallback when the field
// is absent or not a checkbox.
func Flag(props notionapi.Properties, name string, fallback bool) bool {
	if b, ok := Scalar(props, name).(bool); ok {
		return b
	}
	return fallback
}

// StartTime returns the start time of a date property. The second return
// value reports whether the field carried a usable date.
func StartTime(props notionapi.Properties, name string) (time.Time, bool) {
	prop, ok := props[name]
	if !ok {
		return time.Time{}, false
	}
	p, ok := prop.(*notionapi.DateProperty)
	if !ok || p.Date == nil || p.Date.Start == nil {
		return time.Time{}, false
	}
	return time.Time(*p.Date.Start), true
}

// plainText prefers the API-populated PlainText and falls back to the
// underlying text content for locally-built rich text runs.
func plainText(rt notionapi.RichText) string {
	if rt.PlainText != "" {
		return rt.PlainText
	}
	if rt.Text != nil {
		return rt.Text.Content
	}
	return ""
}
