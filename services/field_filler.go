package services

import (
	"log"
	"strings"
	"time"

	"autoapply/models"
)

// FieldFiller writes suggested values into live elements with type-appropriate
// semantics. Failures are per-field and never abort the run.
type FieldFiller struct {
	// SettleDelay is a short pause after scrolling an element into view.
	// Interacting with a freshly rendered element immediately is a common
	// source of flakiness; tests set this to zero.
	SettleDelay time.Duration
}

func NewFieldFiller() *FieldFiller {
	return &FieldFiller{SettleDelay: 500 * time.Millisecond}
}

var (
	truthyValues = map[string]bool{"true": true, "yes": true, "1": true}
	falsyValues  = map[string]bool{"false": true, "no": true, "0": true}
)

// Fill writes suggestedValue into the element. It reports whether the value
// was applied; an empty value, an unknown field type or an exhausted option
// match all count as failure for that field.
func (f *FieldFiller) Fill(element Element, suggestedValue, fieldType string) bool {
	if suggestedValue == "" {
		return false
	}

	element.ScrollIntoView()
	if f.SettleDelay > 0 {
		time.Sleep(f.SettleDelay)
	}

	switch fieldType {
	case models.FieldTypeSelect:
		return f.fillSelect(element, suggestedValue)

	case models.FieldTypeText, models.FieldTypeEmail, models.FieldTypeTel,
		models.FieldTypeNumber, models.FieldTypePassword, models.FieldTypeTextarea:
		if err := element.Clear(); err != nil {
			log.Printf("Error clearing field: %v", err)
			return false
		}
		if err := element.Type(suggestedValue); err != nil {
			log.Printf("Error filling field: %v", err)
			return false
		}
		return true

	case models.FieldTypeCheckbox, models.FieldTypeRadio:
		return f.fillToggle(element, suggestedValue)

	default:
		return false
	}
}

// fillSelect picks an option by, in order: exact visible text, exact value,
// case-insensitive text, case-insensitive substring of the text. No arbitrary
// option is ever picked as a default.
func (f *FieldFiller) fillSelect(element Element, suggested string) bool {
	options := element.Options()

	for _, opt := range options {
		if opt.Label == suggested {
			return element.SelectByText(opt.Label) == nil
		}
	}
	for _, opt := range options {
		if opt.Value == suggested {
			return element.SelectByValue(opt.Value) == nil
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Label, suggested) {
			return element.SelectByText(opt.Label) == nil
		}
	}
	needle := strings.ToLower(suggested)
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			return element.SelectByText(opt.Label) == nil
		}
	}
	return false
}

// fillToggle makes the checkbox/radio state match the suggested value,
// clicking only when the current state differs from the target.
func (f *FieldFiller) fillToggle(element Element, suggested string) bool {
	normalized := strings.ToLower(strings.TrimSpace(suggested))

	var target bool
	switch {
	case truthyValues[normalized]:
		target = true
	case falsyValues[normalized]:
		target = false
	default:
		return false
	}

	if element.Checked() == target {
		return true
	}
	if err := element.Click(); err != nil {
		log.Printf("Error toggling field: %v", err)
		return false
	}
	return true
}
