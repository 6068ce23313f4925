package models

// Form field element types the filler understands.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeNumber   = "number"
	FieldTypePassword = "password"
	FieldTypeSelect   = "select"
	FieldTypeTextarea = "textarea"
	FieldTypeCheckbox = "checkbox"
	FieldTypeRadio    = "radio"
)

// FormField describes one discovered form input together with the engine's
// suggested value and the confidence of the profile-to-field mapping.
// Fields are created fresh per page (by the LLM analyzer or by the Workday
// selector table) and discarded after the fill pass.
type FormField struct {
	ElementID      string   `json:"element_id"`
	ElementName    string   `json:"element_name"`
	ElementType    string   `json:"element_type"`
	Label          string   `json:"label"`
	Placeholder    string   `json:"placeholder"`
	Required       bool     `json:"required"`
	Options        []string `json:"options,omitempty"`
	SuggestedValue string   `json:"suggested_value"`
	Confidence     float64  `json:"confidence"`
}
