package models

import "time"

// Service identifiers recorded on results.
const (
	ServiceAutoApply    = "AutoApplyService"
	ServiceWorkdayApply = "WorkdayApplyService"
)

// ApplicationResult is the orchestrator's output contract for one run.
// It is created empty at run start, appended to throughout the run and
// returned once at the end. Success implies no fatal error was recorded.
type ApplicationResult struct {
	URL                string      `json:"url"`
	FinalURL           string      `json:"final_url"`
	Success            bool        `json:"success"`
	FieldsAnalyzed     int         `json:"fields_analyzed"`
	FieldsFilled       int         `json:"fields_filled"`
	FieldsFailed       int         `json:"fields_failed"`
	FormFields         []FormField `json:"form_fields"`
	Errors             []string    `json:"errors"`
	NavigationSteps    []string    `json:"navigation_steps"`
	ServiceUsed        string      `json:"service_used"`
	WorkdaySpecialized bool        `json:"workday_specialized"`
}

// AddError records a non-fatal or fatal problem on the result.
func (r *ApplicationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddStep records a completed navigation or flow step label.
func (r *ApplicationResult) AddStep(step string) {
	r.NavigationSteps = append(r.NavigationSteps, step)
}

// WorkdayApplicationResult is the specialized Workday flow's own result shape,
// translated into an ApplicationResult by the orchestrator.
type WorkdayApplicationResult struct {
	Success        bool     `json:"success"`
	StepsCompleted []string `json:"steps_completed"`
	Errors         []string `json:"errors"`
	FinalURL       string   `json:"final_url"`
}

// ApplicationRun is a persisted record of one orchestrator run.
type ApplicationRun struct {
	ID             string    `json:"id"`
	UserID         int       `json:"user_id"`
	URL            string    `json:"url"`
	FinalURL       string    `json:"final_url"`
	Success        bool      `json:"success"`
	ServiceUsed    string    `json:"service_used"`
	FieldsAnalyzed int       `json:"fields_analyzed"`
	FieldsFilled   int       `json:"fields_filled"`
	FieldsFailed   int       `json:"fields_failed"`
	Errors         []string  `json:"errors"`
	Steps          []string  `json:"steps"`
	CreatedAt      time.Time `json:"created_at"`
}
