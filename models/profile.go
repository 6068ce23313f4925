package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// UserProfile holds all personal and professional information used to fill
// job application forms. It is built once per session (manually, from a parsed
// resume, or loaded from a saved JSON file) and treated as read-only during a run.
type UserProfile struct {
	// Personal information
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`

	// Professional information
	CurrentTitle      string `json:"current_title"`
	YearsOfExperience string `json:"years_of_experience"`
	LinkedinURL       string `json:"linkedin_url"`
	PortfolioURL      string `json:"portfolio_url"`
	GithubURL         string `json:"github_url"`

	// Education
	EducationLevel string `json:"education_level"`
	University     string `json:"university"`
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduation_year"`
	GPA            string `json:"gpa"`

	// Skills and experience
	Skills              []string `json:"skills"`
	ResumeText          string   `json:"resume_text"`
	CoverLetterTemplate string   `json:"cover_letter_template"`

	// Work authorization
	WorkAuthorized    bool   `json:"work_authorized"`
	VisaStatus        string `json:"visa_status"`
	SecurityClearance string `json:"security_clearance"`

	// Preferences
	SalaryExpectation string `json:"salary_expectation"`
	NoticePeriod      string `json:"notice_period"`
	WillingToRelocate bool   `json:"willing_to_relocate"`

	// Optional attributes consumed by the Workday flow
	Suffix           string `json:"suffix,omitempty"`
	PhoneType        string `json:"phone_type,omitempty"`
	Gender           string `json:"gender,omitempty"`
	HispanicOrLatino string `json:"hispanic_or_latino,omitempty"`
	Ethnicity        string `json:"ethnicity,omitempty"`
	VeteranStatus    string `json:"veteran_status,omitempty"`
	ResumeFilePath   string `json:"resume_file_path,omitempty"`
}

// Normalize applies derived-field rules. FullName is synthesized from the name
// parts when absent, and the skills slice is never left nil.
func (p *UserProfile) Normalize() {
	if p.FullName == "" && p.FirstName != "" && p.LastName != "" {
		p.FullName = fmt.Sprintf("%s %s", p.FirstName, p.LastName)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
}

// DisplayLocation returns a "City, State" string for logging and summaries.
func (p *UserProfile) DisplayLocation() string {
	parts := []string{}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.State != "" {
		parts = append(parts, p.State)
	}
	return strings.Join(parts, ", ")
}

// SaveProfile writes the profile to a JSON file.
func SaveProfile(profile *UserProfile, filename string) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling profile: %v", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("error saving profile: %v", err)
	}
	return nil
}

// LoadProfile reads a profile from a JSON file and normalizes derived fields.
func LoadProfile(filename string) (*UserProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading profile: %v", err)
	}
	var profile UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("error parsing profile: %v", err)
	}
	profile.Normalize()
	return &profile, nil
}
