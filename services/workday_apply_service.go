package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"autoapply/models"
)

// automationID builds a selector on Workday's stable data-automation-id
// attribute, which survives the portal's obfuscated class names.
func automationID(id string) Selector {
	return CSS(fmt.Sprintf("[data-automation-id='%s']", id))
}

// Selectors for Workday's entry and account screens.
var (
	wdApplyButton        = []Selector{automationID("adventureButton"), CSS("a[data-automation-id='adventureButton']")}
	wdApplyManually      = []Selector{CSS("a[data-automation-id='applyManually']"), CSS("button[data-automation-id='applyManually']")}
	wdCreateAccountLink  = automationID("createAccountLink")
	wdSignInLink         = automationID("signInLink")
	wdEmailInput         = CSS("input[data-automation-id='email']")
	wdPasswordInput      = CSS("input[data-automation-id='password']")
	wdVerifyPassword     = CSS("input[data-automation-id='verifyPassword']")
	wdAccountCheckbox    = CSS("input[data-automation-id='createAccountCheckbox']")
	wdCreateAccountBtn   = []Selector{CSS("button[data-automation-id='createAccountSubmitButton']"), CSS("div[data-automation-id='click_filter'] button")}
	wdSignInBtn          = []Selector{CSS("button[data-automation-id='signInSubmitButton']"), CSS("div[data-automation-id='click_filter'] button")}
)

// Selectors for the basic information page.
var (
	wdFirstName     = CSS("input[data-automation-id='legalNameSection_firstName']")
	wdLastName      = CSS("input[data-automation-id='legalNameSection_lastName']")
	wdSuffix        = CSS("button[data-automation-id='legalNameSection_social']")
	wdHowDidYouHear = CSS("button[data-automation-id='sourceDropdown']")
	wdCountry       = CSS("button[data-automation-id='countryDropdown']")
	wdAddressLine1  = CSS("input[data-automation-id='addressSection_addressLine1']")
	wdCity          = CSS("input[data-automation-id='addressSection_city']")
	wdState         = CSS("button[data-automation-id='addressSection_countryRegion']")
	wdPostalCode    = CSS("input[data-automation-id='addressSection_postalCode']")
	wdPhoneType     = CSS("button[data-automation-id='phone-device-type']")
	wdPhoneNumber   = CSS("input[data-automation-id='phone-number']")
)

// Selectors for the experience and education page.
var (
	wdExperiencePage   = CSS("div[data-automation-id='myExperiencePage']")
	wdResumeUpload     = CSS("input[data-automation-id='file-upload-input-ref']")
	wdAddEducation     = CSS("div[data-automation-id='educationSection'] button[data-automation-id='add-button']")
	wdSchoolName       = CSS("input[data-automation-id='school']")
	wdDegreeDropdown   = CSS("button[data-automation-id='degree']")
	wdFieldOfStudy     = CSS("div[data-automation-id='formField-field-of-study'] input")
	wdGPA              = CSS("input[data-automation-id='gpa']")
	wdGraduationYear   = CSS("input[data-automation-id='dateSectionYear-input']")
	wdLinkedinQuestion = CSS("input[data-automation-id='linkedinQuestion']")
	wdWebsiteSlot1     = CSS("div[data-automation-id='websitePanelSet-1'] input[data-automation-id='website']")
	wdWebsiteSlot2     = CSS("div[data-automation-id='websitePanelSet-2'] input[data-automation-id='website']")
)

// Selectors for the disclosure pages.
var (
	wdVoluntaryPage      = CSS("div[data-automation-id='voluntaryDisclosuresPage']")
	wdGenderDropdown     = CSS("button[data-automation-id='gender']")
	wdHispanicDropdown   = CSS("button[data-automation-id='hispanicOrLatino']")
	wdEthnicityDropdown  = CSS("button[data-automation-id='ethnicityDropdown']")
	wdVeteranDropdown    = CSS("button[data-automation-id='veteranStatus']")
	wdAgreementCheckbox  = CSS("input[data-automation-id='agreementCheckbox']")
	wdSelfIdentPage      = CSS("div[data-automation-id='selfIdentificationPage']")
	wdSelfIdentName      = CSS("input[data-automation-id='name']")
	wdDateIcon           = CSS("div[data-automation-id='dateIcon']")
	wdDateToday          = CSS("button[data-automation-id='datePickerSelectedToday']")
	wdDisabilityDecline  = CSS("input[data-automation-id*='disability']")
)

// wdNextButtons advance the wizard between pages.
var wdNextButtons = []Selector{
	CSS("button[data-automation-id='bottom-navigation-next-button']"),
	CSS("button[data-automation-id='pageFooterNextButton']"),
	CSS("button[aria-label='Next']"),
	CSS("button[aria-label='Continue']"),
}

// wdSubmitButton is the final submission control. The engine never clicks
// it; submission stays with the human.
var wdSubmitButton = CSS("button[data-automation-id='bottom-navigation-submit-button']")

// Answer defaults for demographic questions when the profile leaves them
// blank. Applications must never volunteer data the user did not provide.
const (
	defaultDisclosureAnswer = "Prefer not to answer"
	defaultVeteranAnswer    = "I am not a protected veteran"
)

// WorkdayApplyService drives Workday's multi-page application wizard with its
// data-automation-id selectors instead of LLM analysis. The page is owned by
// the orchestrator; this service only drives it.
type WorkdayApplyService struct {
	page    Page
	filler  *FieldFiller
	profile *models.UserProfile

	// AccountPassword is used when the portal forces account creation.
	AccountPassword string
	// ResumePath, when it points at an existing local file, is uploaded on
	// the experience page.
	ResumePath string

	// StepTimeout bounds the wait for a step's marker element; an absent
	// marker means the portal skipped that wizard page.
	StepTimeout time.Duration
	// ProbeTimeout bounds existence checks for optional fields inside a step.
	ProbeTimeout time.Duration
	// ActionDelay paces interactions so the wizard's client-side validation
	// keeps up. Tests set it to zero.
	ActionDelay time.Duration
}

func NewWorkdayApplyService(page Page, profile *models.UserProfile) *WorkdayApplyService {
	return &WorkdayApplyService{
		page:         page,
		filler:       NewFieldFiller(),
		profile:      profile,
		StepTimeout:  10 * time.Second,
		ProbeTimeout: 2 * time.Second,
		ActionDelay:  time.Second,
	}
}

// workdayStep is one wizard page. The marker gates execution: when it never
// appears the step is skipped, because Workday tenants enable different page
// sets per job posting.
type workdayStep struct {
	name    string
	label   string
	markers []Selector
	run     func(s *WorkdayApplyService) error
}

func workdaySteps() []workdayStep {
	return []workdayStep{
		{
			name:    "application method choice",
			label:   "Selected application method",
			markers: append(append([]Selector{}, wdApplyManually...), wdApplyButton...),
			run:     (*WorkdayApplyService).chooseApplicationMethod,
		},
		{
			name:    "account creation/login",
			label:   "Handled account creation/login",
			markers: []Selector{wdCreateAccountLink, wdSignInLink, wdEmailInput},
			run:     (*WorkdayApplyService).handleAccount,
		},
		{
			name:    "basic information",
			label:   "Filled basic information",
			markers: []Selector{wdFirstName},
			run:     (*WorkdayApplyService).fillBasicInformation,
		},
		{
			name:    "experience and education",
			label:   "Filled experience information",
			markers: []Selector{wdExperiencePage},
			run:     (*WorkdayApplyService).fillExperience,
		},
		{
			name:    "voluntary disclosures",
			label:   "Filled voluntary disclosures",
			markers: []Selector{wdVoluntaryPage},
			run:     (*WorkdayApplyService).fillVoluntaryDisclosures,
		},
		{
			name:    "self-identification",
			label:   "Filled self-identification",
			markers: []Selector{wdSelfIdentPage},
			run:     (*WorkdayApplyService).fillSelfIdentification,
		},
	}
}

// Apply navigates to the job posting and walks the wizard. Steps whose marker
// never appears are skipped; a failure inside an executed step ends the run
// with Success=false and the accumulated errors.
func (s *WorkdayApplyService) Apply(jobURL string) *models.WorkdayApplicationResult {
	result := &models.WorkdayApplicationResult{FinalURL: jobURL}

	log.Printf("Starting Workday application flow for: %s", jobURL)

	if err := s.page.Navigate(jobURL); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load job page: %v", err))
		return result
	}
	s.pause(s.ActionDelay)

	for _, step := range workdaySteps() {
		if !s.waitForAny(step.markers, s.StepTimeout) {
			log.Printf("Workday step %q not present, skipping", step.name)
			continue
		}
		log.Printf("Workday step: %s", step.name)
		if err := step.run(s); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Step %s failed: %v", step.name, err))
			result.FinalURL = s.page.CurrentURL()
			return result
		}
		result.StepsCompleted = append(result.StepsCompleted, step.label)
	}

	result.Success = true
	result.FinalURL = s.page.CurrentURL()
	log.Printf("Workday flow completed: %d steps", len(result.StepsCompleted))
	return result
}

// chooseApplicationMethod prefers "Apply Manually" over autofill-with-resume
// because the manual path exposes all fields deterministically. When the
// option is not on the landing page, the generic apply control is clicked and
// manual apply is retried on the next screen.
func (s *WorkdayApplyService) chooseApplicationMethod() error {
	if s.clickManualApply() {
		return nil
	}
	if el, ok := FindFirstMatching(s.page, wdApplyButton); ok {
		el.ScrollIntoView()
		if err := el.Click(); err == nil {
			s.pause(s.ActionDelay)
		}
		if s.clickManualApply() {
			return nil
		}
	}
	// Some tenants jump straight into the form after the apply button.
	return nil
}

func (s *WorkdayApplyService) clickManualApply() bool {
	el, ok := FindFirstMatching(s.page, wdApplyManually)
	if !ok {
		return false
	}
	el.ScrollIntoView()
	if err := el.Click(); err != nil {
		log.Printf("Could not click apply manually: %v", err)
		return false
	}
	s.pause(s.ActionDelay)
	return true
}

// handleAccount creates an account or signs in with profile credentials.
func (s *WorkdayApplyService) handleAccount() error {
	if s.selectorExists(wdCreateAccountLink) {
		s.safeClick(wdCreateAccountLink)
		s.pause(s.ActionDelay)
	}

	if !s.selectorExists(wdEmailInput) {
		return nil
	}

	if !s.safeFill(wdEmailInput, s.profile.Email) {
		return fmt.Errorf("could not fill account email")
	}
	password := s.AccountPassword
	if password == "" {
		// Generated per run; the account is disposable, the portal just
		// requires one.
		password = "Aa1!" + uuid.New().String()[:12]
		log.Printf("No account password configured, generated one for this run")
	}
	s.safeFill(wdPasswordInput, password)
	s.safeFill(wdVerifyPassword, password)
	if el, ok := s.page.Find(wdAccountCheckbox); ok && !el.Checked() {
		if err := el.Click(); err != nil {
			log.Printf("Could not tick account checkbox: %v", err)
		}
	}

	submit := wdCreateAccountBtn
	if !s.selectorExists(wdCreateAccountBtn[0]) && s.selectorExists(wdSignInBtn[0]) {
		submit = wdSignInBtn
	}
	if el, ok := FindFirstMatching(s.page, submit); ok {
		if err := el.Click(); err != nil {
			return fmt.Errorf("could not submit account form: %w", err)
		}
		s.pause(s.ActionDelay)
	}
	return nil
}

func (s *WorkdayApplyService) fillBasicInformation() error {
	p := s.profile

	// Optional dropdowns first; the page rejects Next until required fields
	// are set, so failures here are logged, not fatal.
	if s.selectorExists(wdHowDidYouHear) {
		s.selectDropdown(wdHowDidYouHear, "Company Website")
	}
	if p.Country != "" && s.selectorExists(wdCountry) {
		s.selectDropdown(wdCountry, p.Country)
	}

	if !s.safeFill(wdFirstName, p.FirstName) {
		return fmt.Errorf("could not fill first name")
	}
	if !s.safeFill(wdLastName, p.LastName) {
		return fmt.Errorf("could not fill last name")
	}
	if p.Suffix != "" && s.selectorExists(wdSuffix) {
		s.selectDropdown(wdSuffix, p.Suffix)
	}

	s.safeFill(wdAddressLine1, p.Address)
	s.safeFill(wdCity, p.City)
	if p.State != "" && s.selectorExists(wdState) {
		s.selectDropdown(wdState, p.State)
	}
	s.safeFill(wdPostalCode, p.ZipCode)

	phoneType := p.PhoneType
	if phoneType == "" {
		phoneType = "Mobile"
	}
	if s.selectorExists(wdPhoneType) {
		s.selectDropdown(wdPhoneType, phoneType)
	}
	s.safeFill(wdPhoneNumber, p.Phone)

	return s.advance()
}

func (s *WorkdayApplyService) fillExperience() error {
	p := s.profile

	if path := s.resumeFile(); path != "" {
		if el, ok := s.page.Find(wdResumeUpload); ok {
			if err := el.UploadFile(path); err != nil {
				log.Printf("Resume upload failed: %v", err)
			} else {
				log.Println("Uploaded resume")
				s.pause(s.ActionDelay)
			}
		}
	}

	if p.University != "" {
		s.fillEducation()
	}

	s.fillWebsiteSlots()

	return s.advance()
}

// fillEducation opens the education sub-form when needed and fills it.
func (s *WorkdayApplyService) fillEducation() {
	p := s.profile

	if !s.selectorExists(wdSchoolName) && s.selectorExists(wdAddEducation) {
		s.safeClick(wdAddEducation)
		s.pause(s.ActionDelay)
	}

	if s.selectorExists(wdSchoolName) {
		s.safeFill(wdSchoolName, p.University)
	}
	if p.EducationLevel != "" && s.selectorExists(wdDegreeDropdown) {
		s.selectDropdown(wdDegreeDropdown, p.EducationLevel)
	}
	if p.Degree != "" && s.selectorExists(wdFieldOfStudy) {
		// Field of study is a type-ahead that needs Enter twice: once to
		// pick the suggestion, once to commit it.
		if el, ok := s.page.Find(wdFieldOfStudy); ok {
			if err := el.Click(); err == nil {
				s.page.TypeKeys(p.Degree, 50*time.Millisecond)
				s.pause(s.ActionDelay)
				el.Press("Enter")
				s.pause(s.ActionDelay)
				el.Press("Enter")
			}
		}
	}
	if p.GPA != "" && s.selectorExists(wdGPA) {
		s.safeFill(wdGPA, p.GPA)
	}
	if p.GraduationYear != "" && s.selectorExists(wdGraduationYear) {
		s.safeFill(wdGraduationYear, p.GraduationYear)
	}
}

// fillWebsiteSlots fills LinkedIn and GitHub URLs. Newer tenants have a
// dedicated LinkedIn question; older ones expose numbered website panels.
func (s *WorkdayApplyService) fillWebsiteSlots() {
	p := s.profile

	if p.LinkedinURL != "" {
		if s.selectorExists(wdLinkedinQuestion) {
			s.safeFill(wdLinkedinQuestion, p.LinkedinURL)
		} else if s.selectorExists(wdWebsiteSlot1) {
			s.safeFill(wdWebsiteSlot1, p.LinkedinURL)
		}
	}
	if p.GithubURL != "" {
		if s.selectorExists(wdWebsiteSlot2) {
			s.safeFill(wdWebsiteSlot2, p.GithubURL)
		} else if p.LinkedinURL == "" && s.selectorExists(wdWebsiteSlot1) {
			s.safeFill(wdWebsiteSlot1, p.GithubURL)
		}
	}
}

func (s *WorkdayApplyService) fillVoluntaryDisclosures() error {
	p := s.profile

	if s.selectorExists(wdGenderDropdown) {
		s.selectDropdown(wdGenderDropdown, orDefault(p.Gender, defaultDisclosureAnswer))
	}
	if s.selectorExists(wdHispanicDropdown) {
		s.selectDropdown(wdHispanicDropdown, orDefault(p.HispanicOrLatino, defaultDisclosureAnswer))
	}
	if s.selectorExists(wdEthnicityDropdown) {
		s.selectDropdown(wdEthnicityDropdown, orDefault(p.Ethnicity, defaultDisclosureAnswer))
	}
	if s.selectorExists(wdVeteranDropdown) {
		s.selectDropdown(wdVeteranDropdown, orDefault(p.VeteranStatus, defaultVeteranAnswer))
	}
	if el, ok := s.page.Find(wdAgreementCheckbox); ok && !el.Checked() {
		if err := el.Click(); err != nil {
			log.Printf("Could not tick agreement checkbox: %v", err)
		}
	}

	return s.advance()
}

func (s *WorkdayApplyService) fillSelfIdentification() error {
	p := s.profile

	if s.selectorExists(wdSelfIdentName) {
		s.safeFill(wdSelfIdentName, p.FullName)
	}
	if s.selectorExists(wdDateIcon) {
		s.safeClick(wdDateIcon)
		s.pause(s.ActionDelay)
		s.safeClick(wdDateToday)
	}
	// Decline to answer the disability question unless the profile says
	// otherwise; the decline option is the last labelled checkbox.
	if elements := s.page.FindAll(wdDisabilityDecline); len(elements) > 0 {
		last := elements[len(elements)-1]
		if !last.Checked() {
			if err := last.Click(); err != nil {
				log.Printf("Could not answer disability question: %v", err)
			}
		}
	}

	// Terminal page. When only a submit control remains, stop here and
	// leave submission to the applicant.
	if _, ok := FindFirstMatching(s.page, wdNextButtons); !ok {
		if s.selectorExists(wdSubmitButton) {
			log.Println("Reached submit control, leaving submission to the applicant")
			return nil
		}
	}
	return s.advance()
}

// advance clicks the wizard's next/continue control.
func (s *WorkdayApplyService) advance() error {
	el, ok := FindFirstMatching(s.page, wdNextButtons)
	if !ok {
		return fmt.Errorf("no next button found")
	}
	el.ScrollIntoView()
	if err := el.Click(); err != nil {
		return fmt.Errorf("could not click next: %w", err)
	}
	s.pause(s.ActionDelay)
	return nil
}

// selectDropdown operates Workday's button-based dropdowns: open, type the
// value so the listbox filters, confirm with Enter.
func (s *WorkdayApplyService) selectDropdown(sel Selector, value string) bool {
	if value == "" {
		return false
	}
	el, ok := s.page.Find(sel)
	if !ok {
		return false
	}
	el.ScrollIntoView()
	if err := el.Click(); err != nil {
		log.Printf("Could not open dropdown %s: %v", sel, err)
		return false
	}
	s.pause(s.ActionDelay / 2)
	if err := s.page.TypeKeys(value, 50*time.Millisecond); err != nil {
		log.Printf("Could not type into dropdown %s: %v", sel, err)
		return false
	}
	s.pause(s.ActionDelay / 2)
	if err := s.page.PressKey("Enter"); err != nil {
		log.Printf("Could not confirm dropdown %s: %v", sel, err)
		return false
	}
	return true
}

func (s *WorkdayApplyService) selectorExists(sel Selector) bool {
	return s.page.WaitFor(sel, s.ProbeTimeout)
}

func (s *WorkdayApplyService) safeClick(sel Selector) bool {
	el, ok := s.page.Find(sel)
	if !ok {
		return false
	}
	el.ScrollIntoView()
	if err := el.Click(); err != nil {
		log.Printf("Could not click %s: %v", sel, err)
		return false
	}
	return true
}

func (s *WorkdayApplyService) safeFill(sel Selector, value string) bool {
	if value == "" {
		return false
	}
	el, ok := s.page.Find(sel)
	if !ok {
		return false
	}
	return s.filler.Fill(el, value, models.FieldTypeText)
}

func (s *WorkdayApplyService) waitForAny(selectors []Selector, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		for _, sel := range selectors {
			if s.page.WaitFor(sel, s.ProbeTimeout) {
				return true
			}
		}
		if time.Now().After(deadline) {
			return false
		}
	}
}

// resumeFile returns the resume path when it exists locally.
func (s *WorkdayApplyService) resumeFile() string {
	path := s.ResumePath
	if path == "" {
		path = s.profile.ResumeFilePath
	}
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Resume file not found at %s, skipping upload", path)
		return ""
	}
	return path
}

func (s *WorkdayApplyService) pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
