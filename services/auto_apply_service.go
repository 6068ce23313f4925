package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"autoapply/models"
)

// Confidence thresholds for field filling. Generic suggestions below the
// default threshold are skipped; Workday selector-table matches are
// deterministic and carry a high fixed confidence.
const (
	DefaultConfidenceThreshold = 0.3
	WorkdayFieldConfidence     = 0.9
)

// workdayDirectFields maps Workday automation ids straight to profile values,
// bypassing the LLM for fields the selector table already knows.
type workdayDirectField struct {
	selector Selector
	label    string
	value    func(p *models.UserProfile) string
}

func workdayDirectFields() []workdayDirectField {
	return []workdayDirectField{
		{CSS("input[data-automation-id='legalNameSection_firstName']"), "First Name", func(p *models.UserProfile) string { return p.FirstName }},
		{CSS("input[data-automation-id='legalNameSection_lastName']"), "Last Name", func(p *models.UserProfile) string { return p.LastName }},
		{CSS("input[data-automation-id='email']"), "Email", func(p *models.UserProfile) string { return p.Email }},
		{CSS("input[data-automation-id='phone-number']"), "Phone", func(p *models.UserProfile) string { return p.Phone }},
		{CSS("input[data-automation-id='addressSection_addressLine1']"), "Address", func(p *models.UserProfile) string { return p.Address }},
		{CSS("input[data-automation-id='addressSection_city']"), "City", func(p *models.UserProfile) string { return p.City }},
		{CSS("input[data-automation-id='addressSection_postalCode']"), "Postal Code", func(p *models.UserProfile) string { return p.ZipCode }},
	}
}

// AutoApplyService is the orchestrator for one application attempt. It owns
// the browser session, dispatches Workday portals to the specialized flow and
// runs the generic navigate/analyze/fill pipeline for everything else.
type AutoApplyService struct {
	profile        *models.UserProfile
	llm            LLMClient
	browserFactory BrowserFactory
	gate           ReviewGate

	// ConfidenceThreshold gates which suggestions are attempted.
	ConfidenceThreshold float64
	// Headless controls the browser mode; review runs force a visible window.
	Headless bool
	// WorkdayAccountPassword is forwarded to the Workday flow for portals
	// that require an account.
	WorkdayAccountPassword string
	// ResumePath is forwarded to the Workday flow for resume upload.
	ResumePath string

	// newNav and newWorkday build the per-run collaborators; tests
	// substitute ones with zero delays.
	newNav     func(Page) *NavigationService
	newWorkday func(Page, *models.UserProfile) *WorkdayApplyService
}

func NewAutoApplyService(profile *models.UserProfile, llm LLMClient, factory BrowserFactory, gate ReviewGate) *AutoApplyService {
	profile.Normalize()
	if gate == nil {
		gate = AutoApproveGate{}
	}
	return &AutoApplyService{
		profile:             profile,
		llm:                 llm,
		browserFactory:      factory,
		gate:                gate,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		Headless:            true,
		newNav:              NewNavigationService,
		newWorkday:          NewWorkdayApplyService,
	}
}

// AutoFillApplication runs one application attempt end to end. It always
// returns a result and never panics out: any driver or analysis failure is
// recorded on the result with Success=false.
func (s *AutoApplyService) AutoFillApplication(ctx context.Context, jobURL string, reviewBeforeSubmit bool) (result *models.ApplicationResult) {
	result = &models.ApplicationResult{
		URL:         jobURL,
		FinalURL:    jobURL,
		ServiceUsed: models.ServiceAutoApply,
		FormFields:  []models.FormField{},
		Errors:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic during application run: %v", r)
			result.Success = false
			result.AddError(fmt.Sprintf("Unexpected failure: %v", r))
		}
	}()

	log.Printf("Starting auto-fill for: %s", jobURL)

	// Workday portals get the specialized wizard flow. A step failure there
	// is final; the generic pipeline takes over only when the specialized
	// flow crashes.
	if ClassifyPortal(jobURL, "") == PortalWorkday {
		if done := s.runWorkdayFlow(jobURL, reviewBeforeSubmit, result); done {
			return result
		}
		log.Println("Workday flow crashed, falling back to generic flow")
	}

	s.runGenericFlow(ctx, jobURL, reviewBeforeSubmit, result)
	return result
}

// runWorkdayFlow executes the specialized flow and reports whether the run is
// finished. A false return means the flow crashed mid-run and the generic
// pipeline should take over; a clean step failure is final.
func (s *AutoApplyService) runWorkdayFlow(jobURL string, reviewBeforeSubmit bool, result *models.ApplicationResult) bool {
	browser, page, err := s.openPage(reviewBeforeSubmit)
	if err != nil {
		result.AddError(fmt.Sprintf("Failed to start browser: %v", err))
		return true
	}
	defer browser.Close()

	workday := s.newWorkday(page, s.profile)
	workday.AccountPassword = s.WorkdayAccountPassword
	workday.ResumePath = s.ResumePath

	wdResult := applyWorkday(workday, jobURL)
	if wdResult == nil {
		return false
	}

	result.ServiceUsed = models.ServiceWorkdayApply
	result.WorkdaySpecialized = true
	result.FinalURL = wdResult.FinalURL
	result.NavigationSteps = append(result.NavigationSteps, wdResult.StepsCompleted...)
	result.Errors = append(result.Errors, wdResult.Errors...)

	if !wdResult.Success {
		// A failed required step ends the run. The gate still gets the
		// summary while the browser is open so a watching user can see
		// where the wizard stopped.
		if reviewBeforeSubmit {
			s.gate.Confirm(s.reviewSummary(result))
		}
		return true
	}

	if reviewBeforeSubmit && !s.gate.Confirm(s.reviewSummary(result)) {
		result.AddError("Run cancelled at review")
		return true
	}

	result.Success = true
	return true
}

// applyWorkday converts a crash inside the specialized flow into a nil result
// so the caller can hand the run to the generic pipeline.
func applyWorkday(workday *WorkdayApplyService, jobURL string) (res *models.WorkdayApplicationResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Workday flow crashed: %v", r)
			res = nil
		}
	}()
	return workday.Apply(jobURL)
}

// runGenericFlow is the navigate/analyze/fill pipeline for non-Workday pages.
func (s *AutoApplyService) runGenericFlow(ctx context.Context, jobURL string, reviewBeforeSubmit bool, result *models.ApplicationResult) {
	result.ServiceUsed = models.ServiceAutoApply

	browser, page, err := s.openPage(reviewBeforeSubmit)
	if err != nil {
		result.AddError(fmt.Sprintf("Failed to start browser: %v", err))
		return
	}
	defer browser.Close()

	ok := s.analyzeAndFill(ctx, jobURL, page, result)

	// The gate sees the summary on failure too, while the browser is still
	// open for inspection; cancelling only applies to a run that would
	// otherwise succeed.
	if reviewBeforeSubmit {
		confirmed := s.gate.Confirm(s.reviewSummary(result))
		if ok && !confirmed {
			result.AddError("Run cancelled at review")
			return
		}
	}
	result.Success = ok
}

// analyzeAndFill runs navigate/analyze/fill on an open page and reports
// whether the run reached a fillable form. Fatal conditions are recorded on
// the result before returning false.
func (s *AutoApplyService) analyzeAndFill(ctx context.Context, jobURL string, page Page, result *models.ApplicationResult) bool {
	nav := s.newNav(page)
	reached, finalURL, err := nav.NavigateToApplicationForm(jobURL)
	if err != nil {
		result.AddError(fmt.Sprintf("Navigation failed: %v", err))
		return false
	}
	result.FinalURL = finalURL
	if reached {
		result.AddStep("Navigated to application form")
	} else {
		result.AddStep("Proceeding with original page")
	}

	if len(page.FindAll(CSS("input, select, textarea"))) == 0 {
		result.AddError("No form elements found on the application page")
		return false
	}

	fields := NewFormAnalyzer(s.llm).Analyze(ctx, page.Content(), s.profile)
	if len(fields) == 0 {
		result.AddError("LLM could not analyze form fields")
		return false
	}

	// A portal can redirect into Workday after the apply click. Merge in
	// selector-table matches so known fields win over LLM guesses. The
	// specialized flag stays false: the wizard service did not run here.
	if containsWorkdayMarker(page.CurrentURL()) {
		fields = mergeWorkdayFields(page, s.profile, fields)
	}

	result.FormFields = fields
	result.FieldsAnalyzed = len(fields)

	filler := NewFieldFiller()
	for _, field := range fields {
		if field.Confidence < s.ConfidenceThreshold {
			log.Printf("Skipping low-confidence field %q (%.2f)", field.Label, field.Confidence)
			continue
		}
		el, ok := locateField(page, field)
		if !ok {
			log.Printf("Could not locate field %q on page", field.Label)
			result.FieldsFailed++
			continue
		}
		if filler.Fill(el, field.SuggestedValue, field.ElementType) {
			result.FieldsFilled++
		} else {
			result.FieldsFailed++
		}
	}
	log.Printf("Filled %d fields, %d failed", result.FieldsFilled, result.FieldsFailed)

	if containsWorkdayMarker(page.CurrentURL()) {
		if el, ok := FindFirstMatching(page, wdNextButtons); ok {
			if err := el.Click(); err == nil {
				result.AddStep("Clicked next on Workday page")
			}
		}
	}

	result.FinalURL = page.CurrentURL()
	return true
}

// openPage starts a browser session. Review runs force a visible window so
// the user can inspect the form.
func (s *AutoApplyService) openPage(reviewBeforeSubmit bool) (Browser, Page, error) {
	headless := s.Headless && !reviewBeforeSubmit
	browser, err := s.browserFactory(headless)
	if err != nil {
		return nil, nil, err
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		return nil, nil, err
	}
	return browser, page, nil
}

func (s *AutoApplyService) reviewSummary(result *models.ApplicationResult) ReviewSummary {
	return ReviewSummary{
		URL:             result.URL,
		FinalURL:        result.FinalURL,
		FieldsAnalyzed:  result.FieldsAnalyzed,
		FieldsFilled:    result.FieldsFilled,
		FieldsFailed:    result.FieldsFailed,
		NavigationSteps: result.NavigationSteps,
		Errors:          result.Errors,
	}
}

// mergeWorkdayFields adds selector-table matches for fields the LLM missed
// and upgrades matching suggestions to the fixed Workday confidence.
func mergeWorkdayFields(page Page, profile *models.UserProfile, fields []models.FormField) []models.FormField {
	for _, direct := range workdayDirectFields() {
		value := direct.value(profile)
		if value == "" {
			continue
		}
		el, ok := page.Find(direct.selector)
		if !ok {
			continue
		}

		elementID := el.Attribute("id")
		elementName := el.Attribute("name")
		if existing := findFieldByIdentity(fields, elementID, elementName); existing != nil {
			existing.SuggestedValue = value
			existing.Confidence = WorkdayFieldConfidence
			continue
		}

		fieldType := models.FieldTypeText
		if el.TagName() == "select" {
			fieldType = models.FieldTypeSelect
		}
		fields = append(fields, models.FormField{
			ElementID:      elementID,
			ElementName:    elementName,
			ElementType:    fieldType,
			Label:          direct.label,
			SuggestedValue: value,
			Confidence:     WorkdayFieldConfidence,
		})
	}
	return fields
}

func findFieldByIdentity(fields []models.FormField, id, name string) *models.FormField {
	for i := range fields {
		if id != "" && fields[i].ElementID == id {
			return &fields[i]
		}
		if name != "" && fields[i].ElementName == name {
			return &fields[i]
		}
	}
	return nil
}

// locateField resolves an analyzed field back to a live element, trying id,
// name, placeholder and finally label-proximity XPath.
func locateField(page Page, field models.FormField) (Element, bool) {
	var chain []Selector

	if field.ElementID != "" {
		chain = append(chain, ID(field.ElementID))
	}
	if field.ElementName != "" {
		chain = append(chain, Name(field.ElementName))
	}
	if field.Placeholder != "" {
		chain = append(chain,
			XPath(fmt.Sprintf("//input[@placeholder='%s']", field.Placeholder)),
			XPath(fmt.Sprintf("//textarea[@placeholder='%s']", field.Placeholder)),
		)
	}
	if label := strings.TrimSpace(field.Label); label != "" {
		chain = append(chain,
			XPath(fmt.Sprintf("//label[contains(text(), '%s')]/following-sibling::input", label)),
			XPath(fmt.Sprintf("//label[contains(text(), '%s')]/..//input", label)),
			XPath(fmt.Sprintf("//input[preceding::label[contains(text(), '%s')]]", label)),
			XPath(fmt.Sprintf("//label[contains(text(), '%s')]/following-sibling::textarea", label)),
			XPath(fmt.Sprintf("//label[contains(text(), '%s')]/..//textarea", label)),
			XPath(fmt.Sprintf("//label[contains(text(), '%s')]/..//select", label)),
		)
	}

	return FindFirstMatching(page, chain)
}
