package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"autoapply/models"
)

func newTestEngine(page *fakePage, llm LLMClient) *AutoApplyService {
	profile := &models.UserProfile{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	}
	engine := NewAutoApplyService(profile, llm, fakeFactory(page), AutoApproveGate{})
	engine.newNav = func(p Page) *NavigationService {
		nav := NewNavigationService(p)
		nav.LoadDelay = 0
		nav.ClickDelay = 0
		nav.TransitionDelay = 0
		return nav
	}
	return engine
}

func addFormElements(page *fakePage, count int) {
	page.content = analyzerTestHTML
	for i := 0; i < count; i++ {
		page.add(CSS("input, select, textarea"), newFakeElement("input"))
	}
}

func TestAutoApply_LowConfidenceFieldsAreSkipped(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 5)
	f1 := page.add(ID("f1"), newFakeElement("input"))
	f2 := page.add(ID("f2"), newFakeElement("input"))
	f3 := page.add(ID("f3"), newFakeElement("input"))
	low1 := page.add(ID("low1"), newFakeElement("input"))
	low2 := page.add(ID("low2"), newFakeElement("input"))

	llm := &fakeLLM{response: `[
		{"element_id": "f1", "element_type": "text", "label": "First Name", "suggested_value": "Jane", "confidence": 0.9},
		{"element_id": "f2", "element_type": "text", "label": "Last Name", "suggested_value": "Doe", "confidence": 0.8},
		{"element_id": "f3", "element_type": "email", "label": "Email", "suggested_value": "jane@example.com", "confidence": 0.85},
		{"element_id": "low1", "element_type": "text", "label": "Desired Salary", "suggested_value": "100000", "confidence": 0.1},
		{"element_id": "low2", "element_type": "text", "label": "Referral", "suggested_value": "none", "confidence": 0.2}
	]`}

	engine := newTestEngine(page, llm)
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.FieldsAnalyzed)
	assert.Equal(t, 3, result.FieldsFilled+result.FieldsFailed)
	assert.Equal(t, 3, result.FieldsFilled)

	assert.NotEmpty(t, f1.typed)
	assert.NotEmpty(t, f2.typed)
	assert.NotEmpty(t, f3.typed)
	assert.Empty(t, low1.typed, "low-confidence field must never reach the filler")
	assert.Empty(t, low2.typed, "low-confidence field must never reach the filler")
}

func TestAutoApply_UnlocatableFieldCountsAsFailed(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 2)
	page.add(ID("present"), newFakeElement("input"))

	llm := &fakeLLM{response: `[
		{"element_id": "present", "element_type": "text", "label": "First Name", "suggested_value": "Jane", "confidence": 0.9},
		{"element_id": "ghost", "element_type": "text", "label": "Middle Name", "suggested_value": "Q", "confidence": 0.9}
	]`}

	engine := newTestEngine(page, llm)
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.Equal(t, 2, result.FieldsAnalyzed)
	assert.Equal(t, 1, result.FieldsFilled)
	assert.Equal(t, 1, result.FieldsFailed)
}

func TestAutoApply_DriverFailureReturnsResult(t *testing.T) {
	page := newFakePage()
	page.navErr = errors.New("browser crashed")

	engine := newTestEngine(page, &fakeLLM{response: "[]"})
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
	assert.Equal(t, "https://example.com/job/1", result.URL)
}

func TestAutoApply_BrowserStartFailureReturnsResult(t *testing.T) {
	profile := &models.UserProfile{FirstName: "Jane"}
	factory := func(headless bool) (Browser, error) {
		return nil, errors.New("chromium not installed")
	}
	engine := NewAutoApplyService(profile, &fakeLLM{}, factory, AutoApproveGate{})

	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

func TestAutoApply_NoFormElementsIsFatal(t *testing.T) {
	page := newFakePage()

	llm := &fakeLLM{response: "[]"}
	engine := newTestEngine(page, llm)
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "No form elements found on the application page")
	assert.Equal(t, 0, llm.calls, "analysis must not run without form elements")
}

func TestAutoApply_EmptyAnalysisIsFatal(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 3)

	engine := newTestEngine(page, &fakeLLM{response: "no fields here"})
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", false)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "LLM could not analyze form fields")
}

func TestAutoApply_ReviewGateCancelStopsRun(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 1)
	page.add(ID("f1"), newFakeElement("input"))

	llm := &fakeLLM{response: `[{"element_id": "f1", "element_type": "text", "label": "First Name", "suggested_value": "Jane", "confidence": 0.9}]`}

	engine := newTestEngine(page, llm)
	engine.gate = denyingGate{}
	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", true)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "Run cancelled at review")
	assert.Equal(t, 1, result.FieldsFilled, "fields are filled before the review pause")
}

func TestAutoApply_WorkdayStepFailureIsFinal(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 2)
	page.add(wdFirstName, newFakeElement("input"))
	page.add(wdLastName, newFakeElement("input"))

	llm := &fakeLLM{response: "[]"}
	gate := &recordingGate{confirm: true}
	engine := newTestEngine(page, llm)
	engine.gate = gate
	engine.newWorkday = newZeroDelayWorkday

	result := engine.AutoFillApplication(context.Background(), "https://acme.myworkdayjobs.com/job/9", true)

	assert.False(t, result.Success)
	assert.Equal(t, models.ServiceWorkdayApply, result.ServiceUsed)
	assert.Contains(t, result.Errors[0], "Step basic information failed")
	assert.NotContains(t, result.Errors, "Run cancelled at review")
	assert.Equal(t, 0, llm.calls, "a failed wizard run must not be retried through the generic pipeline")

	if assert.Len(t, gate.summaries, 1, "the gate surfaces the summary on failure too") {
		assert.Contains(t, gate.summaries[0].Errors[0], "Step basic information failed")
	}
}

func TestAutoApply_WorkdayCrashFallsBackToGeneric(t *testing.T) {
	page := newFakePage()
	addFormElements(page, 2)
	f1 := page.add(ID("f1"), newFakeElement("input"))
	merged := newFakeElement("input")
	merged.attrs["id"] = "wd-first"
	page.add(CSS("input[data-automation-id='legalNameSection_firstName']"), merged)
	page.add(ID("wd-first"), merged)

	llm := &fakeLLM{response: `[{"element_id": "f1", "element_type": "text", "label": "Email", "suggested_value": "jane@example.com", "confidence": 0.9}]`}
	engine := newTestEngine(page, llm)
	engine.newWorkday = func(p Page, profile *models.UserProfile) *WorkdayApplyService {
		svc := newZeroDelayWorkday(crashingPage{}, profile)
		return svc
	}

	result := engine.AutoFillApplication(context.Background(), "https://acme.myworkdayjobs.com/job/9", false)

	assert.True(t, result.Success)
	assert.Equal(t, models.ServiceAutoApply, result.ServiceUsed)
	assert.Equal(t, 1, llm.calls)
	assert.NotEmpty(t, f1.typed)
	assert.Contains(t, merged.typed, "Jane", "selector-table fields are merged into the generic pass")
	assert.False(t, result.WorkdaySpecialized, "the wizard service never handled this run")
}

func TestAutoApply_ReviewGateSeesFailedRun(t *testing.T) {
	page := newFakePage()

	gate := &recordingGate{confirm: true}
	engine := newTestEngine(page, &fakeLLM{response: "[]"})
	engine.gate = gate

	result := engine.AutoFillApplication(context.Background(), "https://example.com/job/1", true)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "No form elements found on the application page")
	assert.NotContains(t, result.Errors, "Run cancelled at review")
	if assert.Len(t, gate.summaries, 1) {
		assert.Contains(t, gate.summaries[0].Errors, "No form elements found on the application page")
	}
}

func newZeroDelayWorkday(page Page, profile *models.UserProfile) *WorkdayApplyService {
	svc := NewWorkdayApplyService(page, profile)
	svc.StepTimeout = 0
	svc.ProbeTimeout = 0
	svc.ActionDelay = 0
	svc.filler.SettleDelay = 0
	return svc
}

// crashingPage simulates the driver dying mid-run.
type crashingPage struct{ *fakePage }

func (crashingPage) Navigate(string) error { panic("driver connection lost") }

type denyingGate struct{}

func (denyingGate) Confirm(ReviewSummary) bool { return false }

type recordingGate struct {
	confirm   bool
	summaries []ReviewSummary
}

func (g *recordingGate) Confirm(s ReviewSummary) bool {
	g.summaries = append(g.summaries, s)
	return g.confirm
}
