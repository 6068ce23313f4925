package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNav(page *fakePage) *NavigationService {
	nav := NewNavigationService(page)
	nav.LoadDelay = 0
	nav.ClickDelay = 0
	nav.TransitionDelay = 0
	return nav
}

func TestNavigation_NoApplyButtonKeepsOriginalURL(t *testing.T) {
	page := newFakePage()
	nav := newTestNav(page)

	reached, finalURL, err := nav.NavigateToApplicationForm("https://example.com/job/123")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, "https://example.com/job/123", finalURL)
}

func TestNavigation_DriverFailureIsAnError(t *testing.T) {
	page := newFakePage()
	page.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	nav := newTestNav(page)

	reached, finalURL, err := nav.NavigateToApplicationForm("https://example.com/job/123")

	assert.Error(t, err)
	assert.False(t, reached)
	assert.Equal(t, "https://example.com/job/123", finalURL)
}

func TestNavigation_ClicksApplyBySelector(t *testing.T) {
	page := newFakePage()
	page.content = "<html>application form resume</html>"
	apply := page.add(CSS(".jobs-apply-button"), newFakeElement("button"))
	nav := newTestNav(page)

	reached, _, err := nav.NavigateToApplicationForm("https://linkedin.com/jobs/view/1")

	assert.NoError(t, err)
	assert.True(t, reached)
	assert.Equal(t, 1, apply.clicks)
}

func TestNavigation_HiddenApplyButtonIsSkipped(t *testing.T) {
	page := newFakePage()
	hidden := newFakeElement("button")
	hidden.visible = false
	page.add(CSS(".jobs-apply-button"), hidden)
	nav := newTestNav(page)

	reached, _, err := nav.NavigateToApplicationForm("https://linkedin.com/jobs/view/1")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, 0, hidden.clicks)
}

func TestNavigation_WorkdayPortalPrefersManualApply(t *testing.T) {
	page := newFakePage()
	page.add(CSS(".jobs-apply-button"), newFakeElement("button"))
	manual := page.add(CSS("a[data-automation-id='applyManually']"), newFakeElement("a"))

	// The apply click lands on a Workday-hosted page.
	page.url = "https://company.wd1.myworkdayjobs.com/careers/job/1"
	nav := newTestNav(page)

	reached, _, err := nav.NavigateToApplicationForm("https://company.wd1.myworkdayjobs.com/careers/job/1")

	assert.NoError(t, err)
	assert.True(t, reached)
	assert.Equal(t, 1, manual.clicks)
}
