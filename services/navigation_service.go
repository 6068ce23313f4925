package services

import (
	"log"
	"strings"
	"time"
)

// applySelectors are site-specific apply controls, tried in priority order
// before falling back to text matching.
var applySelectors = []Selector{
	// LinkedIn
	CSS("button[aria-label*='Apply']"),
	CSS("button[data-control-name*='apply']"),
	CSS("a[data-control-name*='apply']"),
	CSS(".jobs-apply-button"),
	CSS(".jobs-s-apply"),

	// Indeed
	CSS("button[data-jk*='apply']"),
	CSS("a[title*='Apply']"),

	// Glassdoor
	CSS("button[data-test='apply-btn']"),
	CSS(".apply-btn"),

	// Generic
	CSS("button[class*='apply']"),
	CSS("a[class*='apply']"),
	CSS("input[value*='Apply']"),
	CSS("[role='button'][aria-label*='Apply']"),
}

// applyTextPatterns are common apply phrases matched case-insensitively
// across clickable element types.
var applyTextPatterns = []string{
	"Apply Now", "Apply", "Easy Apply", "Quick Apply",
	"Apply for this job", "Submit Application", "Apply Today",
}

// workdayManualApplySelectors locate the "Apply Manually" option that avoids
// forced account walls.
var workdayManualApplySelectors = []Selector{
	CSS("button[data-automation-id*='Apply_Manually']"),
	CSS("a[data-automation-id='applyManually']"),
	CSS("button[data-automation-id='applyManually']"),
	CSS("button[aria-label*='Apply Manually']"),
	CSS("button[data-automation-id*='manualApplication']"),
	XPath("//*[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'apply manually')]"),
	XPath("//*[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'manual application')]"),
}

// workdayProceedSelectors are generic continue controls used when manual
// apply is absent.
var workdayProceedSelectors = []Selector{
	CSS("button[data-automation-id*='continueButton']"),
	CSS("button[data-automation-id*='submitButton']"),
	CSS("button[aria-label*='Continue']"),
	CSS("button[aria-label*='Next']"),
	CSS("button[aria-label*='Proceed']"),
	XPath("//*[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'continue')]"),
	XPath("//*[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'next')]"),
	XPath("//*[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'proceed')]"),
}

// formIndicators are advisory keywords confirming arrival at a real form.
var formIndicators = []string{
	"form", "application", "apply", "submit", "personal information",
	"contact information", "resume", "cover letter",
}

// NavigationService drives the browser from a job listing to the actual
// application form. Its failures are non-fatal: the orchestrator continues
// with the best-known URL. Driver failures are returned as errors and are
// run-fatal.
type NavigationService struct {
	page Page

	// Delays between navigation actions. Exposed so tests run instantly.
	LoadDelay       time.Duration
	ClickDelay      time.Duration
	TransitionDelay time.Duration
}

func NewNavigationService(page Page) *NavigationService {
	return &NavigationService{
		page:            page,
		LoadDelay:       3 * time.Second,
		ClickDelay:      time.Second,
		TransitionDelay: 3 * time.Second,
	}
}

// NavigateToApplicationForm loads the listing and tries to reach the actual
// application form. It returns (reached, finalURL, err); err is non-nil only
// for driver failures.
func (n *NavigationService) NavigateToApplicationForm(listingURL string) (bool, string, error) {
	log.Printf("Navigating to application form from: %s", listingURL)

	clicked, currentURL, err := n.detectAndClickApply(listingURL)
	if err != nil {
		return false, listingURL, err
	}
	if !clicked {
		log.Println("Could not find apply button, proceeding with current page")
		return false, listingURL, nil
	}

	log.Printf("Clicked apply button, now at: %s", currentURL)

	// Workday portals need their own entry sequence before the form shows.
	if n.handleWorkdayPortal() {
		finalURL := n.page.CurrentURL()
		log.Printf("Workday portal navigation handled, final URL: %s", finalURL)
		return true, finalURL, nil
	}

	n.sleep(n.TransitionDelay)

	if n.hasFormIndicators() {
		log.Println("Application form detected")
	} else {
		log.Println("Application form not detected, proceeding anyway")
	}
	return true, n.page.CurrentURL(), nil
}

// detectAndClickApply loads the listing page and clicks the first visible and
// enabled apply control, trying site selectors before text patterns.
func (n *NavigationService) detectAndClickApply(listingURL string) (bool, string, error) {
	if err := n.page.Navigate(listingURL); err != nil {
		return false, listingURL, err
	}
	n.sleep(n.LoadDelay)

	if el, ok := FindFirstMatching(n.page, applySelectors); ok {
		return n.clickApply(el, "selector")
	}

	for _, pattern := range applyTextPatterns {
		if el, ok := FindFirstMatching(n.page, lowercaseTextXPath(pattern)); ok {
			return n.clickApply(el, pattern)
		}
	}

	log.Println("No apply button found on this page")
	return false, n.page.CurrentURL(), nil
}

func (n *NavigationService) clickApply(el Element, matched string) (bool, string, error) {
	log.Printf("Found apply button (%s)", matched)
	el.ScrollIntoView()
	n.sleep(n.ClickDelay)
	if err := el.Click(); err != nil {
		log.Printf("Error clicking apply button: %v", err)
		return false, n.page.CurrentURL(), nil
	}
	n.sleep(n.TransitionDelay)
	return true, n.page.CurrentURL(), nil
}

// handleWorkdayPortal checks for Workday markers and, if present, clicks
// through the portal's entry controls. Manual apply is preferred because it
// avoids forced account creation.
func (n *NavigationService) handleWorkdayPortal() bool {
	if !containsWorkdayMarker(n.page.CurrentURL()) && !containsWorkdayMarker(n.page.Content()) {
		return false
	}

	log.Printf("Confirmed Workday portal: %s", n.page.CurrentURL())
	n.sleep(n.LoadDelay)

	if el, ok := FindFirstMatching(n.page, workdayManualApplySelectors); ok {
		el.ScrollIntoView()
		n.sleep(n.ClickDelay)
		if err := el.Click(); err == nil {
			log.Println("Clicked 'Apply Manually'")
			n.sleep(n.TransitionDelay)
			return true
		}
	}

	if el, ok := FindFirstMatching(n.page, workdayProceedSelectors); ok {
		el.ScrollIntoView()
		n.sleep(n.ClickDelay)
		if err := el.Click(); err == nil {
			log.Println("Clicked proceed button")
			n.sleep(n.TransitionDelay)
			return true
		}
	}

	log.Println("Could not find apply options on Workday portal")
	return false
}

func (n *NavigationService) hasFormIndicators() bool {
	source := strings.ToLower(n.page.Content())
	for _, indicator := range formIndicators {
		if strings.Contains(source, indicator) {
			return true
		}
	}
	return false
}

func (n *NavigationService) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
