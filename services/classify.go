package services

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PortalKind is the result of classifying a job URL/page.
type PortalKind int

const (
	PortalGeneric PortalKind = iota
	PortalWorkday
)

func (k PortalKind) String() string {
	if k == PortalWorkday {
		return "workday"
	}
	return "generic"
}

// workdayMarkers identify Workday-hosted portals in URLs and page sources.
var workdayMarkers = []string{"workday", "myworkdayjobs", "workdaycdn"}

// ClassifyPortal decides which application flow handles a URL. It is a pure
// function of the URL and an optional page excerpt so dispatch is testable
// without a browser.
func ClassifyPortal(jobURL, pageExcerpt string) PortalKind {
	haystacks := []string{strings.ToLower(jobURL), strings.ToLower(pageExcerpt)}
	for _, marker := range workdayMarkers {
		for _, h := range haystacks {
			if h != "" && strings.Contains(h, marker) {
				return PortalWorkday
			}
		}
	}
	return PortalGeneric
}

// containsWorkdayMarker reports whether the text mentions any Workday marker.
func containsWorkdayMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range workdayMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// PlatformInfo describes the detected job platform for run records.
type PlatformInfo struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	SupportsAuto   bool   `json:"supportsAuto"`
	RequiresManual bool   `json:"requiresManual"`
}

var titleCaser = cases.Title(language.English)

var knownPlatforms = map[string]PlatformInfo{
	"linkedin.com":  {Name: "LinkedIn", Type: "social", SupportsAuto: true},
	"indeed.com":    {Name: "Indeed", Type: "job_board", SupportsAuto: true},
	"glassdoor.com": {Name: "Glassdoor", Type: "review_site", SupportsAuto: true},
	"angel.co":      {Name: "AngelList", Type: "startup", SupportsAuto: true},
	"wellfound.com": {Name: "Wellfound", Type: "startup", SupportsAuto: true},
}

// DetectPlatform analyzes the URL to determine the hosting job platform.
func DetectPlatform(jobURL string) (PlatformInfo, error) {
	parsed, err := url.Parse(jobURL)
	if err != nil {
		return PlatformInfo{}, fmt.Errorf("invalid URL: %w", err)
	}

	domain := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	path := parsed.Path
	query := parsed.RawQuery

	if platform, exists := knownPlatforms[domain]; exists {
		return platform, nil
	}

	if strings.Contains(domain, "myworkdayjobs.com") || strings.Contains(domain, "workday") {
		return PlatformInfo{
			Name: "Workday ATS", Type: "company_ats",
			SupportsAuto: true, RequiresManual: true,
		}, nil
	}

	if strings.Contains(query, "gh_jid") || strings.Contains(path, "/greenhouse/") {
		return PlatformInfo{
			Name: "Greenhouse ATS", Type: "company_ats",
			SupportsAuto: true, RequiresManual: true,
		}, nil
	}

	if strings.Contains(domain, "lever") || strings.Contains(query, "lever") {
		return PlatformInfo{
			Name: "Lever ATS", Type: "company_ats",
			SupportsAuto: true, RequiresManual: true,
		}, nil
	}

	if strings.Contains(path, "/careers") || strings.Contains(path, "/jobs") {
		companyName := titleCaser.String(strings.Split(domain, ".")[0])
		return PlatformInfo{
			Name: fmt.Sprintf("%s Careers", companyName), Type: "company_careers",
			RequiresManual: true,
		}, nil
	}

	return PlatformInfo{}, fmt.Errorf("unsupported platform: %s", domain)
}
