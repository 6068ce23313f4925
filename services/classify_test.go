package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPortal(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		excerpt string
		want    PortalKind
	}{
		{"workday job url", "https://company.wd5.myworkdayjobs.com/en-US/careers/job/123", "", PortalWorkday},
		{"workday marker in page", "https://careers.company.com/job/123", "loaded from workdaycdn.com", PortalWorkday},
		{"uppercase marker", "https://company.com/WORKDAY/job", "", PortalWorkday},
		{"linkedin", "https://www.linkedin.com/jobs/view/123", "", PortalGeneric},
		{"plain careers page", "https://company.com/careers/123", "<html>apply now</html>", PortalGeneric},
		{"empty inputs", "", "", PortalGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPortal(tt.url, tt.excerpt))
		})
	}
}

func TestDetectPlatform_KnownBoards(t *testing.T) {
	platform, err := DetectPlatform("https://www.linkedin.com/jobs/view/123")
	assert.NoError(t, err)
	assert.Equal(t, "LinkedIn", platform.Name)
	assert.True(t, platform.SupportsAuto)

	platform, err = DetectPlatform("https://company.wd1.myworkdayjobs.com/careers/job/1")
	assert.NoError(t, err)
	assert.Equal(t, "Workday ATS", platform.Name)
}

func TestDetectPlatform_CompanyCareers(t *testing.T) {
	platform, err := DetectPlatform("https://acme.com/careers/senior-engineer")
	assert.NoError(t, err)
	assert.Equal(t, "Acme Careers", platform.Name)
	assert.True(t, platform.RequiresManual)
}

func TestDetectPlatform_UnknownDomainFails(t *testing.T) {
	_, err := DetectPlatform("https://random-site.com/page")
	assert.Error(t, err)
}
