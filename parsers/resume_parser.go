package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"baliance.com/gooxml/document"

	"autoapply/models"
	"autoapply/services"
)

// ResumeParser builds a UserProfile from a resume file. The heavy lifting is
// done by the LLM; regex extraction backstops the contact fields so a bad
// model response never loses the email or phone number.
type ResumeParser struct {
	llm services.LLMClient

	emailRegex *regexp.Regexp
	phoneRegex *regexp.Regexp
}

func NewResumeParser(llm services.LLMClient) *ResumeParser {
	return &ResumeParser{
		llm:        llm,
		emailRegex: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		phoneRegex: regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	}
}

// ParseFile reads the resume file and extracts a profile. DOCX files are read
// through their document structure; anything else is treated as plain text.
func (p *ResumeParser) ParseFile(ctx context.Context, path string) (*models.UserProfile, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		text, err = ExtractDocxText(path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading resume %s: %v", path, err)
	}

	profile, err := p.ParseText(ctx, text)
	if err != nil {
		return nil, err
	}
	profile.ResumeFilePath = path
	return profile, nil
}

// ParseText extracts a profile from raw resume text.
func (p *ResumeParser) ParseText(ctx context.Context, text string) (*models.UserProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty resume text")
	}

	profile := &models.UserProfile{ResumeText: text}

	if p.llm != nil {
		if err := p.extractWithLLM(ctx, text, profile); err != nil {
			log.Printf("LLM resume extraction failed, using regex fallback: %v", err)
		}
	}

	// Backstop contact fields with regex extraction.
	if profile.Email == "" {
		profile.Email = p.emailRegex.FindString(text)
	}
	if profile.Phone == "" {
		profile.Phone = p.phoneRegex.FindString(text)
	}

	profile.Normalize()
	return profile, nil
}

func (p *ResumeParser) extractWithLLM(ctx context.Context, text string, profile *models.UserProfile) error {
	raw, err := p.llm.GenerateJSONCompletion(ctx, buildResumePrompt(text))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, profile); err != nil {
		return fmt.Errorf("error parsing extracted profile: %v", err)
	}
	return nil
}

func buildResumePrompt(text string) string {
	return fmt.Sprintf(`Extract the candidate's information from the resume below. Return a JSON object with these keys: first_name, last_name, email, phone, address, city, state, zip_code, country, current_title, years_of_experience, linkedin_url, github_url, portfolio_url, education_level, university, degree, graduation_year, skills (array of strings). Use empty strings for anything not present in the resume. Do not invent data.

Resume:
%s`, text)
}

// ExtractDocxText reads the visible text of a .docx file.
func ExtractDocxText(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening document: %v", err)
	}

	var builder strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			builder.WriteString(run.Text())
		}
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
