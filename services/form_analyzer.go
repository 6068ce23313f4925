package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"autoapply/models"
)

// FormAnalyzer sends page content plus the user profile to the LLM and turns
// the response into FormField suggestions. Every failure mode (transport,
// auth, malformed JSON) degrades to an empty suggestion list; the analyzer
// never aborts a run.
type FormAnalyzer struct {
	llm LLMClient
}

func NewFormAnalyzer(llm LLMClient) *FormAnalyzer {
	return &FormAnalyzer{llm: llm}
}

// Analyze identifies form fields on the page and suggests values from the
// profile. An empty slice means "no fields suggested" and is not an error.
func (a *FormAnalyzer) Analyze(ctx context.Context, pageHTML string, profile *models.UserProfile) []models.FormField {
	textContent := ExtractPageText(pageHTML)
	if textContent == "" {
		log.Println("Form analyzer: page produced no text content")
		return nil
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Printf("Form analyzer: could not serialize profile: %v", err)
		return nil
	}

	prompt := buildFormAnalysisPrompt(string(profileJSON), textContent)

	response, err := a.llm.GenerateCompletion(ctx, []ChatMessage{
		{Role: "system", Content: "You are an expert form analysis assistant."},
		{Role: "user", Content: prompt},
	}, 4000, 0.1)
	if err != nil {
		log.Printf("Form analyzer: LLM call failed: %v", err)
		return nil
	}

	fields := parseFormFieldArray(response)
	if fields == nil {
		log.Println("Form analyzer: could not find valid JSON in LLM response")
		return nil
	}
	return fields
}

// parseFormFieldArray extracts the first '[' .. last ']' slice of the raw LLM
// text and parses only that slice. The raw response is never trusted whole.
func parseFormFieldArray(raw string) []models.FormField {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var fields []models.FormField
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		log.Printf("Form analyzer: error parsing LLM response JSON: %v", err)
		return nil
	}
	return fields
}

func buildFormAnalysisPrompt(profileJSON, pageText string) string {
	return fmt.Sprintf(`You are an expert at analyzing job application forms. Given the form content below, identify all input fields and suggest appropriate values based on the user profile.

User Profile:
%s

Form Content:
%s

Analyze the form and return a JSON array of form fields with the following structure:
[
    {
        "element_id": "field_id_or_name",
        "element_name": "field_name",
        "element_type": "input_type (text, email, select, etc.)",
        "label": "field_label_or_description",
        "placeholder": "placeholder_text",
        "required": true,
        "options": ["option1", "option2"],
        "suggested_value": "suggested_value_from_profile",
        "confidence": 0.8
    }
]

Rules:
1. Map form fields to user profile data intelligently
2. For name fields, use appropriate name parts
3. For email, use the profile email
4. For phone, format appropriately
5. For address fields, split address data as needed
6. For experience/skills, use relevant profile data
7. For yes/no questions, suggest reasonable defaults
8. Set confidence between 0.0 and 1.0 based on how certain you are about the mapping
9. Only include fields that actually exist in the form
10. For dropdown/select fields, suggest the best matching option
11. Never invent data that is not grounded in the profile

Return only the JSON array, no additional text.`, profileJSON, pageText)
}
