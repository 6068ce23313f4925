package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"autoapply/models"
)

const analyzerTestHTML = `<html><body>
<form>
<label for="first">First Name</label>
<input id="first" name="first_name" type="text" />
<label for="mail">Email</label>
<input id="mail" name="email" type="email" required />
</form>
</body></html>`

func analyzerTestProfile() *models.UserProfile {
	return &models.UserProfile{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
}

func TestFormAnalyzer_ParsesFieldArray(t *testing.T) {
	llm := &fakeLLM{response: `Here are the fields:
[
  {"element_id": "first", "element_type": "text", "label": "First Name", "suggested_value": "Jane", "confidence": 0.9},
  {"element_id": "mail", "element_type": "email", "label": "Email", "suggested_value": "jane@example.com", "confidence": 0.95}
]
Let me know if you need anything else.`}

	fields := NewFormAnalyzer(llm).Analyze(context.Background(), analyzerTestHTML, analyzerTestProfile())

	assert.Len(t, fields, 2)
	assert.Equal(t, "first", fields[0].ElementID)
	assert.Equal(t, "Jane", fields[0].SuggestedValue)
	assert.InDelta(t, 0.95, fields[1].Confidence, 0.001)
}

func TestFormAnalyzer_ProseResponseYieldsNoFields(t *testing.T) {
	llm := &fakeLLM{response: "I could not find any form fields on this page."}

	fields := NewFormAnalyzer(llm).Analyze(context.Background(), analyzerTestHTML, analyzerTestProfile())

	assert.Empty(t, fields)
}

func TestFormAnalyzer_MalformedJSONYieldsNoFields(t *testing.T) {
	llm := &fakeLLM{response: `[{"element_id": "first", "confidence": }]`}

	fields := NewFormAnalyzer(llm).Analyze(context.Background(), analyzerTestHTML, analyzerTestProfile())

	assert.Empty(t, fields)
}

func TestFormAnalyzer_LLMErrorYieldsNoFields(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota exceeded")}

	fields := NewFormAnalyzer(llm).Analyze(context.Background(), analyzerTestHTML, analyzerTestProfile())

	assert.Empty(t, fields)
}

func TestExtractPageText_IncludesFieldMetadata(t *testing.T) {
	text := ExtractPageText(analyzerTestHTML)

	assert.Contains(t, text, "First Name")
	assert.Contains(t, text, "first_name")
	assert.Contains(t, text, "email")
}

func TestExtractPageText_StripsScripts(t *testing.T) {
	text := ExtractPageText(`<html><body><script>var secret = 1;</script><p>Visible</p></body></html>`)

	assert.Contains(t, text, "Visible")
	assert.NotContains(t, text, "secret")
}
