package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autoapply/models"
)

func newTestFiller() *FieldFiller {
	filler := NewFieldFiller()
	filler.SettleDelay = 0
	return filler
}

func TestFieldFiller_TextField(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")

	ok := filler.Fill(el, "Jane", models.FieldTypeText)

	assert.True(t, ok)
	assert.Equal(t, 1, el.cleared)
	assert.Equal(t, []string{"Jane"}, el.typed)
}

func TestFieldFiller_EmptyValueFails(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")

	assert.False(t, filler.Fill(el, "", models.FieldTypeText))
	assert.Empty(t, el.typed)
}

func TestFieldFiller_UnknownTypeFails(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")

	assert.False(t, filler.Fill(el, "value", "file"))
}

func TestFieldFiller_SelectCaseInsensitiveMatch(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("select")
	el.options = []SelectOptionItem{
		{Value: "y", Label: "Yes"},
		{Value: "n", Label: "No"},
	}

	ok := filler.Fill(el, "yes", models.FieldTypeSelect)

	assert.True(t, ok)
	assert.Equal(t, "Yes", el.selectedText)
}

func TestFieldFiller_SelectPrefersExactLabel(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("select")
	el.options = []SelectOptionItem{
		{Value: "1", Label: "United States of America"},
		{Value: "2", Label: "United States"},
	}

	ok := filler.Fill(el, "United States", models.FieldTypeSelect)

	assert.True(t, ok)
	assert.Equal(t, "United States", el.selectedText)
}

func TestFieldFiller_SelectNoMatchFails(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("select")
	el.options = []SelectOptionItem{
		{Value: "a", Label: "Alpha"},
		{Value: "b", Label: "Beta"},
	}

	ok := filler.Fill(el, "Gamma", models.FieldTypeSelect)

	assert.False(t, ok)
	assert.Empty(t, el.selectedText)
	assert.Empty(t, el.selectedValue)
}

func TestFieldFiller_CheckboxAlreadyCorrectStateSkipsClick(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")
	el.checked = false

	ok := filler.Fill(el, "No", models.FieldTypeCheckbox)

	assert.True(t, ok)
	assert.Equal(t, 0, el.clicks)
}

func TestFieldFiller_CheckboxClicksOnceToCheck(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")
	el.checked = false

	ok := filler.Fill(el, "Yes", models.FieldTypeCheckbox)

	assert.True(t, ok)
	assert.Equal(t, 1, el.clicks)
	assert.True(t, el.checked)
}

func TestFieldFiller_CheckboxUnclearValueFails(t *testing.T) {
	filler := newTestFiller()
	el := newFakeElement("input")

	ok := filler.Fill(el, "maybe", models.FieldTypeCheckbox)

	assert.False(t, ok)
	assert.Equal(t, 0, el.clicks)
}
