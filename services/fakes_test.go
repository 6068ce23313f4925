package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// fakeElement records interactions so tests can assert on them.
type fakeElement struct {
	tag     string
	attrs   map[string]string
	text    string
	visible bool
	enabled bool
	checked bool
	options []SelectOptionItem

	clicks        int
	cleared       int
	typed         []string
	pressed       []string
	selectedText  string
	selectedValue string
	uploaded      string

	clickErr error
	typeErr  error
}

func newFakeElement(tag string) *fakeElement {
	return &fakeElement{tag: tag, attrs: map[string]string{}, visible: true, enabled: true}
}

func (e *fakeElement) Visible() bool { return e.visible }
func (e *fakeElement) Enabled() bool { return e.enabled }
func (e *fakeElement) Checked() bool { return e.checked }
func (e *fakeElement) TagName() string { return e.tag }
func (e *fakeElement) Attribute(name string) string { return e.attrs[name] }
func (e *fakeElement) Text() string { return e.text }
func (e *fakeElement) Options() []SelectOptionItem { return e.options }

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	e.checked = !e.checked
	return nil
}

func (e *fakeElement) Clear() error {
	e.cleared++
	return nil
}

func (e *fakeElement) Type(text string) error {
	if e.typeErr != nil {
		return e.typeErr
	}
	e.typed = append(e.typed, text)
	return nil
}

func (e *fakeElement) Press(key string) error {
	e.pressed = append(e.pressed, key)
	return nil
}

func (e *fakeElement) SelectByText(label string) error {
	e.selectedText = label
	return nil
}

func (e *fakeElement) SelectByValue(value string) error {
	e.selectedValue = value
	return nil
}

func (e *fakeElement) UploadFile(path string) error {
	e.uploaded = path
	return nil
}

func (e *fakeElement) ScrollIntoView() {}

// fakePage serves elements keyed by selector string.
type fakePage struct {
	url      string
	content  string
	elements map[string][]*fakeElement

	navErr    error
	navigated []string
	keysTyped []string
	keysHit   []string
}

func newFakePage() *fakePage {
	return &fakePage{elements: map[string][]*fakeElement{}}
}

func (p *fakePage) add(sel Selector, el *fakeElement) *fakeElement {
	p.elements[sel.String()] = append(p.elements[sel.String()], el)
	return el
}

func (p *fakePage) Navigate(url string) error {
	if p.navErr != nil {
		return p.navErr
	}
	p.navigated = append(p.navigated, url)
	p.url = url
	return nil
}

func (p *fakePage) CurrentURL() string { return p.url }
func (p *fakePage) Content() string    { return p.content }

func (p *fakePage) Find(sel Selector) (Element, bool) {
	matches := p.elements[sel.String()]
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

func (p *fakePage) FindAll(sel Selector) []Element {
	matches := p.elements[sel.String()]
	elements := make([]Element, 0, len(matches))
	for _, el := range matches {
		elements = append(elements, el)
	}
	return elements
}

func (p *fakePage) WaitFor(sel Selector, timeout time.Duration) bool {
	el, ok := p.Find(sel)
	return ok && el.Visible()
}

func (p *fakePage) TypeKeys(text string, delay time.Duration) error {
	p.keysTyped = append(p.keysTyped, text)
	return nil
}

func (p *fakePage) PressKey(key string) error {
	p.keysHit = append(p.keysHit, key)
	return nil
}

type fakeBrowser struct {
	page    *fakePage
	pageErr error
	closed  bool
}

func (b *fakeBrowser) NewPage() (Page, error) {
	if b.pageErr != nil {
		return nil, b.pageErr
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

func fakeFactory(page *fakePage) BrowserFactory {
	return func(headless bool) (Browser, error) {
		return &fakeBrowser{page: page}, nil
	}
}

// fakeLLM returns canned responses.
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) GenerateJSONCompletion(ctx context.Context, prompt string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !json.Valid([]byte(f.response)) {
		return nil, errors.New("invalid JSON")
	}
	return json.RawMessage(f.response), nil
}
