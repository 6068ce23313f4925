package services

import (
	"fmt"
	"strings"
	"time"
)

// SelectorKind distinguishes how a Selector query is interpreted.
type SelectorKind int

const (
	ByCSS SelectorKind = iota
	ByXPath
	ByID
	ByName
)

// Selector is a typed element query. Services build selector chains as data
// so fallback order is explicit and testable.
type Selector struct {
	Kind  SelectorKind
	Query string
}

func CSS(query string) Selector   { return Selector{Kind: ByCSS, Query: query} }
func XPath(query string) Selector { return Selector{Kind: ByXPath, Query: query} }
func ID(id string) Selector       { return Selector{Kind: ByID, Query: id} }
func Name(name string) Selector   { return Selector{Kind: ByName, Query: name} }

func (s Selector) String() string {
	switch s.Kind {
	case ByXPath:
		return "xpath:" + s.Query
	case ByID:
		return "id:" + s.Query
	case ByName:
		return "name:" + s.Query
	default:
		return "css:" + s.Query
	}
}

// SelectOptionItem is one option of a <select> element.
type SelectOptionItem struct {
	Value string
	Label string
}

// Element is a live form element on a page. Mutating calls return an error
// when the underlying driver rejects the interaction.
type Element interface {
	Visible() bool
	Enabled() bool
	Checked() bool
	TagName() string
	Attribute(name string) string
	Text() string
	Options() []SelectOptionItem

	Click() error
	Clear() error
	Type(text string) error
	Press(key string) error
	SelectByText(label string) error
	SelectByValue(value string) error
	UploadFile(path string) error
	ScrollIntoView()
}

// Page is a browser tab. Find returns (element, false) rather than an error
// when nothing matches, since absent elements are the normal case in
// selector-chain probing.
type Page interface {
	Navigate(url string) error
	CurrentURL() string
	Content() string
	Find(sel Selector) (Element, bool)
	FindAll(sel Selector) []Element
	WaitFor(sel Selector, timeout time.Duration) bool
	TypeKeys(text string, delay time.Duration) error
	PressKey(key string) error
}

// Browser owns a driver session and its pages.
type Browser interface {
	NewPage() (Page, error)
	Close() error
}

// BrowserFactory opens a browser session. The orchestrator takes a factory so
// tests substitute fakes without touching a real driver.
type BrowserFactory func(headless bool) (Browser, error)

// FindFirstMatching walks the selector chain and returns the first visible
// and enabled match. Selectors that match nothing or match a hidden element
// are skipped silently.
func FindFirstMatching(page Page, selectors []Selector) (Element, bool) {
	for _, sel := range selectors {
		el, ok := page.Find(sel)
		if !ok {
			continue
		}
		if el.Visible() && el.Enabled() {
			return el, true
		}
	}
	return nil, false
}

// lowercaseTextXPath builds XPath queries matching the phrase
// case-insensitively across common clickable elements. XPath 1.0 has no
// lower-case(), so translate() does the folding.
func lowercaseTextXPath(phrase string) []Selector {
	lower := strings.ToLower(phrase)
	const fold = "translate(%s, 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz')"
	textExpr := fmt.Sprintf(fold, "text()")
	valueExpr := fmt.Sprintf(fold, "@value")
	ariaExpr := fmt.Sprintf(fold, "@aria-label")

	return []Selector{
		XPath(fmt.Sprintf("//button[contains(%s, '%s')]", textExpr, lower)),
		XPath(fmt.Sprintf("//a[contains(%s, '%s')]", textExpr, lower)),
		XPath(fmt.Sprintf("//input[contains(%s, '%s')]", valueExpr, lower)),
		XPath(fmt.Sprintf("//*[contains(%s, '%s')]", ariaExpr, lower)),
	}
}
