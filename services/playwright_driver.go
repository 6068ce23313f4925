package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightBrowser implements Browser on playwright-go.
type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywrightBrowser launches Chromium. Callers own the session and must
// Close it.
func NewPlaywrightBrowser(headless bool) (Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &PlaywrightBrowser{pw: pw, browser: browser}, nil
}

func (b *PlaywrightBrowser) NewPage() (Page, error) {
	ctx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (b *PlaywrightBrowser) Close() error {
	if err := b.browser.Close(); err != nil {
		log.Printf("Error closing browser: %v", err)
	}
	return b.pw.Stop()
}

type playwrightPage struct {
	page playwright.Page
}

// locatorQuery turns a Selector into a playwright locator string.
func locatorQuery(sel Selector) string {
	switch sel.Kind {
	case ByXPath:
		return "xpath=" + sel.Query
	case ByID:
		return fmt.Sprintf("[id=%q]", sel.Query)
	case ByName:
		return fmt.Sprintf("[name=%q]", sel.Query)
	default:
		return sel.Query
	}
}

func (p *playwrightPage) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) CurrentURL() string {
	return p.page.URL()
}

func (p *playwrightPage) Content() string {
	content, err := p.page.Content()
	if err != nil {
		log.Printf("Error reading page content: %v", err)
		return ""
	}
	return content
}

func (p *playwrightPage) Find(sel Selector) (Element, bool) {
	locator := p.page.Locator(locatorQuery(sel)).First()
	count, err := locator.Count()
	if err != nil || count == 0 {
		return nil, false
	}
	return &playwrightElement{locator: locator}, true
}

func (p *playwrightPage) FindAll(sel Selector) []Element {
	locator := p.page.Locator(locatorQuery(sel))
	count, err := locator.Count()
	if err != nil {
		return nil
	}
	elements := make([]Element, 0, count)
	for i := 0; i < count; i++ {
		elements = append(elements, &playwrightElement{locator: locator.Nth(i)})
	}
	return elements
}

func (p *playwrightPage) WaitFor(sel Selector, timeout time.Duration) bool {
	err := p.page.Locator(locatorQuery(sel)).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return err == nil
}

func (p *playwrightPage) TypeKeys(text string, delay time.Duration) error {
	return p.page.Keyboard().Type(text, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(float64(delay.Milliseconds())),
	})
}

func (p *playwrightPage) PressKey(key string) error {
	return p.page.Keyboard().Press(key)
}

type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) Visible() bool {
	visible, err := e.locator.IsVisible()
	return err == nil && visible
}

func (e *playwrightElement) Enabled() bool {
	enabled, err := e.locator.IsEnabled()
	return err == nil && enabled
}

func (e *playwrightElement) Checked() bool {
	checked, err := e.locator.IsChecked()
	return err == nil && checked
}

func (e *playwrightElement) TagName() string {
	tag, err := e.locator.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return ""
	}
	name, _ := tag.(string)
	return name
}

func (e *playwrightElement) Attribute(name string) string {
	value, err := e.locator.GetAttribute(name)
	if err != nil {
		return ""
	}
	return value
}

func (e *playwrightElement) Text() string {
	text, err := e.locator.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *playwrightElement) Options() []SelectOptionItem {
	raw, err := e.locator.Evaluate(
		"el => Array.from(el.options || []).map(o => ({value: o.value, label: o.label || o.text}))", nil)
	if err != nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	options := make([]SelectOptionItem, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, _ := entry["value"].(string)
		label, _ := entry["label"].(string)
		options = append(options, SelectOptionItem{Value: value, Label: label})
	}
	return options
}

func (e *playwrightElement) Click() error {
	return e.locator.Click()
}

func (e *playwrightElement) Clear() error {
	return e.locator.Clear()
}

func (e *playwrightElement) Type(text string) error {
	return e.locator.Type(text, playwright.LocatorTypeOptions{
		Delay: playwright.Float(50),
	})
}

func (e *playwrightElement) Press(key string) error {
	return e.locator.Press(key)
}

func (e *playwrightElement) SelectByText(label string) error {
	_, err := e.locator.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	return err
}

func (e *playwrightElement) SelectByValue(value string) error {
	_, err := e.locator.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return err
}

func (e *playwrightElement) UploadFile(path string) error {
	return e.locator.SetInputFiles(path)
}

func (e *playwrightElement) ScrollIntoView() {
	if err := e.locator.ScrollIntoViewIfNeeded(); err != nil {
		log.Printf("Error scrolling element into view: %v", err)
	}
}
