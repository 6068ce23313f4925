package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// ExtractPageText converts page HTML into plain text suitable for an LLM
// prompt. Links, images, scripts and styles are dropped to keep token usage
// down; form control metadata is preserved inline because the analyzer needs
// it to identify fields.
func ExtractPageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, svg, img, iframe").Remove()

	var builder strings.Builder

	// Keep input metadata visible to the analyzer even when a control has no
	// surrounding text.
	doc.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		var parts []string
		if v, ok := s.Attr("type"); ok {
			parts = append(parts, "type="+v)
		}
		if v, ok := s.Attr("id"); ok {
			parts = append(parts, "id="+v)
		}
		if v, ok := s.Attr("name"); ok {
			parts = append(parts, "name="+v)
		}
		if v, ok := s.Attr("placeholder"); ok {
			parts = append(parts, "placeholder="+v)
		}
		if _, ok := s.Attr("required"); ok {
			parts = append(parts, "required")
		}
		if len(parts) == 0 {
			return
		}
		tag := goquery.NodeName(s)
		line := "[" + tag + " " + strings.Join(parts, " ") + "]"
		if tag == "select" {
			var options []string
			s.Find("option").Each(func(_ int, opt *goquery.Selection) {
				if text := strings.TrimSpace(opt.Text()); text != "" {
					options = append(options, text)
				}
			})
			if len(options) > 0 {
				line += " options: " + strings.Join(options, " | ")
			}
		}
		s.ReplaceWithHtml("<p>" + line + "</p>")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		builder.WriteString(doc.Text())
	} else {
		body.Find("p, div, label, h1, h2, h3, h4, li, span, td, th").Each(func(_ int, s *goquery.Selection) {
			if s.Children().Length() > 0 {
				return
			}
			if text := strings.TrimSpace(s.Text()); text != "" {
				builder.WriteString(text)
				builder.WriteString("\n")
			}
		})
		if builder.Len() == 0 {
			builder.WriteString(body.Text())
		}
	}

	text := blankLines.ReplaceAllString(builder.String(), "\n\n")
	return strings.TrimSpace(text)
}
