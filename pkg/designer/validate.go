package designer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tags whose direct text content the PPTX converter can lay out. Text anywhere
// else inside a div must be wrapped in one of these.
var textBearingTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "li": true, "td": true, "th": true,
}

// Validate runs the slide acceptance checklist against a generated document.
// It returns one message per failed check; an empty slice means the document
// is accepted.
func Validate(htmlContent, slideId string) []string {
	var errs []string

	// Document skeleton checks run on the raw text: the HTML parser below
	// auto-inserts html/head/body, which would mask their absence.
	if !strings.Contains(strings.ToUpper(htmlContent), "<!DOCTYPE") {
		errs = append(errs, "Missing DOCTYPE declaration")
	}
	lower := strings.ToLower(htmlContent)
	if !strings.Contains(lower, "<html") {
		errs = append(errs, "Missing <html> tag")
	}
	if !strings.Contains(lower, "<head") {
		errs = append(errs, "Missing <head> tag")
	}
	if !strings.Contains(lower, "<body") {
		errs = append(errs, "Missing <body> tag")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		errs = append(errs, fmt.Sprintf("HTML could not be parsed: %v", err))
		return errs
	}

	root := doc.Find("#slide-root")
	if root.Length() == 0 {
		errs = append(errs, "Missing #slide-root container")
		errs = append(errs, fmt.Sprintf("Missing or incorrect data-slide-id (expected %s)", slideId))
	} else if id, _ := root.First().Attr("data-slide-id"); id != slideId {
		errs = append(errs, fmt.Sprintf("Missing or incorrect data-slide-id (expected %s)", slideId))
	}

	external := false
	doc.Find("[src],[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"src", "href"} {
			if v, ok := s.Attr(attr); ok {
				v = strings.TrimSpace(strings.ToLower(v))
				if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
					external = true
					return false
				}
			}
		}
		return true
	})
	if external {
		errs = append(errs, "Contains external URLs (http/https)")
	}

	if unwrapped := findUnwrappedText(doc); unwrapped != "" {
		if len(unwrapped) > 50 {
			unwrapped = unwrapped[:50]
		}
		errs = append(errs, fmt.Sprintf("DIV contains unwrapped text (wrap in <p> tags): '%s...'", unwrapped))
	}

	return errs
}

// findUnwrappedText returns the first direct child text run of a div that is
// longer than 10 characters, or "" when every text run is properly wrapped.
func findUnwrappedText(doc *goquery.Document) string {
	var found string
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for node := s.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
			if node.Type != html.TextNode {
				continue
			}
			text := strings.TrimSpace(node.Data)
			if len(text) > 10 && isLetter(text[0]) {
				found = text
				return false
			}
		}
		return true
	})
	return found
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
