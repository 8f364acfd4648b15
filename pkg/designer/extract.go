package designer

import (
	"regexp"
	"strings"
)

var (
	doctypeRe   = regexp.MustCompile(`(?i)<!DOCTYPE\s+html.*?>`)
	htmlCloseRe = regexp.MustCompile(`(?i)</html>`)
)

// ExtractHTML pulls an HTML document out of a raw model response.
// Preference order: fenced html block, fenced generic block, a
// <!DOCTYPE html ...> through </html> scan, else the response verbatim.
// A response that is already a bare document comes back unchanged.
func ExtractHTML(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```html"); idx != -1 {
		start := idx + len("```html")
		if end := strings.Index(response[start:], "```"); end > 0 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if idx := strings.Index(response, "```"); idx != -1 {
		start := idx + len("```")
		if end := strings.Index(response[start:], "```"); end > 0 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if loc := doctypeRe.FindStringIndex(response); loc != nil {
		rest := response[loc[0]:]
		if end := htmlCloseRe.FindStringIndex(rest); end != nil {
			return strings.TrimSpace(rest[:end[1]])
		}
	}

	return response
}
