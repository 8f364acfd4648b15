package designer

import (
	"strings"
	"testing"
)

const validSlide = `<!DOCTYPE html>
<html>
<head><style>p { margin: 0; }</style></head>
<body>
<div id="slide-root" data-slide-id="s1">
  <div><h1>Quarterly Results</h1></div>
  <div><p>Revenue grew 12% year over year.</p></div>
  <img src="/tmp/charts/revenue.png" alt="revenue">
</div>
</body>
</html>`

func TestValidateAcceptsCompleteDocument(t *testing.T) {
	errs := Validate(validSlide, "s1")
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateChecklist(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		slideId string
		wantErr string
	}{
		{
			name:    "missing doctype",
			html:    strings.Replace(validSlide, "<!DOCTYPE html>\n", "", 1),
			slideId: "s1",
			wantErr: "Missing DOCTYPE declaration",
		},
		{
			name:    "missing head",
			html:    "<!DOCTYPE html>\n<html>\n<body><div id=\"slide-root\" data-slide-id=\"s1\"></div></body>\n</html>",
			slideId: "s1",
			wantErr: "Missing <head> tag",
		},
		{
			name:    "missing slide root",
			html:    strings.Replace(validSlide, "slide-root", "deck-root", 1),
			slideId: "s1",
			wantErr: "Missing #slide-root container",
		},
		{
			name:    "wrong slide id",
			html:    validSlide,
			slideId: "s2",
			wantErr: "Missing or incorrect data-slide-id (expected s2)",
		},
		{
			name:    "external image url",
			html:    strings.Replace(validSlide, "/tmp/charts/revenue.png", "https://cdn.example.com/a.png", 1),
			slideId: "s1",
			wantErr: "Contains external URLs (http/https)",
		},
		{
			name:    "external stylesheet href",
			html:    strings.Replace(validSlide, "<head><style>p { margin: 0; }</style></head>", `<head><link rel="stylesheet" href="http://fonts.example.com/x.css"></head>`, 1),
			slideId: "s1",
			wantErr: "Contains external URLs (http/https)",
		},
		{
			name:    "unwrapped text in div",
			html:    strings.Replace(validSlide, "<div><p>Revenue grew 12% year over year.</p></div>", "<div>Revenue grew 12% year over year.</div>", 1),
			slideId: "s1",
			wantErr: "DIV contains unwrapped text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.html, tt.slideId)
			if len(errs) == 0 {
				t.Fatalf("expected validation errors, got none")
			}
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					return
				}
			}
			t.Errorf("errors %v do not contain %q", errs, tt.wantErr)
		})
	}
}

func TestValidateMissingRootReportsBothErrors(t *testing.T) {
	html := "<!DOCTYPE html>\n<html><head></head><body><div><p>hello</p></div></body></html>"
	errs := Validate(html, "s1")

	foundRoot, foundId := false, false
	for _, e := range errs {
		if e == "Missing #slide-root container" {
			foundRoot = true
		}
		if strings.Contains(e, "data-slide-id") {
			foundId = true
		}
	}
	if !foundRoot || !foundId {
		t.Errorf("expected both root and slide-id errors, got %v", errs)
	}
}

func TestValidateAllowsShortAndNumericDivText(t *testing.T) {
	// Short runs and numeric leaders are layout glue, not content.
	html := strings.Replace(validSlide,
		"<div><p>Revenue grew 12% year over year.</p></div>",
		"<div>ok</div><div>12345678901234 units</div>", 1)
	if errs := Validate(html, "s1"); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}
