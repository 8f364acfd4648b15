package prompts

import (
	"errors"
	"strings"
	"testing"

	"slideweaver-be/pkg/deck"
)

func TestPlannerRequestIncludesBriefAndCatalog(t *testing.T) {
	brief := deck.NewBrief("Explain Q3 results", "executives", deck.ToneExecutive)
	catalog := &deck.ArtifactCatalog{Artifacts: []deck.Artifact{
		{ArtifactId: "chart_1", Title: "Revenue Trend", Tags: []string{"finance"}},
	}}

	out := PlannerRequest(brief, catalog)

	for _, want := range []string{"Explain Q3 results", "executives", "executive", "Revenue Trend", "`chart_1`"} {
		if !strings.Contains(out, want) {
			t.Errorf("planner request missing %q", want)
		}
	}
}

func TestPlannerRetryCarriesError(t *testing.T) {
	out := PlannerRetry(errors.New("slide_index must be 2"))
	if !strings.Contains(out, "slide_index must be 2") {
		t.Errorf("retry message missing parse error: %s", out)
	}
}

func TestDesignerRequestResolvesBlocks(t *testing.T) {
	slide := deck.SlideSpec{
		SlideId:   "s3",
		SlideType: deck.SlideTypeChart,
		Title:     "Revenue",
		ContentBlocks: []deck.ContentBlock{
			{BlockType: deck.BlockTypeImage, ArtifactId: "chart_1", WidthPercent: 60},
			{BlockType: deck.BlockTypeTable, ArtifactId: "table_1", ArtifactRenderMode: deck.RenderModeHTMLTable, WidthPercent: 40},
		},
	}
	resolved := map[string]deck.ResolvedArtifact{
		"chart_1": {SavePath: "/abs/charts/rev.png"},
		"table_1": {HTMLTable: "<table><tr><td>1</td></tr></table>"},
	}

	out := DesignerRequest(slide, deck.DefaultTheme(), deck.DefaultGlobalRules(), resolved)

	// encoding/json escapes angle brackets, so assert on the field rather
	// than the raw table markup.
	for _, want := range []string{"s3", "/abs/charts/rev.png", "html_table", "#1a365d", "local_only"} {
		if !strings.Contains(out, want) {
			t.Errorf("designer request missing %q", want)
		}
	}
}

func TestDesignerRequestDefaultsRenderModeToImage(t *testing.T) {
	slide := deck.SlideSpec{
		SlideId: "s1",
		ContentBlocks: []deck.ContentBlock{
			{BlockType: deck.BlockTypeImage, ArtifactId: "chart_1"},
		},
	}
	resolved := map[string]deck.ResolvedArtifact{"chart_1": {SavePath: "/abs/a.png"}}

	out := DesignerRequest(slide, deck.DefaultTheme(), deck.DefaultGlobalRules(), resolved)
	if !strings.Contains(out, "/abs/a.png") {
		t.Errorf("image path not injected for defaulted render mode:\n%s", out)
	}
}

func TestDesignerRetryListsErrorsAndSlideId(t *testing.T) {
	out := DesignerRetry([]string{"Missing DOCTYPE declaration", "Missing <body> tag"}, "s2")

	for _, want := range []string{"- Missing DOCTYPE declaration", "- Missing <body> tag", "s2"} {
		if !strings.Contains(out, want) {
			t.Errorf("retry message missing %q:\n%s", want, out)
		}
	}
}
