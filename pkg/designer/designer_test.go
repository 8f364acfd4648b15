package designer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/llm"
)

// scriptedProvider replays canned responses and records the conversation it
// was handed on each call.
type scriptedProvider struct {
	responses []string
	err       error
	calls     int
	histories [][]llm.Message
}

func (p *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.histories = append(p.histories, append([]llm.Message(nil), history...))
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	idx := p.calls - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return p.responses[idx], nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func slideFixture() deck.SlideSpec {
	return deck.SlideSpec{
		SlideId:    "s1",
		SlideIndex: 1,
		SlideType:  deck.SlideTypeContent,
		Title:      "Results",
	}
}

func validHTMLFor(slideId string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head></head>
<body>
<div id="slide-root" data-slide-id="%s"><div><p>All good here.</p></div></div>
</body>
</html>`, slideId)
}

func TestDesignSlideFirstAttemptSuccess(t *testing.T) {
	provider := &scriptedProvider{responses: []string{validHTMLFor("s1")}}
	d := NewDesigner(provider, nil)

	result, err := d.DesignSlide(context.Background(), slideFixture(), deck.DefaultTheme(), deck.DefaultGlobalRules(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ValidationPassed {
		t.Fatalf("expected validation to pass, errors: %v", result.ValidationErrors)
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1", provider.calls)
	}
}

func TestDesignSlideRetriesOnValidationFailure(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"<p>not a document</p>",
		validHTMLFor("s1"),
	}}
	d := NewDesigner(provider, nil)

	result, err := d.DesignSlide(context.Background(), slideFixture(), deck.DefaultTheme(), deck.DefaultGlobalRules(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ValidationPassed {
		t.Fatalf("expected validation to pass after retry, errors: %v", result.ValidationErrors)
	}
	if provider.calls != 2 {
		t.Errorf("calls = %d, want 2", provider.calls)
	}

	// The retry message carries only the errors and the slide id; the
	// original request stays in the history.
	second := provider.histories[1]
	last := second[len(second)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "s1") {
		t.Errorf("retry message = %+v, want user message naming slide s1", last)
	}
	if second[1].Role != "user" {
		t.Errorf("original request missing from retry history")
	}
}

func TestDesignSlideExhaustsBudget(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"<p>never valid</p>"}}
	d := NewDesigner(provider, nil)

	result, err := d.DesignSlide(context.Background(), slideFixture(), deck.DefaultTheme(), deck.DefaultGlobalRules(), nil)
	if err != nil {
		t.Fatalf("exhausted budget must not return an error, got: %v", err)
	}
	if result.ValidationPassed {
		t.Fatal("expected validation to fail")
	}
	if len(result.ValidationErrors) == 0 {
		t.Fatal("expected remaining validation errors")
	}
	if result.HTMLContent == "" {
		t.Error("expected best-effort HTML content")
	}
	if provider.calls != DefaultMaxRetries {
		t.Errorf("calls = %d, want %d", provider.calls, DefaultMaxRetries)
	}
}

func TestDesignSlideTransportError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	d := NewDesigner(provider, nil)

	_, err := d.DesignSlide(context.Background(), slideFixture(), deck.DefaultTheme(), deck.DefaultGlobalRules(), nil)
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on transport failure)", provider.calls)
	}
}

func TestResolveArtifacts(t *testing.T) {
	catalog := &deck.ArtifactCatalog{Artifacts: []deck.Artifact{
		{ArtifactId: "chart_1", Title: "Revenue", SavePath: "charts/rev.png"},
	}}

	slide := slideFixture()
	slide.ContentBlocks = []deck.ContentBlock{
		{BlockType: deck.BlockTypeImage, ArtifactId: "chart_1"},
		{BlockType: deck.BlockTypeImage, ArtifactId: "gone_2"},
		{BlockType: deck.BlockTypeText},
	}

	resolved := ResolveArtifacts(slide, catalog)
	if len(resolved) != 1 {
		t.Fatalf("resolved %d artifacts, want 1", len(resolved))
	}
	got, ok := resolved["chart_1"]
	if !ok {
		t.Fatal("chart_1 not resolved")
	}
	if got.Title != "Revenue" {
		t.Errorf("Title = %q, want %q", got.Title, "Revenue")
	}
	if !strings.HasSuffix(got.SavePath, "charts/rev.png") {
		t.Errorf("SavePath = %q, want absolute path to charts/rev.png", got.SavePath)
	}
}

func TestResolveArtifactsNilCatalog(t *testing.T) {
	slide := slideFixture()
	slide.ContentBlocks = []deck.ContentBlock{{BlockType: deck.BlockTypeImage, ArtifactId: "chart_1"}}
	if resolved := ResolveArtifacts(slide, nil); len(resolved) != 0 {
		t.Errorf("resolved %d artifacts from nil catalog, want 0", len(resolved))
	}
}
