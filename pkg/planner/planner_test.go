package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/llm"
)

type scriptedProvider struct {
	responses []string
	err       error
	calls     int
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
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
	return p.Chat(ctx, nil, options...)
}

const validPlanJSON = `{
  "title": "Q3 Review",
  "slides": [
    {"slide_id": "s1", "slide_index": 1, "slide_type": "TITLE", "title": "Q3 Review"},
    {"slide_id": "s2", "slide_index": 2, "slide_type": "CONTENT", "title": "Highlights"}
  ]
}`

func emptyCatalog() *deck.ArtifactCatalog {
	return &deck.ArtifactCatalog{Artifacts: []deck.Artifact{}}
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
	}{
		{name: "bare json", response: validPlanJSON},
		{name: "json fence", response: "```json\n" + validPlanJSON + "\n```"},
		{name: "generic fence", response: "```\n" + validPlanJSON + "\n```"},
		{name: "surrounding prose", response: "Here is your plan:\n" + validPlanJSON + "\nEnjoy!"},
		{name: "no json object", response: "I could not build a plan.", wantErr: true},
		{name: "malformed json", response: `{"title": "x", "slides": [`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParsePlan(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if plan.Title != "Q3 Review" || len(plan.Slides) != 2 {
				t.Errorf("plan = %+v", plan)
			}
		})
	}
}

func TestPlanValidationRetries(t *testing.T) {
	// First response has a non-contiguous index; second is valid.
	badIndex := strings.Replace(validPlanJSON, `"slide_index": 2`, `"slide_index": 3`, 1)
	provider := &scriptedProvider{responses: []string{badIndex, validPlanJSON}}
	p := NewPlanner(provider, nil)

	plan, err := p.Plan(context.Background(), deck.NewBrief("review", "", ""), emptyCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("calls = %d, want 2", provider.calls)
	}
	if len(plan.Slides) != 2 {
		t.Errorf("slides = %d, want 2", len(plan.Slides))
	}
}

func TestPlanExhaustIsFatal(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"not json"}}
	p := NewPlanner(provider, nil)

	_, err := p.Plan(context.Background(), deck.NewBrief("review", "", ""), emptyCatalog())
	if err == nil {
		t.Fatal("expected fatal error after exhausting attempts")
	}
	if provider.calls != DefaultMaxRetries {
		t.Errorf("calls = %d, want %d", provider.calls, DefaultMaxRetries)
	}
	if !strings.Contains(err.Error(), fmt.Sprintf("%d attempts", DefaultMaxRetries)) {
		t.Errorf("error %q does not mention the attempt count", err)
	}
}

func TestPlanTransportErrorDoesNotRetry(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	p := NewPlanner(provider, nil)

	_, err := p.Plan(context.Background(), deck.NewBrief("review", "", ""), emptyCatalog())
	if err == nil {
		t.Fatal("expected error")
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1", provider.calls)
	}
}

func TestValidatePlan(t *testing.T) {
	catalog := &deck.ArtifactCatalog{Artifacts: []deck.Artifact{{ArtifactId: "chart_1"}}}

	base := func() *deck.SlidePlan {
		return &deck.SlidePlan{
			Title: "Deck",
			Slides: []deck.SlideSpec{
				{SlideId: "s1", SlideIndex: 1},
				{SlideId: "s2", SlideIndex: 2},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*deck.SlidePlan)
		wantErr string
	}{
		{name: "valid", mutate: func(*deck.SlidePlan) {}},
		{
			name:    "missing title",
			mutate:  func(p *deck.SlidePlan) { p.Title = "" },
			wantErr: "title",
		},
		{
			name:    "no slides",
			mutate:  func(p *deck.SlidePlan) { p.Slides = nil },
			wantErr: "no slides",
		},
		{
			name:    "duplicate slide id",
			mutate:  func(p *deck.SlidePlan) { p.Slides[1].SlideId = "s1" },
			wantErr: "duplicate slide_id",
		},
		{
			name:    "index gap",
			mutate:  func(p *deck.SlidePlan) { p.Slides[1].SlideIndex = 5 },
			wantErr: "slide_index",
		},
		{
			name: "unknown artifact",
			mutate: func(p *deck.SlidePlan) {
				p.Slides[0].ContentBlocks = []deck.ContentBlock{{ArtifactId: "missing_9"}}
			},
			wantErr: "unknown artifact",
		},
		{
			name: "known artifact",
			mutate: func(p *deck.SlidePlan) {
				p.Slides[0].ContentBlocks = []deck.ContentBlock{{ArtifactId: "chart_1"}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := base()
			tt.mutate(plan)
			err := validatePlan(plan, catalog)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
