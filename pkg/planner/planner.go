// Package planner generates the slide plan for a run with a bounded
// parse-and-retry loop. Unlike slide design, plan failure after the final
// attempt is fatal: there is no meaningful partial plan.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/llm"
	"slideweaver-be/pkg/prompts"
)

const DefaultMaxRetries = 3

type Planner struct {
	provider   llm.Provider
	maxRetries int
	logger     *log.Logger
}

func NewPlanner(provider llm.Provider, logger *log.Logger) *Planner {
	return &Planner{
		provider:   provider,
		maxRetries: DefaultMaxRetries,
		logger:     logger,
	}
}

// WithMaxRetries overrides the attempt budget.
func (p *Planner) WithMaxRetries(n int) *Planner {
	if n > 0 {
		p.maxRetries = n
	}
	return p
}

// Plan runs one planning call against the model, retrying on parse or
// structural failures, and returns the validated slide plan.
func (p *Planner) Plan(ctx context.Context, brief deck.Brief, catalog *deck.ArtifactCatalog) (*deck.SlidePlan, error) {
	history := []llm.Message{
		{Role: "system", Content: prompts.PlannerSystemPrompt},
		{Role: "user", Content: prompts.PlannerRequest(brief, catalog)},
	}

	var lastErr error

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		if attempt > 1 {
			history = append(history, llm.Message{
				Role:    "user",
				Content: prompts.PlannerRetry(lastErr),
			})
		}

		response, err := p.provider.Chat(ctx, history)
		if err != nil {
			return nil, fmt.Errorf("plan generation: %w", err)
		}
		history = append(history, llm.Message{Role: "assistant", Content: response})

		plan, err := ParsePlan(response)
		if err == nil {
			err = validatePlan(plan, catalog)
		}
		if err == nil {
			if attempt > 1 && p.logger != nil {
				p.logger.Printf("slide plan validated on attempt %d", attempt)
			}
			return plan, nil
		}

		lastErr = err
		if p.logger != nil {
			p.logger.Printf("plan attempt %d/%d failed: %v", attempt, p.maxRetries, err)
		}
	}

	return nil, fmt.Errorf("failed to generate valid slide plan after %d attempts, last error: %w",
		p.maxRetries, lastErr)
}

// ParsePlan extracts and decodes the slide plan JSON from a raw model
// response, tolerating fenced code blocks and surrounding prose.
func ParsePlan(response string) (*deck.SlidePlan, error) {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(response[start:], "```"); end > 0 {
			response = strings.TrimSpace(response[start : start+end])
		}
	} else if idx := strings.Index(response, "```"); idx != -1 {
		start := idx + len("```")
		if end := strings.Index(response[start:], "```"); end > 0 {
			response = strings.TrimSpace(response[start : start+end])
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var plan deck.SlidePlan
	if err := json.Unmarshal([]byte(response[start:end+1]), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &plan, nil
}

// validatePlan enforces the structural invariants the rest of the pipeline
// relies on: at least one slide, indices 1..N with no gaps or repeats, unique
// slide ids, and artifact references that exist in the catalog.
func validatePlan(plan *deck.SlidePlan, catalog *deck.ArtifactCatalog) error {
	if plan.Title == "" {
		return fmt.Errorf("plan is missing a title")
	}
	if len(plan.Slides) == 0 {
		return fmt.Errorf("plan contains no slides")
	}

	seenIds := make(map[string]bool, len(plan.Slides))
	for i, slide := range plan.Slides {
		if slide.SlideId == "" {
			return fmt.Errorf("slide %d is missing slide_id", i+1)
		}
		if seenIds[slide.SlideId] {
			return fmt.Errorf("duplicate slide_id %q", slide.SlideId)
		}
		seenIds[slide.SlideId] = true

		if slide.SlideIndex != i+1 {
			return fmt.Errorf("slide_index must be %d for slide %q, got %d",
				i+1, slide.SlideId, slide.SlideIndex)
		}

		for _, block := range slide.ContentBlocks {
			if block.ArtifactId == "" {
				continue
			}
			if catalog == nil || catalog.Find(block.ArtifactId) == nil {
				return fmt.Errorf("slide %q references unknown artifact %q",
					slide.SlideId, block.ArtifactId)
			}
		}
	}

	return nil
}
