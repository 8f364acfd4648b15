// Package designer turns one planned slide into a validated HTML document.
//
// The design loop is explicit bounded iteration: each attempt produces a
// candidate document, the checklist in validate.go decides acceptance, and
// failures feed the next attempt. Exhausting the budget returns the last
// candidate annotated with the remaining errors; the loop itself never fails.
package designer

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/llm"
	"slideweaver-be/pkg/prompts"
)

const DefaultMaxRetries = 3

type Designer struct {
	provider   llm.Provider
	maxRetries int
	logger     *log.Logger
}

func NewDesigner(provider llm.Provider, logger *log.Logger) *Designer {
	return &Designer{
		provider:   provider,
		maxRetries: DefaultMaxRetries,
		logger:     logger,
	}
}

// WithMaxRetries overrides the attempt budget.
func (d *Designer) WithMaxRetries(n int) *Designer {
	if n > 0 {
		d.maxRetries = n
	}
	return d
}

// DesignSlide produces a DesignResult for one slide spec. The returned error
// is non-nil only for transport failures; validation failures are reported
// through the result's ValidationPassed flag and error list.
func (d *Designer) DesignSlide(
	ctx context.Context,
	slide deck.SlideSpec,
	theme deck.Theme,
	rules deck.GlobalRules,
	catalog *deck.ArtifactCatalog,
) (*deck.DesignResult, error) {
	resolved := ResolveArtifacts(slide, catalog)

	history := []llm.Message{
		{Role: "system", Content: prompts.DesignerSystemPrompt},
		{Role: "user", Content: prompts.DesignerRequest(slide, theme, rules, resolved)},
	}

	var htmlContent string
	var validationErrors []string

	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		if attempt > 1 {
			// Retries send only the error list plus the slide id; the
			// conversation history carries the original request.
			history = append(history, llm.Message{
				Role:    "user",
				Content: prompts.DesignerRetry(validationErrors, slide.SlideId),
			})
		}

		response, err := d.provider.Chat(ctx, history)
		if err != nil {
			return nil, fmt.Errorf("design slide %s: %w", slide.SlideId, err)
		}
		history = append(history, llm.Message{Role: "assistant", Content: response})

		htmlContent = ExtractHTML(response)
		validationErrors = Validate(htmlContent, slide.SlideId)

		if len(validationErrors) == 0 {
			if attempt > 1 && d.logger != nil {
				d.logger.Printf("slide %s: HTML validated on attempt %d", slide.SlideId, attempt)
			}
			return &deck.DesignResult{
				SlideId:          slide.SlideId,
				HTMLContent:      htmlContent,
				ValidationPassed: true,
				ValidationErrors: []string{},
			}, nil
		}

		if d.logger != nil {
			d.logger.Printf("slide %s: attempt %d/%d validation errors: %v",
				slide.SlideId, attempt, d.maxRetries, validationErrors)
		}
	}

	// Best-effort output after the budget is spent. The caller decides
	// whether this is fatal or a logged warning.
	return &deck.DesignResult{
		SlideId:          slide.SlideId,
		HTMLContent:      htmlContent,
		ValidationPassed: false,
		ValidationErrors: validationErrors,
	}, nil
}

// ResolveArtifacts maps every resolvable content block reference to its
// artifact data. Unresolved references (stale id, nil catalog) are silently
// omitted; the designer receives no data for those blocks.
func ResolveArtifacts(slide deck.SlideSpec, catalog *deck.ArtifactCatalog) map[string]deck.ResolvedArtifact {
	resolved := make(map[string]deck.ResolvedArtifact)
	if catalog == nil {
		return resolved
	}

	for _, block := range slide.ContentBlocks {
		if block.ArtifactId == "" {
			continue
		}
		artifact := catalog.Find(block.ArtifactId)
		if artifact == nil {
			continue
		}
		savePath := artifact.SavePath
		if abs, err := filepath.Abs(savePath); err == nil {
			savePath = abs
		}
		resolved[block.ArtifactId] = deck.ResolvedArtifact{
			SavePath:    savePath,
			HTMLTable:   artifact.HTMLTable,
			Title:       artifact.Title,
			Description: artifact.Description,
		}
	}

	return resolved
}
