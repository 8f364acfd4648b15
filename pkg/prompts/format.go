package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"slideweaver-be/pkg/deck"
)

// PlannerRequest formats the first planner message from a brief and catalog.
func PlannerRequest(brief deck.Brief, catalog *deck.ArtifactCatalog) string {
	constraints := "None specified"
	if len(brief.Constraints) > 0 {
		if data, err := json.MarshalIndent(brief.Constraints, "", "  "); err == nil {
			constraints = string(data)
		}
	}

	assumptions := "None"
	if len(brief.Assumptions) > 0 {
		lines := make([]string, 0, len(brief.Assumptions))
		for _, a := range brief.Assumptions {
			lines = append(lines, "- "+a)
		}
		assumptions = strings.Join(lines, "\n")
	}

	catalogSummary := ""
	if catalog != nil {
		catalogSummary = catalog.FormatForPrompt()
	}

	return fmt.Sprintf(plannerRequestTemplate,
		brief.Goal,
		brief.TargetAudience,
		brief.DesiredTone,
		strings.Join(brief.RequiredDeliverables, ", "),
		constraints,
		assumptions,
		catalogSummary,
	)
}

// PlannerRetry formats the retry message after a plan parse failure.
func PlannerRetry(parseErr error) string {
	return fmt.Sprintf(plannerRetryTemplate, parseErr)
}

// DesignerRequest formats the first designer message for one slide.
// resolved carries the artifact data for every resolvable block reference.
func DesignerRequest(slide deck.SlideSpec, theme deck.Theme, rules deck.GlobalRules, resolved map[string]deck.ResolvedArtifact) string {
	type blockInfo struct {
		Index        int      `json:"index"`
		Type         string   `json:"type"`
		WidthPercent int      `json:"width_percent"`
		Content      []string `json:"content,omitempty"`
		ArtifactId   string   `json:"artifact_id,omitempty"`
		RenderMode   string   `json:"render_mode,omitempty"`
		ImagePath    string   `json:"image_path,omitempty"`
		HTMLTable    string   `json:"html_table,omitempty"`
	}

	blocks := make([]blockInfo, 0, len(slide.ContentBlocks))
	for i, block := range slide.ContentBlocks {
		info := blockInfo{
			Index:        i + 1,
			Type:         block.BlockType,
			WidthPercent: block.WidthPercent,
			Content:      block.Content,
		}
		if block.ArtifactId != "" {
			info.ArtifactId = block.ArtifactId
			info.RenderMode = block.ArtifactRenderMode
			if info.RenderMode == "" {
				info.RenderMode = deck.RenderModeImage
			}
			if artifact, ok := resolved[block.ArtifactId]; ok {
				switch info.RenderMode {
				case deck.RenderModeImage:
					info.ImagePath = artifact.SavePath
				case deck.RenderModeHTMLTable:
					info.HTMLTable = artifact.HTMLTable
				}
			}
		}
		blocks = append(blocks, info)
	}

	blocksJSON, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		blocksJSON = []byte("[]")
	}

	keyPoints := "None"
	if len(slide.KeyPoints) > 0 {
		lines := make([]string, 0, len(slide.KeyPoints))
		for _, p := range slide.KeyPoints {
			lines = append(lines, "- "+p)
		}
		keyPoints = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(designerRequestTemplate,
		slide.SlideId,
		slide.SlideType,
		slide.Title,
		slide.LayoutHint,
		slide.Objective,
		keyPoints,
		string(blocksJSON),
		theme.Fonts.Heading,
		theme.Fonts.Body,
		theme.ColorPalette.Primary,
		theme.ColorPalette.Secondary,
		theme.ColorPalette.Accent,
		theme.ColorPalette.Background,
		theme.ColorPalette.Text,
		rules.MaxWordsPerSlide,
		rules.AssetPolicy,
	)
}

// DesignerRetry formats the retry message carrying the accumulated validation
// errors. The original request is not re-sent; the conversation history holds it.
func DesignerRetry(validationErrors []string, slideId string) string {
	lines := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		lines = append(lines, "- "+e)
	}
	return fmt.Sprintf(designerRetryTemplate, strings.Join(lines, "\n"), slideId)
}
