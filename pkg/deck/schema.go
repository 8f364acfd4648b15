package deck

// Slide types produced by the planner.
const (
	SlideTypeTitle   = "TITLE"
	SlideTypeAgenda  = "AGENDA"
	SlideTypeSection = "SECTION"
	SlideTypeContent = "CONTENT"
	SlideTypeChart   = "CHART"
	SlideTypeTable   = "TABLE"
	SlideTypeSummary = "SUMMARY"
	SlideTypeQNA     = "QNA"
)

// Content block types within a slide.
const (
	BlockTypeText    = "text"
	BlockTypeBullets = "bullets"
	BlockTypeImage   = "image"
	BlockTypeTable   = "table"
	BlockTypeChart   = "chart"
	BlockTypeQuote   = "quote"
)

// Artifact render modes.
const (
	RenderModeImage     = "image"
	RenderModeHTMLTable = "html_table"
)

// Presentation tones.
const (
	ToneExecutive = "executive"
	ToneTechnical = "technical"
	ToneTeaching  = "teaching"
)

// FontConfig holds the font pairing for a presentation.
type FontConfig struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ColorPalette holds the presentation color scheme.
type ColorPalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Theme is the complete visual configuration applied to every slide.
type Theme struct {
	Fonts        FontConfig   `json:"fonts"`
	ColorPalette ColorPalette `json:"color_palette"`
	SpacingScale []int        `json:"spacing_scale"`
	LayoutGrid   string       `json:"layout_grid"`
}

// DefaultTheme returns the professional blue default theme.
func DefaultTheme() Theme {
	return Theme{
		Fonts: FontConfig{Heading: "Arial", Body: "Arial"},
		ColorPalette: ColorPalette{
			Primary:    "#1a365d",
			Secondary:  "#2d3748",
			Accent:     "#3182ce",
			Background: "#ffffff",
			Text:       "#1a202c",
		},
		SpacingScale: []int{4, 8, 12, 16, 24},
		LayoutGrid:   "12-col",
	}
}

// GlobalRules are deck-wide constraints passed to the designer.
type GlobalRules struct {
	MaxWordsPerSlide int    `json:"max_words_per_slide"`
	AssetPolicy      string `json:"asset_policy"`
	ChartPolicy      string `json:"chart_policy"`
}

// DefaultGlobalRules returns the standard deck constraints.
func DefaultGlobalRules() GlobalRules {
	return GlobalRules{
		MaxWordsPerSlide: 75,
		AssetPolicy:      "local_only",
		ChartPolicy:      "image_preferred",
	}
}

// ContentBlock is one region of a slide. A block references at most one artifact.
type ContentBlock struct {
	BlockType          string     `json:"block_type"`
	Content            StringList `json:"content,omitempty"`
	ArtifactId         string     `json:"artifact_id,omitempty"`
	ArtifactRenderMode string     `json:"artifact_render_mode,omitempty"`
	WidthPercent       int        `json:"width_percent"`
}

// SlideSpec is one planned slide, prior to HTML design.
type SlideSpec struct {
	SlideId          string         `json:"slide_id"`
	SlideIndex       int            `json:"slide_index"`
	SlideType        string         `json:"slide_type"`
	Title            string         `json:"title"`
	Objective        string         `json:"objective,omitempty"`
	KeyPoints        []string       `json:"key_points,omitempty"`
	ContentBlocks    []ContentBlock `json:"content_blocks,omitempty"`
	LayoutHint       string         `json:"layout_hint,omitempty"`
	SpeakerNotes     string         `json:"speaker_notes,omitempty"`
	AcceptanceChecks []string       `json:"acceptance_checks,omitempty"`
}

// SlidePlan is the planner's complete output for one generation run.
type SlidePlan struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Audience    string      `json:"audience,omitempty"`
	Tone        string      `json:"tone,omitempty"`
	AspectRatio string      `json:"aspect_ratio,omitempty"`
	Theme       Theme       `json:"theme"`
	GlobalRules GlobalRules `json:"global_rules"`
	Slides      []SlideSpec `json:"slides"`
}

// Brief is the normalized generation request handed to the planner.
type Brief struct {
	Goal                 string            `json:"goal"`
	TargetAudience       string            `json:"target_audience"`
	DesiredTone          string            `json:"desired_tone"`
	RequiredDeliverables []string          `json:"required_deliverables"`
	Constraints          map[string]string `json:"constraints,omitempty"`
	Assumptions          []string          `json:"assumptions,omitempty"`
	RiskFlags            []string          `json:"risk_flags,omitempty"`
}

// NewBrief builds a brief with the standard assumptions baked in.
func NewBrief(goal, audience, tone string) Brief {
	return Brief{
		Goal:                 goal,
		TargetAudience:       audience,
		DesiredTone:          tone,
		RequiredDeliverables: []string{"PPTX"},
		Constraints: map[string]string{
			"aspect_ratio": "16:9",
			"asset_policy": "local_only",
		},
		Assumptions: []string{
			"16:9 aspect ratio for modern displays",
			"Professional color scheme with blue primary",
			"Arial font family for broad compatibility",
			"Local assets only (no external URLs)",
			"Maximum 75 words per slide for readability",
		},
	}
}

// ResolvedArtifact is the data handed to the designer for one referenced artifact.
type ResolvedArtifact struct {
	SavePath    string `json:"save_path"`
	HTMLTable   string `json:"html_table"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DesignResult is the terminal outcome of designing one slide.
// ValidationPassed is true only when zero checklist errors remain.
type DesignResult struct {
	SlideId          string   `json:"slide_id"`
	HTMLContent      string   `json:"html_content"`
	ValidationPassed bool     `json:"validation_passed"`
	ValidationErrors []string `json:"validation_errors"`
}

// BuildResult is the renderer adapter's outcome.
type BuildResult struct {
	Success    bool     `json:"success"`
	PptxPath   string   `json:"pptx_path,omitempty"`
	SlideCount int      `json:"slide_count"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// PresentationResult is the orchestrator's final run summary.
type PresentationResult struct {
	Success     bool     `json:"success"`
	Title       string   `json:"title"`
	SlideCount  int      `json:"slide_count"`
	PptxPath    string   `json:"pptx_path,omitempty"`
	OutputDir   string   `json:"output_dir"`
	Assumptions []string `json:"assumptions,omitempty"`
	Limitations []string `json:"limitations,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}
