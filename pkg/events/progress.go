// Package events defines the typed progress events a generation run emits.
// Each run produces a one-shot sequence consumed by exactly one subscriber.
package events

import "encoding/json"

// Event discriminators, in the order a successful run emits them.
const (
	TypeBriefCreated       = "brief_created"
	TypeCatalogLoaded      = "catalog_loaded"
	TypePlanningStarted    = "planning_started"
	TypePlanningComplete   = "planning_complete"
	TypeSlideDesigning     = "slide_designing"
	TypeSlideComplete      = "slide_complete"
	TypeSlideError         = "slide_error"
	TypeBuildStarted       = "build_started"
	TypeGenerationComplete = "generation_complete"
	TypeGenerationError    = "generation_error"
)

// Sentinel terminates the SSE stream after the final event.
const Sentinel = "[DONE]"

// ProgressEvent is one step of a generation run. Only the fields relevant to
// the event type are populated.
type ProgressEvent struct {
	Event         string   `json:"event"`
	Status        string   `json:"status,omitempty"`
	Title         string   `json:"title,omitempty"`
	Index         int      `json:"index,omitempty"`
	Total         int      `json:"total,omitempty"`
	SlideId       string   `json:"slide_id,omitempty"`
	SlideCount    int      `json:"slide_count,omitempty"`
	ArtifactCount int      `json:"artifact_count,omitempty"`
	Success       bool     `json:"success,omitempty"`
	DownloadPath  string   `json:"download_path,omitempty"`
	PptxFilename  string   `json:"pptx_filename,omitempty"`
	Error         string   `json:"error,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Unmarshal decodes a bus payload back into the event.
func (e *ProgressEvent) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}

// Terminal reports whether this event ends the stream.
func (e ProgressEvent) Terminal() bool {
	return e.Event == TypeGenerationComplete || e.Event == TypeGenerationError
}

// Marshal encodes the event payload for the message bus.
func (e ProgressEvent) Marshal() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		// The struct is all plain types; this cannot realistically fail.
		return []byte(`{"event":"generation_error","error":"failed to encode progress event"}`)
	}
	return data
}
