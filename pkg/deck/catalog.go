package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact is one catalogued visualization (chart image or data table).
type Artifact struct {
	ArtifactId    string   `json:"artifact_id"`
	ArtifactType  string   `json:"artifact_type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Dataset       string   `json:"dataset,omitempty"`
	Tags          []string `json:"tags"`
	SavePath      string   `json:"save_path"`
	HTMLTable     string   `json:"html_table,omitempty"`
	MarkdownTable string   `json:"markdown_table,omitempty"`
}

// ArtifactCatalog is the ordered collection of artifacts available to a run.
type ArtifactCatalog struct {
	ArtifactCount int        `json:"artifact_count"`
	Artifacts     []Artifact `json:"artifacts"`
}

// LoadCatalog reads a catalog JSON file from disk.
func LoadCatalog(path string) (*ArtifactCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var catalog ArtifactCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return &catalog, nil
}

// Save writes the catalog to disk as indented JSON.
func (c *ArtifactCatalog) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Copy returns a deep copy. Session catalogs start as a copy of the base
// catalog and diverge independently.
func (c *ArtifactCatalog) Copy() *ArtifactCatalog {
	artifacts := make([]Artifact, len(c.Artifacts))
	for i, a := range c.Artifacts {
		artifacts[i] = a
		artifacts[i].Tags = append([]string(nil), a.Tags...)
	}
	return &ArtifactCatalog{
		ArtifactCount: c.ArtifactCount,
		Artifacts:     artifacts,
	}
}

// Find returns the artifact with the given id, or nil.
func (c *ArtifactCatalog) Find(artifactId string) *Artifact {
	for i := range c.Artifacts {
		if c.Artifacts[i].ArtifactId == artifactId {
			return &c.Artifacts[i]
		}
	}
	return nil
}

// Add appends an artifact and bumps the count.
func (c *ArtifactCatalog) Add(artifact Artifact) {
	c.Artifacts = append(c.Artifacts, artifact)
	c.ArtifactCount++
}

// Remove deletes the artifact with the given id. Returns false when absent.
func (c *ArtifactCatalog) Remove(artifactId string) bool {
	for i := range c.Artifacts {
		if c.Artifacts[i].ArtifactId == artifactId {
			c.Artifacts = append(c.Artifacts[:i], c.Artifacts[i+1:]...)
			c.ArtifactCount--
			return true
		}
	}
	return false
}

// FormatForPrompt renders the catalog as markdown for the planner prompt.
func (c *ArtifactCatalog) FormatForPrompt() string {
	var sb strings.Builder
	for _, a := range c.Artifacts {
		absPath := a.SavePath
		if p, err := filepath.Abs(a.SavePath); err == nil {
			absPath = p
		}
		fmt.Fprintf(&sb, "### %s\n", a.Title)
		fmt.Fprintf(&sb, "- **ID**: `%s`\n", a.ArtifactId)
		fmt.Fprintf(&sb, "- **Type**: %s\n", a.ArtifactType)
		fmt.Fprintf(&sb, "- **Description**: %s\n", a.Description)
		fmt.Fprintf(&sb, "- **Tags**: %s\n", strings.Join(a.Tags, ", "))
		fmt.Fprintf(&sb, "- **Path**: `%s`\n\n", absPath)
	}
	return sb.String()
}
