package deck

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func catalogFixture() *ArtifactCatalog {
	return &ArtifactCatalog{
		ArtifactCount: 2,
		Artifacts: []Artifact{
			{ArtifactId: "chart_1", ArtifactType: "plot", Title: "Revenue", Tags: []string{"finance"}},
			{ArtifactId: "table_1", ArtifactType: "table", Title: "Breakdown", Tags: []string{"finance", "detail"}},
		},
	}
}

func TestCatalogCopyIsolation(t *testing.T) {
	base := catalogFixture()
	copied := base.Copy()

	copied.Add(Artifact{ArtifactId: "user_upload_abc123", Title: "Logo"})
	copied.Artifacts[0].Title = "Changed"
	copied.Artifacts[0].Tags[0] = "changed"

	if len(base.Artifacts) != 2 {
		t.Errorf("base grew to %d artifacts", len(base.Artifacts))
	}
	if base.Artifacts[0].Title != "Revenue" {
		t.Errorf("base title mutated: %q", base.Artifacts[0].Title)
	}
	if base.Artifacts[0].Tags[0] != "finance" {
		t.Errorf("base tags mutated: %q", base.Artifacts[0].Tags[0])
	}
}

func TestCatalogAddRemoveFind(t *testing.T) {
	c := catalogFixture()

	if a := c.Find("table_1"); a == nil || a.Title != "Breakdown" {
		t.Fatalf("Find(table_1) = %+v", a)
	}
	if a := c.Find("nope"); a != nil {
		t.Fatalf("Find(nope) = %+v, want nil", a)
	}

	c.Add(Artifact{ArtifactId: "chart_2"})
	if c.ArtifactCount != 3 || len(c.Artifacts) != 3 {
		t.Errorf("count = %d, len = %d after add", c.ArtifactCount, len(c.Artifacts))
	}

	if !c.Remove("chart_1") {
		t.Error("Remove(chart_1) = false")
	}
	if c.Remove("chart_1") {
		t.Error("second Remove(chart_1) = true")
	}
	if c.ArtifactCount != 2 || c.Find("chart_1") != nil {
		t.Errorf("chart_1 still present after remove")
	}
}

func TestCatalogSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	base := catalogFixture()

	if err := base.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(loaded.Artifacts) != 2 || loaded.Artifacts[1].ArtifactId != "table_1" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestFormatForPrompt(t *testing.T) {
	out := catalogFixture().FormatForPrompt()
	for _, want := range []string{"### Revenue", "`chart_1`", "finance, detail"} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt output missing %q:\n%s", want, out)
		}
	}
}

func TestStringListAcceptsStringOrArray(t *testing.T) {
	var block ContentBlock
	if err := json.Unmarshal([]byte(`{"block_type":"text","content":"one line"}`), &block); err != nil {
		t.Fatalf("single string: %v", err)
	}
	if len(block.Content) != 1 || block.Content[0] != "one line" {
		t.Errorf("content = %v", block.Content)
	}

	if err := json.Unmarshal([]byte(`{"block_type":"bullets","content":["a","b"]}`), &block); err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(block.Content) != 2 {
		t.Errorf("content = %v", block.Content)
	}
}
