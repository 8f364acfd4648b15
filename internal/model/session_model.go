package model

import (
	"path/filepath"
	"time"

	"slideweaver-be/pkg/deck"
)

// Session is one user's isolated workspace: a private directory tree and a
// catalog that starts as a copy of the base catalog and diverges from it.
type Session struct {
	Id             string                `json:"id"`
	CreatedAt      time.Time             `json:"created_at"`
	SessionDir     string                `json:"session_dir"`
	Catalog        *deck.ArtifactCatalog `json:"catalog"`
	UploadedImages []string              `json:"uploaded_images"`
}

// UploadsDir is where uploaded images land.
func (s *Session) UploadsDir() string {
	return filepath.Join(s.SessionDir, "uploads")
}

// OutputDir is where generated presentations land.
func (s *Session) OutputDir() string {
	return filepath.Join(s.SessionDir, "output")
}

// CatalogPath is the on-disk copy of the session catalog.
func (s *Session) CatalogPath() string {
	return filepath.Join(s.SessionDir, "catalog.json")
}

// OwnsUpload reports whether the artifact was uploaded in this session.
// Base-catalog artifacts are never deletable through a session.
func (s *Session) OwnsUpload(artifactId string) bool {
	for _, id := range s.UploadedImages {
		if id == artifactId {
			return true
		}
	}
	return false
}
