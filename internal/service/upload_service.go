package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slideweaver-be/internal/model"
	"slideweaver-be/internal/pkg/serverutils"
	"slideweaver-be/pkg/deck"

	"github.com/google/uuid"
)

var allowedMimeTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

type IUploadService interface {
	ProcessUpload(session *model.Session, req *UploadRequest) (*deck.Artifact, error)
	RemoveArtifact(session *model.Session, artifactId string) error
	ListUploads(session *model.Session) []deck.Artifact
}

// UploadRequest carries one validated-to-be upload. Content is already in
// memory; nothing touches disk until every check passes.
type UploadRequest struct {
	Filename    string
	ContentType string
	Content     []byte
	Title       string
	Description string
	Tags        []string
}

type uploadService struct {
	maxSizeBytes      int64
	allowedExtensions map[string]bool
}

func NewUploadService(maxSizeMB int, allowedExtensions []string) IUploadService {
	extSet := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		extSet[strings.ToLower(ext)] = true
	}
	return &uploadService{
		maxSizeBytes:      int64(maxSizeMB) * 1024 * 1024,
		allowedExtensions: extSet,
	}
}

func (s *uploadService) validate(req *UploadRequest) error {
	if int64(len(req.Content)) > s.maxSizeBytes {
		return serverutils.NewUserError("file size %d exceeds maximum %d bytes", len(req.Content), s.maxSizeBytes)
	}

	if req.Filename != "" {
		ext := strings.ToLower(filepath.Ext(req.Filename))
		if !s.allowedExtensions[ext] {
			return serverutils.NewUserError("file extension %q not allowed", ext)
		}
	}

	if req.ContentType != "" && !allowedMimeTypes[req.ContentType] {
		return serverutils.NewUserError("content type %q not allowed", req.ContentType)
	}

	return nil
}

func (s *uploadService) ProcessUpload(session *model.Session, req *UploadRequest) (*deck.Artifact, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	artifactId := fmt.Sprintf("user_upload_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	ext := ".png"
	if req.Filename != "" {
		ext = strings.ToLower(filepath.Ext(req.Filename))
	}

	savePath := filepath.Join(session.UploadsDir(), artifactId+ext)
	if err := os.WriteFile(savePath, req.Content, 0644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if abs, err := filepath.Abs(savePath); err == nil {
		savePath = abs
	}

	title := req.Title
	if title == "" {
		if req.Filename != "" {
			title = strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename))
		} else {
			title = artifactId
		}
	}

	artifact := deck.Artifact{
		ArtifactId:   artifactId,
		ArtifactType: "plot", // uploads are displayed as images
		Title:        title,
		Description:  req.Description,
		Tags:         append(append([]string{}, req.Tags...), "user_upload"),
		SavePath:     savePath,
	}

	session.Catalog.Add(artifact)
	session.UploadedImages = append(session.UploadedImages, artifactId)

	return &artifact, nil
}

func (s *uploadService) RemoveArtifact(session *model.Session, artifactId string) error {
	// Deleting a base-catalog artifact through a session is a no-op failure.
	if !session.OwnsUpload(artifactId) {
		return serverutils.NewNotFoundError("image")
	}

	artifact := session.Catalog.Find(artifactId)
	if artifact == nil {
		return serverutils.NewNotFoundError("image")
	}

	if artifact.SavePath != "" {
		if err := os.Remove(artifact.SavePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove upload file: %w", err)
		}
	}

	session.Catalog.Remove(artifactId)
	for i, id := range session.UploadedImages {
		if id == artifactId {
			session.UploadedImages = append(session.UploadedImages[:i], session.UploadedImages[i+1:]...)
			break
		}
	}

	return nil
}

func (s *uploadService) ListUploads(session *model.Session) []deck.Artifact {
	uploads := make([]deck.Artifact, 0, len(session.UploadedImages))
	for _, artifact := range session.Catalog.Artifacts {
		if session.OwnsUpload(artifact.ArtifactId) {
			uploads = append(uploads, artifact)
		}
	}
	return uploads
}
