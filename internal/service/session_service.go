package service

import (
	"os"
	"path/filepath"
	"time"

	"slideweaver-be/internal/model"
	"slideweaver-be/internal/pkg/logger"
	"slideweaver-be/internal/pkg/serverutils"
	"slideweaver-be/pkg/deck"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ISessionService manages isolated per-user workspaces. Sessions live in a
// TTL registry: explicit deletion and the age sweep both tear the workspace
// down through the same eviction path.
type ISessionService interface {
	Create() (*model.Session, error)
	Get(sessionId string) (*model.Session, error)
	Delete(sessionId string) error
	SaveCatalog(session *model.Session) error
	Count() int
}

type sessionService struct {
	baseDir     string
	baseCatalog *deck.ArtifactCatalog
	registry    *gocache.Cache
	logger      logger.ILogger
}

func NewSessionService(baseDir, baseCatalogPath string, maxAge time.Duration, sysLogger logger.ILogger) (ISessionService, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	baseCatalog, err := deck.LoadCatalog(baseCatalogPath)
	if err != nil {
		// Missing base catalog is not fatal: sessions start empty and fill
		// up from uploads.
		if sysLogger != nil {
			sysLogger.Warn("session", "base catalog unavailable, starting empty", map[string]interface{}{
				"path":  baseCatalogPath,
				"error": err.Error(),
			})
		}
		baseCatalog = &deck.ArtifactCatalog{ArtifactCount: 0, Artifacts: []deck.Artifact{}}
	}

	// The cache janitor runs the age-based sweep; eviction removes the
	// session's directory tree.
	registry := gocache.New(maxAge, 10*time.Minute)

	s := &sessionService{
		baseDir:     baseDir,
		baseCatalog: baseCatalog,
		registry:    registry,
		logger:      sysLogger,
	}

	registry.OnEvicted(func(sessionId string, value interface{}) {
		session, ok := value.(*model.Session)
		if !ok {
			return
		}
		if err := os.RemoveAll(session.SessionDir); err != nil && s.logger != nil {
			s.logger.Error("session", "failed to remove session directory", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	})

	return s, nil
}

func (s *sessionService) Create() (*model.Session, error) {
	sessionId := uuid.New().String()
	sessionDir := filepath.Join(s.baseDir, sessionId)

	for _, dir := range []string{sessionDir, filepath.Join(sessionDir, "uploads"), filepath.Join(sessionDir, "output")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	session := &model.Session{
		Id:             sessionId,
		CreatedAt:      time.Now(),
		SessionDir:     sessionDir,
		Catalog:        s.baseCatalog.Copy(),
		UploadedImages: []string{},
	}

	if err := s.SaveCatalog(session); err != nil {
		os.RemoveAll(sessionDir)
		return nil, err
	}

	s.registry.SetDefault(sessionId, session)

	if s.logger != nil {
		s.logger.Info("session", "session created", map[string]interface{}{
			"session_id": sessionId,
			"artifacts":  session.Catalog.ArtifactCount,
		})
	}

	return session, nil
}

func (s *sessionService) Get(sessionId string) (*model.Session, error) {
	value, found := s.registry.Get(sessionId)
	if !found {
		return nil, serverutils.NewNotFoundError("session")
	}
	return value.(*model.Session), nil
}

func (s *sessionService) Delete(sessionId string) error {
	if _, found := s.registry.Get(sessionId); !found {
		return serverutils.NewNotFoundError("session")
	}
	// OnEvicted removes the directory tree.
	s.registry.Delete(sessionId)
	return nil
}

func (s *sessionService) SaveCatalog(session *model.Session) error {
	return session.Catalog.Save(session.CatalogPath())
}

func (s *sessionService) Count() int {
	return s.registry.ItemCount()
}
