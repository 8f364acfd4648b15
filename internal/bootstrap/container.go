package bootstrap

import (
	"log"
	"time"

	"slideweaver-be/internal/config"
	"slideweaver-be/internal/controller"
	"slideweaver-be/internal/pkg/logger"
	"slideweaver-be/internal/service"
	"slideweaver-be/pkg/designer"
	"slideweaver-be/pkg/llm/factory"
	"slideweaver-be/pkg/planner"
	"slideweaver-be/pkg/renderer"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	ImageController      controller.IImageController
	GenerationController controller.IGenerationController

	// Exposed for main.go shutdown
	GenerationService service.IGenerationService
	Logger            logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 3. Pipeline stages
	slidePlanner := planner.NewPlanner(llmProvider, log.Default()).WithMaxRetries(cfg.Ai.MaxRetries)
	slideDesigner := designer.NewDesigner(llmProvider, log.Default()).WithMaxRetries(cfg.Ai.MaxRetries)

	pptxRenderer := renderer.NewRenderer(cfg.Converter.Command, cfg.Converter.Script)
	pptxRenderer.Layout = cfg.Converter.Layout
	pptxRenderer.Timeout = time.Duration(cfg.Converter.TimeoutSeconds) * time.Second

	// 4. Services
	sessionService, err := service.NewSessionService(
		cfg.Paths.SessionsDir,
		cfg.Paths.CatalogPath,
		time.Duration(cfg.App.SessionMaxAgeHours)*time.Hour,
		sysLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize session service: %v", err)
	}

	uploadService := service.NewUploadService(cfg.Uploads.MaxImageSizeMB, cfg.Uploads.AllowedExtensions)

	// Generation traffic gets its own log file so run diagnostics do not
	// drown the application log.
	generationLogger := logger.NewIsolatedLogger("logs/generation.log")
	generationService := service.NewGenerationService(slidePlanner, slideDesigner, pptxRenderer, generationLogger)

	// 5. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		ImageController:      controller.NewImageController(sessionService, uploadService),
		GenerationController: controller.NewGenerationController(sessionService, generationService, sysLogger),
		GenerationService:    generationService,
		Logger:               sysLogger,
	}
}
