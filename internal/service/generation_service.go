package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slideweaver-be/internal/pkg/logger"
	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/events"
	"slideweaver-be/pkg/renderer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SlidePlanner produces the slide plan for a run.
type SlidePlanner interface {
	Plan(ctx context.Context, brief deck.Brief, catalog *deck.ArtifactCatalog) (*deck.SlidePlan, error)
}

// SlideDesigner turns one planned slide into HTML.
type SlideDesigner interface {
	DesignSlide(ctx context.Context, slide deck.SlideSpec, theme deck.Theme, rules deck.GlobalRules, catalog *deck.ArtifactCatalog) (*deck.DesignResult, error)
}

// DeckBuilder converts a directory of slide HTML into a PPTX.
type DeckBuilder interface {
	Build(ctx context.Context, slidesDir, outputPath string) *renderer.BuildOutcome
}

type IGenerationService interface {
	// Run executes the full pipeline and publishes progress events for the
	// run's topic. The returned result mirrors the final event.
	Run(ctx context.Context, opts RunOptions) *deck.PresentationResult
	// PlanOnly runs the planning stage without designing or building.
	PlanOnly(ctx context.Context, brief deck.Brief, catalog *deck.ArtifactCatalog) (*deck.SlidePlan, error)
	// Subscribe returns the progress stream for a run. Call before Run so no
	// events are dropped.
	Subscribe(ctx context.Context, runId string) (<-chan *message.Message, error)
	Close() error
}

// RunOptions carries everything one generation run needs.
type RunOptions struct {
	RunId string
	Brief deck.Brief
	// Catalog is the session's artifact catalog snapshot for this run.
	Catalog *deck.ArtifactCatalog
	// OutputBaseDir is where the run directory is created, typically the
	// session's output directory.
	OutputBaseDir string
}

type generationService struct {
	planner  SlidePlanner
	designer SlideDesigner
	builder  DeckBuilder
	bus      *gochannel.GoChannel
	logger   logger.ILogger
}

func NewGenerationService(planner SlidePlanner, designer SlideDesigner, builder DeckBuilder, sysLogger logger.ILogger) IGenerationService {
	bus := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})

	return &generationService{
		planner:  planner,
		designer: designer,
		builder:  builder,
		bus:      bus,
		logger:   sysLogger,
	}
}

func progressTopic(runId string) string {
	return "generation.progress." + runId
}

func (s *generationService) Subscribe(ctx context.Context, runId string) (<-chan *message.Message, error) {
	return s.bus.Subscribe(ctx, progressTopic(runId))
}

func (s *generationService) Close() error {
	return s.bus.Close()
}

func (s *generationService) publish(runId string, event events.ProgressEvent) {
	msg := message.NewMessage(watermill.NewUUID(), event.Marshal())
	if err := s.bus.Publish(progressTopic(runId), msg); err != nil && s.logger != nil {
		s.logger.Error("generation", "failed to publish progress event", map[string]interface{}{
			"run_id": runId,
			"event":  event.Event,
			"error":  err.Error(),
		})
	}
}

func (s *generationService) fail(runId string, result *deck.PresentationResult, errMsg string) *deck.PresentationResult {
	result.Success = false
	result.Errors = append(result.Errors, errMsg)
	if s.logger != nil {
		s.logger.Error("generation", "run failed", map[string]interface{}{
			"run_id": runId,
			"error":  errMsg,
		})
	}
	s.publish(runId, events.ProgressEvent{
		Event: events.TypeGenerationError,
		Error: errMsg,
	})
	return result
}

func (s *generationService) PlanOnly(ctx context.Context, brief deck.Brief, catalog *deck.ArtifactCatalog) (*deck.SlidePlan, error) {
	return s.planner.Plan(ctx, brief, catalog)
}

func (s *generationService) Run(ctx context.Context, opts RunOptions) *deck.PresentationResult {
	result := &deck.PresentationResult{
		Assumptions: opts.Brief.Assumptions,
	}

	artifactCount := 0
	if opts.Catalog != nil {
		artifactCount = len(opts.Catalog.Artifacts)
	}

	s.publish(opts.RunId, events.ProgressEvent{Event: events.TypeBriefCreated, Status: "Brief created"})
	s.publish(opts.RunId, events.ProgressEvent{Event: events.TypeCatalogLoaded, ArtifactCount: artifactCount})
	s.publish(opts.RunId, events.ProgressEvent{Event: events.TypePlanningStarted, Status: "Generating slide plan"})

	plan, err := s.planner.Plan(ctx, opts.Brief, opts.Catalog)
	if err != nil {
		return s.fail(opts.RunId, result, err.Error())
	}

	result.Title = plan.Title
	s.publish(opts.RunId, events.ProgressEvent{
		Event:      events.TypePlanningComplete,
		Title:      plan.Title,
		SlideCount: len(plan.Slides),
	})

	runDir := filepath.Join(opts.OutputBaseDir, fmt.Sprintf("presentation_%s", time.Now().Format("20060102_150405")))
	slidesDir := filepath.Join(runDir, "slides")
	buildDir := filepath.Join(runDir, "build")
	for _, dir := range []string{runDir, slidesDir, buildDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return s.fail(opts.RunId, result, fmt.Sprintf("failed to create run directory: %v", err))
		}
	}
	result.OutputDir = runDir

	if err := savePlan(plan, filepath.Join(runDir, "deck.json")); err != nil && s.logger != nil {
		// The saved plan is diagnostic output only; generation continues.
		s.logger.Warn("generation", "failed to save slide plan", map[string]interface{}{
			"run_id": opts.RunId,
			"error":  err.Error(),
		})
	}

	var warnings []string
	successful := 0
	total := len(plan.Slides)

	for i, slide := range plan.Slides {
		s.publish(opts.RunId, events.ProgressEvent{
			Event:   events.TypeSlideDesigning,
			Index:   i + 1,
			Total:   total,
			SlideId: slide.SlideId,
			Title:   slide.Title,
		})

		design, err := s.designer.DesignSlide(ctx, slide, plan.Theme, plan.GlobalRules, opts.Catalog)
		if err != nil {
			msg := fmt.Sprintf("slide %s: %v", slide.SlideId, err)
			result.Errors = append(result.Errors, msg)
			s.publish(opts.RunId, events.ProgressEvent{
				Event:   events.TypeSlideError,
				Index:   i + 1,
				Total:   total,
				SlideId: slide.SlideId,
				Error:   msg,
			})
			continue
		}

		if !design.ValidationPassed {
			// Imperfect HTML still ships; the converter is tolerant of most
			// validation misses.
			for _, vErr := range design.ValidationErrors {
				warnings = append(warnings, fmt.Sprintf("slide %s: %s", slide.SlideId, vErr))
			}
		}

		filename := fmt.Sprintf("%02d_%s.html", slide.SlideIndex, slide.SlideId)
		if err := os.WriteFile(filepath.Join(slidesDir, filename), []byte(design.HTMLContent), 0644); err != nil {
			msg := fmt.Sprintf("slide %s: failed to write HTML: %v", slide.SlideId, err)
			result.Errors = append(result.Errors, msg)
			s.publish(opts.RunId, events.ProgressEvent{
				Event:   events.TypeSlideError,
				Index:   i + 1,
				Total:   total,
				SlideId: slide.SlideId,
				Error:   msg,
			})
			continue
		}

		successful++
		s.publish(opts.RunId, events.ProgressEvent{
			Event:    events.TypeSlideComplete,
			Index:    i + 1,
			Total:    total,
			SlideId:  slide.SlideId,
			Success:  design.ValidationPassed,
			Warnings: design.ValidationErrors,
		})
	}

	result.SlideCount = successful
	result.Limitations = warnings

	if successful == 0 {
		return s.fail(opts.RunId, result, "no slides were generated successfully")
	}

	s.publish(opts.RunId, events.ProgressEvent{Event: events.TypeBuildStarted, Status: "Building PPTX"})

	pptxFilename := renderer.SafeFilename(plan.Title)
	pptxPath := filepath.Join(buildDir, pptxFilename)
	outcome := s.builder.Build(ctx, slidesDir, pptxPath)
	if !outcome.Success {
		result.Errors = append(result.Errors, outcome.Errors...)
		return s.fail(opts.RunId, result, "PPTX build failed")
	}

	result.Success = true
	result.PptxPath = outcome.OutputPath

	downloadPath := filepath.Join(filepath.Base(runDir), "build", pptxFilename)

	if s.logger != nil {
		s.logger.Info("generation", "run complete", map[string]interface{}{
			"run_id":      opts.RunId,
			"title":       plan.Title,
			"slide_count": successful,
			"pptx_path":   outcome.OutputPath,
		})
	}

	s.publish(opts.RunId, events.ProgressEvent{
		Event:        events.TypeGenerationComplete,
		Success:      true,
		Title:        plan.Title,
		SlideCount:   successful,
		DownloadPath: downloadPath,
		PptxFilename: pptxFilename,
		Warnings:     warnings,
	})

	return result
}

func savePlan(plan *deck.SlidePlan, path string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
