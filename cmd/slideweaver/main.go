package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"slideweaver-be/internal/config"
	"slideweaver-be/internal/service"
	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/designer"
	"slideweaver-be/pkg/events"
	"slideweaver-be/pkg/llm/factory"
	"slideweaver-be/pkg/planner"
	"slideweaver-be/pkg/renderer"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	output := flag.String("o", "output", "output directory for the generated presentation")
	audience := flag.String("audience", "", "target audience for the presentation")
	tone := flag.String("tone", "", "presentation tone (executive, technical, teaching)")
	planOnly := flag.Bool("plan-only", false, "print the slide plan as JSON and exit without designing or building")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: slideweaver [flags] \"presentation request\"")
		flag.PrintDefaults()
		os.Exit(1)
	}
	userRequest := flag.Arg(0)

	cfg := config.Load()

	llmProvider, err := factory.NewProvider(cfg.Ai.Provider, cfg.Ai.Model, cfg.Ai.OllamaBaseURL, cfg.Ai.OpenAIAPIKey)
	if err != nil {
		fatal("failed to initialize LLM provider: %v", err)
	}

	catalog, err := deck.LoadCatalog(cfg.Paths.CatalogPath)
	if err != nil {
		color.Yellow("⚠ catalog unavailable (%v), continuing without artifacts", err)
		catalog = &deck.ArtifactCatalog{Artifacts: []deck.Artifact{}}
	}

	slidePlanner := planner.NewPlanner(llmProvider, log.New(os.Stderr, "", log.LstdFlags)).WithMaxRetries(cfg.Ai.MaxRetries)
	slideDesigner := designer.NewDesigner(llmProvider, log.New(os.Stderr, "", log.LstdFlags)).WithMaxRetries(cfg.Ai.MaxRetries)

	pptxRenderer := renderer.NewRenderer(cfg.Converter.Command, cfg.Converter.Script)
	pptxRenderer.Layout = cfg.Converter.Layout
	pptxRenderer.Timeout = time.Duration(cfg.Converter.TimeoutSeconds) * time.Second

	generation := service.NewGenerationService(slidePlanner, slideDesigner, pptxRenderer, nil)
	defer generation.Close()

	brief := deck.NewBrief(userRequest, *audience, *tone)
	ctx := context.Background()

	if *planOnly {
		plan, err := generation.PlanOnly(ctx, brief, catalog)
		if err != nil {
			fatal("planning failed: %v", err)
		}
		data, _ := json.MarshalIndent(plan, "", "  ")
		fmt.Println(string(data))
		return
	}

	runId := uuid.New().String()
	messages, err := generation.Subscribe(ctx, runId)
	if err != nil {
		fatal("failed to subscribe to progress events: %v", err)
	}

	done := make(chan *deck.PresentationResult, 1)
	go func() {
		done <- generation.Run(ctx, service.RunOptions{
			RunId:         runId,
			Brief:         brief,
			Catalog:       catalog,
			OutputBaseDir: *output,
		})
	}()

	for msg := range messages {
		var event events.ProgressEvent
		if err := event.Unmarshal(msg.Payload); err != nil {
			msg.Ack()
			continue
		}
		msg.Ack()
		printEvent(event)
		if event.Terminal() {
			break
		}
	}

	result := <-done
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	color.Green("\n✔ %s (%d slides)", result.Title, result.SlideCount)
	fmt.Println(result.PptxPath)
}

func printEvent(event events.ProgressEvent) {
	switch event.Event {
	case events.TypeCatalogLoaded:
		color.Cyan("• catalog loaded (%d artifacts)", event.ArtifactCount)
	case events.TypePlanningStarted:
		color.Cyan("• planning slides...")
	case events.TypePlanningComplete:
		color.Cyan("• plan ready: %q (%d slides)", event.Title, event.SlideCount)
	case events.TypeSlideDesigning:
		fmt.Printf("  [%d/%d] designing %s\n", event.Index, event.Total, event.SlideId)
	case events.TypeSlideComplete:
		if len(event.Warnings) > 0 {
			color.Yellow("  [%d/%d] %s done with warnings", event.Index, event.Total, event.SlideId)
		}
	case events.TypeSlideError:
		color.Red("  [%d/%d] %s failed: %s", event.Index, event.Total, event.SlideId, event.Error)
	case events.TypeBuildStarted:
		color.Cyan("• building PPTX...")
	case events.TypeGenerationError:
		color.Red("✘ generation failed: %s", event.Error)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
