package controller

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"slideweaver-be/internal/dto"
	"slideweaver-be/internal/pkg/logger"
	"slideweaver-be/internal/pkg/serverutils"
	"slideweaver-be/internal/service"
	"slideweaver-be/pkg/deck"
	"slideweaver-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	GenerateStream(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type generationController struct {
	sessionService    service.ISessionService
	generationService service.IGenerationService
	logger            logger.ILogger
}

func NewGenerationController(sessionService service.ISessionService, generationService service.IGenerationService, sysLogger logger.ILogger) IGenerationController {
	return &generationController{
		sessionService:    sessionService,
		generationService: generationService,
		logger:            sysLogger,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions/:id")
	h.Post("generate_stream", c.GenerateStream)
	h.Get("download/+", c.Download)
}

// GenerateStream runs the full pipeline and streams progress as SSE. The
// subscription is opened before the run starts so no events are dropped, and
// the run uses a background context so a dropped client does not abort it.
func (c *generationController) GenerateStream(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	runId := uuid.New().String()
	runCtx, cancel := context.WithCancel(context.Background())

	messages, err := c.generationService.Subscribe(runCtx, runId)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		c.generationService.Run(runCtx, service.RunOptions{
			RunId:         runId,
			Brief:         deck.NewBrief(req.UserRequest, req.Audience, req.Tone),
			Catalog:       session.Catalog.Copy(),
			OutputBaseDir: session.OutputDir(),
		})
	}()

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		disconnected := false
		for msg := range messages {
			fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			if err := w.Flush(); err != nil && !disconnected {
				// Client dropped; keep draining so the run finishes.
				disconnected = true
				if c.logger != nil {
					c.logger.Warn("generation", "SSE client disconnected", map[string]interface{}{
						"run_id": runId,
					})
				}
			}

			var event events.ProgressEvent
			terminal := event.Unmarshal(msg.Payload) == nil && event.Terminal()
			msg.Ack()

			if terminal {
				fmt.Fprintf(w, "data: %s\n\n", events.Sentinel)
				w.Flush()
				return
			}
		}
	}))

	return nil
}

// Download serves a generated file from the session's output tree. The
// requested path is confined to that tree.
func (c *generationController) Download(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel("/", "/"+ctx.Params("+"))
	if err != nil {
		return serverutils.NewUserError("invalid path")
	}

	outputDir, err := filepath.Abs(session.OutputDir())
	if err != nil {
		return err
	}
	fullPath := filepath.Join(outputDir, relPath)
	if fullPath != outputDir && !strings.HasPrefix(fullPath, outputDir+string(filepath.Separator)) {
		return serverutils.NewNotFoundError("file")
	}

	return ctx.Download(fullPath)
}
