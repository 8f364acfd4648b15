package controller

import (
	"slideweaver-be/internal/dto"
	"slideweaver-be/internal/pkg/serverutils"
	"slideweaver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Catalog(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Get(":id/catalog", c.Catalog)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Create()
	if err != nil {
		return err
	}

	res := dto.CreateSessionResponse{
		SessionId: session.Id,
		CreatedAt: session.CreatedAt,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	res := dto.SessionInfoResponse{
		SessionId:      session.Id,
		CreatedAt:      session.CreatedAt,
		UploadedImages: len(session.UploadedImages),
		TotalArtifacts: len(session.Catalog.Artifacts),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.sessionService.Delete(ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", fiber.Map{}))
}

func (c *sessionController) Catalog(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get catalog", session.Catalog))
}
