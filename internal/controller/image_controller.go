package controller

import (
	"io"
	"strings"

	"slideweaver-be/internal/dto"
	"slideweaver-be/internal/pkg/serverutils"
	"slideweaver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	File(ctx *fiber.Ctx) error
}

type imageController struct {
	sessionService service.ISessionService
	uploadService  service.IUploadService
}

func NewImageController(sessionService service.ISessionService, uploadService service.IUploadService) IImageController {
	return &imageController{
		sessionService: sessionService,
		uploadService:  uploadService,
	}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions/:id/images")
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Delete(":artifact_id", c.Delete)
	h.Get(":artifact_id/file", c.File)
}

func (c *imageController) Upload(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewUserError("missing file field")
	}

	var req dto.UploadImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var tags []string
	for _, tag := range strings.Split(req.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	artifact, err := c.uploadService.ProcessUpload(session, &service.UploadRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
		Title:       req.Title,
		Description: req.Description,
		Tags:        tags,
	})
	if err != nil {
		return err
	}

	if err := c.sessionService.SaveCatalog(session); err != nil {
		return err
	}

	res := dto.UploadImageResponse{
		ArtifactId: artifact.ArtifactId,
		Title:      artifact.Title,
		SavePath:   artifact.SavePath,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload image", res))
}

func (c *imageController) List(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	uploads := c.uploadService.ListUploads(session)
	items := make([]dto.ImageListItem, 0, len(uploads))
	for _, artifact := range uploads {
		items = append(items, dto.ImageListItem{
			ArtifactId:  artifact.ArtifactId,
			Title:       artifact.Title,
			Description: artifact.Description,
			SavePath:    artifact.SavePath,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list images", items))
}

func (c *imageController) Delete(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	if err := c.uploadService.RemoveArtifact(session, ctx.Params("artifact_id")); err != nil {
		return err
	}

	if err := c.sessionService.SaveCatalog(session); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete image", fiber.Map{}))
}

func (c *imageController) File(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return err
	}

	artifactId := ctx.Params("artifact_id")
	if !session.OwnsUpload(artifactId) {
		return serverutils.NewNotFoundError("image")
	}

	artifact := session.Catalog.Find(artifactId)
	if artifact == nil {
		return serverutils.NewNotFoundError("image")
	}
	return ctx.SendFile(artifact.SavePath)
}
