package controller

import (
	"io"

	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("upload", c.Upload)
	h.Get("", c.List)
	h.Delete("session", c.ClearSession)
	h.Delete(":filename", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}

	res, err := c.documentService.Upload(ctx.Context(), sessionID, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document uploaded", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	res, err := c.documentService.List(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)
	filename := ctx.Params("filename")

	if err := c.documentService.Delete(ctx.Context(), sessionID, filename); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Document removed", nil))
}

func (c *documentController) ClearSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	if err := c.documentService.ClearSession(ctx.Context(), sessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}
