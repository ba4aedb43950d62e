package controller

import (
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	PurgeBlobs(ctx *fiber.Ctx) error
	IngestionLog(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService    service.IAdminService
	documentService service.IDocumentService
}

func NewAdminController(adminService service.IAdminService, documentService service.IDocumentService) IAdminController {
	return &adminController{
		adminService:    adminService,
		documentService: documentService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("maintenance/purge", c.PurgeBlobs)
	h.Get("ingestion-log", c.IngestionLog)
}

// PurgeBlobs wipes the whole content store. Sessions keep their references;
// chats against purged documents report them as unavailable.
func (c *adminController) PurgeBlobs(ctx *fiber.Ctx) error {
	if err := c.documentService.PurgeAllBlobs(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("All blobs purged", nil))
}

func (c *adminController) IngestionLog(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	res, err := c.adminService.RecentIngestions(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent ingestions", res))
}
