package controller

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetPrompts(ctx *fiber.Ctx) error
	GetPrompt(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.SendChat)
	h.Get("prompts", c.GetPrompts)
	h.Get("prompts/:id", c.GetPrompt)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat response", res))
}

func (c *chatController) GetPrompts(ctx *fiber.Ctx) error {
	prompts := c.chatService.GetPrompts(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Available prompts", prompts))
}

func (c *chatController) GetPrompt(ctx *fiber.Ctx) error {
	prompt, err := c.chatService.GetPrompt(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt", prompt))
}
