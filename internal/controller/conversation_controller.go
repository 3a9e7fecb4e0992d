package controller

import (
	"fmt"
	"path/filepath"

	"invention-disclosure-be/internal/dto"
	"invention-disclosure-be/internal/pkg/serverutils"
	"invention-disclosure-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	documentService     service.IDocumentService
	uploadsDir          string
}

func NewConversationController(
	conversationService service.IConversationService,
	documentService service.IDocumentService,
	uploadsDir string,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		documentService:     documentService,
		uploadsDir:          uploadsDir,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("start", c.Start)
	h.Post("chat", c.SendChat)
	h.Get(":id/history", c.GetHistory)
	h.Post(":id/upload", c.Upload)
	h.Post(":id/submit", c.Submit)
	h.Delete(":id", c.End)
}

func (c *conversationController) Start(ctx *fiber.Ctx) error {
	var req dto.StartConversationRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.conversationService.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start conversation", res))
}

func (c *conversationController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *conversationController) GetHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	res, err := c.conversationService.GetHistory(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *conversationController) Upload(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	fileHeaders := form.File["file"]
	if len(fileHeaders) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}

	results := make([]*dto.UploadFileResponse, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		// Stored under a per-conversation prefix so re-uploads of the same
		// name from different sessions never collide.
		savedName := fmt.Sprintf("%s_%s", id, filepath.Base(fileHeader.Filename))
		savedPath := filepath.Join(c.uploadsDir, savedName)
		if err := ctx.SaveFile(fileHeader, savedPath); err != nil {
			return err
		}

		res, err := c.conversationService.QueueFileEmbedding(ctx.Context(), id, fileHeader.Filename, savedPath)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue files", results))
}

func (c *conversationController) Submit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	var req dto.SubmitDisclosureRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
	}

	res, err := c.documentService.Submit(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit disclosure", res))
}

func (c *conversationController) End(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	if err := c.conversationService.End(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end conversation", nil))
}
