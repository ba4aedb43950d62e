package serverutils

import (
	"errors"

	"ai-docchat-be/pkg/contentstore"
	"ai-docchat-be/pkg/contextbuilder"
	"ai-docchat-be/pkg/extract"
	"ai-docchat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts domain errors bubbling out of controllers
// into a uniform JSON error envelope. Upstream provider failures map to 502,
// exhausted retries and unavailable storage to 503, everything the caller
// can fix to 400/404.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := statusForError(err)
		return ctx.Status(status).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
}

func statusForError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	var extractionErr *extract.ExtractionError
	var invalidErr *llm.InvalidRequestError
	var providerErr *llm.ProviderError
	var exhaustedErr *llm.RetryExhaustedError
	var storageErr *contentstore.StorageError

	switch {
	case errors.As(err, &extractionErr),
		errors.As(err, &invalidErr),
		errors.Is(err, llm.ErrUnsupportedProvider),
		errors.Is(err, contextbuilder.ErrNoContent):
		return fiber.StatusBadRequest
	case errors.Is(err, contentstore.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &exhaustedErr):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &providerErr):
		return fiber.StatusBadGateway
	case errors.As(err, &storageErr):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
