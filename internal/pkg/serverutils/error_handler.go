package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// StatusError is implemented by domain errors that know their HTTP status.
type StatusError interface {
	error
	HTTPStatus() int
}

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return ctx.Status(fiber.StatusUnprocessableEntity).
			JSON(ErrorResponseWithData(fiber.StatusUnprocessableEntity, "Validation failed", verr.Fields))
	}

	var serr StatusError
	if errors.As(err, &serr) {
		return ctx.Status(serr.HTTPStatus()).JSON(ErrorResponse(serr.HTTPStatus(), serr.Error()))
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
	}

	log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
