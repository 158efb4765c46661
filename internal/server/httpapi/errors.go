package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON body of every non-2xx response.
type ErrorBody struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorKind struct {
	err     error
	status  int
	kind    string
	message string
}

var errorKinds = []errorKind{
	{common.ErrDuplicateAccount, fiber.StatusBadRequest, "DuplicateAccount", "Email already registered"},
	{common.ErrInvalidOtp, fiber.StatusBadRequest, "InvalidOtp", "Invalid verification code"},
	{common.ErrUnknownAccount, fiber.StatusUnauthorized, "UnknownAccount", "User not found"},
	{common.ErrAccountNotVerified, fiber.StatusUnauthorized, "AccountNotVerified", "Please verify your email first"},
	{common.ErrPasswordTooLong, fiber.StatusBadRequest, "PasswordTooLong", "Password is too long (max 72 bytes)"},
	{common.ErrInvalidCredentials, fiber.StatusUnauthorized, "InvalidCredentials", "Invalid password"},
	{common.ErrAuthenticationInternal, fiber.StatusInternalServerError, "AuthenticationInternalError", "Authentication failed"},
	{common.ErrMalformedRequest, fiber.StatusBadRequest, "MalformedRequest", ""},
	{common.ErrorNotFound, fiber.StatusNotFound, "NotFound", "Not found"},
}

func classify(err error) ErrorBody {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			msg := k.message
			if msg == "" {
				msg = err.Error()
			}
			return ErrorBody{Code: k.status, Error: k.kind, Message: msg}
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorBody{Code: fe.Code, Error: "HTTPError", Message: fe.Message}
	}

	return ErrorBody{Code: fiber.StatusInternalServerError, Error: "InternalError", Message: "internal error"}
}

func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	body := classify(err)

	var be *bodyError
	if errors.As(err, &be) {
		s.logger.Warn(c.UserContext(), "invalid request body",
			"method", c.Method(), "path", c.Path(), "error", be.cause.Error())
	}

	if body.Code >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	return c.Status(body.Code).JSON(body)
}
