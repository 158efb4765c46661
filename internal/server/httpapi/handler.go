package httpapi

import (
	"github.com/dmitrijs2005/eventportal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func (s *HTTPServer) signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := s.accounts.Signup(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.UserContext(), "Signed up", "email", req.Email)
	return c.JSON(MessageResponse{Message: msg})
}

func (s *HTTPServer) verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := s.accounts.Verify(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: msg})
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := s.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// listEvents also accepts the legacy "topluluk" query parameter.
func (s *HTTPServer) listEvents(c *fiber.Ctx) error {
	community := c.Query("community", c.Query("topluluk"))

	list, err := s.events.List(c.UserContext(), community, c.Query("q"))
	if err != nil {
		return err
	}

	out := make([]EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEventResponse(e))
	}
	return c.JSON(out)
}

func (s *HTTPServer) createEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := s.events.Create(c.UserContext(), services.CreateEventInput{
		Community: req.Community,
		Name:      req.Name,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": e.ID})
}

func (s *HTTPServer) renameEvent(c *fiber.Ctx) error {
	var req RenameEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := s.events.Rename(c.UserContext(), c.Params("id"), req.Name); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: "Event updated"})
}

func (s *HTTPServer) deleteEvent(c *fiber.Ctx) error {
	if err := s.events.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (s *HTTPServer) presignImage(c *fiber.Ctx) error {
	var req ImageUploadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	up, err := s.events.PresignImageUpload(c.UserContext(), req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(up)
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	if err := s.store.Ping(c.UserContext()); err != nil {
		s.logger.Warn(c.UserContext(), "store ping failed", "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "ERROR", "store": "disconnected"})
	}
	return c.JSON(fiber.Map{"status": "OK", "store": "connected"})
}
