package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rasulmamishov/portfolio-api/internal/api/metrics"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Contact message"
// @Success      200   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.ContactMessagesReceivedTotal.Inc()
	return c.JSON(http.StatusOK, createdResponse{
		Message: "Message sent successfully! I will get back to you soon.",
		ID:      id,
	})
}
