package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rasulmamishov/portfolio-api/internal/api/metrics"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// AdminHandler serves /api/admin. Every route is mounted behind
// middleware.RequireAdmin.
type AdminHandler struct {
	admin        ports.AdminService
	testimonials ports.TestimonialService
	contacts     ports.ContactService
}

func NewAdminHandler(admin ports.AdminService, testimonials ports.TestimonialService, contacts ports.ContactService) *AdminHandler {
	return &AdminHandler{admin: admin, testimonials: testimonials, contacts: contacts}
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Dashboard counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// ListTestimonials handles GET /api/admin/testimonials.
//
// @Summary      List testimonials in every status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Testimonial
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/testimonials [get]
func (h *AdminHandler) ListTestimonials(c echo.Context) error {
	items, err := h.testimonials.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateTestimonialStatus handles PUT /api/admin/testimonials/:id.
//
// @Summary      Moderate a testimonial
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Testimonial id"
// @Param        body  body      statusRequest  true  "pending, approved or rejected"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/testimonials/{id} [put]
func (h *AdminHandler) UpdateTestimonialStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.testimonials.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}

	metrics.TestimonialsModeratedTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Testimonial updated successfully"})
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/:id.
//
// @Summary      Delete a testimonial
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Testimonial id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/testimonials/{id} [delete]
func (h *AdminHandler) DeleteTestimonial(c echo.Context) error {
	if err := h.testimonials.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.TestimonialsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Testimonial deleted successfully"})
}

// ListMessages handles GET /api/admin/messages.
//
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ContactMessage
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/messages [get]
func (h *AdminHandler) ListMessages(c echo.Context) error {
	items, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateMessageStatus handles PUT /api/admin/messages/:id and its PATCH
// alias under /api/admin/contact-messages/:id.
//
// @Summary      Mark a contact message read or unread
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Message id"
// @Param        body  body      statusRequest  true  "unread or read"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/messages/{id} [put]
func (h *AdminHandler) UpdateMessageStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.contacts.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Message updated successfully"})
}

// ListUsers handles GET /api/admin/users. Password hashes are never included.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
