package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rasulmamishov/portfolio-api/internal/api/metrics"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// TestimonialHandler serves the public testimonial endpoints.
type TestimonialHandler struct {
	service ports.TestimonialService
	gate    ports.AccessGate
}

func NewTestimonialHandler(service ports.TestimonialService, gate ports.AccessGate) *TestimonialHandler {
	return &TestimonialHandler{service: service, gate: gate}
}

// List handles GET /api/testimonials. Only approved testimonials are
// returned unless all=true is sent by a caller that passes the admin gate;
// for anyone else the flag is ignored.
//
// @Summary      List testimonials
// @Tags         testimonials
// @Produce      json
// @Param        all  query     bool  false  "Include every status (admin token required)"
// @Success      200  {array}   domain.Testimonial
// @Failure      500  {object}  errorResponse
// @Router       /api/testimonials [get]
func (h *TestimonialHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if all, _ := strconv.ParseBool(c.QueryParam("all")); all {
		if _, err := h.gate.AuthorizeAdmin(ctx, c.Request().Header.Get(echo.HeaderAuthorization)); err == nil {
			items, err := h.service.ListAll(ctx)
			if err != nil {
				return err
			}
			return c.JSON(http.StatusOK, items)
		}
	}

	items, err := h.service.ListPublic(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Submit handles POST /api/testimonials. New testimonials await moderation.
//
// @Summary      Submit a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Param        body  body      submitTestimonialRequest  true  "Testimonial"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/testimonials [post]
func (h *TestimonialHandler) Submit(c echo.Context) error {
	var req submitTestimonialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.Submit(c.Request().Context(), ports.SubmitTestimonialInput{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Position: req.Position,
		Message:  req.Message,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}

	metrics.TestimonialsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, createdResponse{
		Message: "Testimonial submitted successfully! It will be reviewed before publication.",
		ID:      id,
	})
}
