package referral

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/clinic/internal/platform/apperr"
	"github.com/medconnect/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/referrals")
	g.GET("", h.ListReferrals)
	g.GET("/:id", h.GetReferral)

	// Doctor-scoped endpoints
	dg := g.Group("", auth.RequireDoctor())
	dg.GET("/sent", h.ListSent)
	dg.GET("/received", h.ListReceived)
	dg.GET("/inbox", h.GetInbox)
	dg.POST("", h.CreateReferral)
	dg.PATCH("/:id", h.UpdateReferral)
	dg.DELETE("/:id", h.DeleteReferral)
	dg.POST("/:id/accept", h.AcceptReferral)
	dg.POST("/:id/complete", h.CompleteReferral)
}

func (h *Handler) CreateReferral(c echo.Context) error {
	var req CreateReferralRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ref, err := h.svc.Create(c.Request().Context(), doctorID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ref)
}

func (h *Handler) GetReferral(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ref, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) ListReferrals(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateReferral(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateReferralRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ref, err := h.svc.Update(c.Request().Context(), id, doctorID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) DeleteReferral(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, doctorID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AcceptReferral(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ref, err := h.svc.Accept(c.Request().Context(), id, doctorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) CompleteReferral(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ref, err := h.svc.Complete(c.Request().Context(), id, doctorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) ListSent(c echo.Context) error {
	items, err := h.svc.Sent(c.Request().Context(), doctorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListReceived(c echo.Context) error {
	items, err := h.svc.Received(c.Request().Context(), doctorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetInbox(c echo.Context) error {
	inbox, err := h.svc.Inbox(c.Request().Context(), doctorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inbox)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid referral id")
	}
	return id, nil
}

// doctorID is zero when the caller has no doctor profile; RequireDoctor
// guards every route that depends on it.
func doctorID(c echo.Context) int64 {
	id, _ := auth.DoctorIDFromContext(c.Request().Context())
	return id
}
