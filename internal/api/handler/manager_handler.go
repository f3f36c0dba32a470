package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportsfed/federation-api/internal/core/ports"
)

// ManagerHandler exposes the administrator-only club-manager lifecycle.
type ManagerHandler struct {
	managerService ports.ManagerService
}

func NewManagerHandler(managerService ports.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// Provision handles POST /v1/managers.
//
// @Summary      Provision a club manager with a temporary password
// @Tags         managers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionManagerRequest  true  "Manager details"
// @Success      201   {object}  provisionManagerResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/managers [post]
func (h *ManagerHandler) Provision(c echo.Context) error {
	var req provisionManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	provisioned, err := h.managerService.Provision(c.Request().Context(), ports.ProvisionManagerInput{
		Email:  req.Email,
		Name:   req.Name,
		ClubID: req.ClubID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, provisionManagerResponse{
		Account:           provisioned.Account,
		ClubName:          provisioned.ClubName,
		TemporaryPassword: provisioned.TemporaryPassword,
	})
}

// Get handles GET /v1/managers/:id.
//
// @Summary      Get a club manager's public summary
// @Tags         managers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  managerResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/managers/{id} [get]
func (h *ManagerHandler) Get(c echo.Context) error {
	summary, err := h.managerService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, managerResponse{Account: *summary})
}

// Regenerate handles POST /v1/managers/:id/regenerate.
//
// @Summary      Regenerate a manager's temporary password
// @Tags         managers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  regenerateResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/managers/{id}/regenerate [post]
func (h *ManagerHandler) Regenerate(c echo.Context) error {
	tempPassword, err := h.managerService.Regenerate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regenerateResponse{TemporaryPassword: tempPassword})
}

// Activate handles POST /v1/managers/:id/activate.
//
// @Summary      Re-enable logins for a manager account
// @Tags         managers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/managers/{id}/activate [post]
func (h *ManagerHandler) Activate(c echo.Context) error {
	if err := h.managerService.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "manager activated"})
}

// Deactivate handles POST /v1/managers/:id/deactivate. Already-issued session
// tokens stay valid until expiry; only future logins are blocked.
//
// @Summary      Block future logins for a manager account
// @Tags         managers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/managers/{id}/deactivate [post]
func (h *ManagerHandler) Deactivate(c echo.Context) error {
	if err := h.managerService.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "manager deactivated"})
}
