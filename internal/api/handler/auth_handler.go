package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportsfed/federation-api/internal/core/ports"
)

// AuthHandler exposes the two-phase login protocol.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// InitiateLogin handles POST /v1/auth/login — phase 1 of the login.
//
// @Summary      Check credentials and email a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      initiateLoginRequest  true  "Login credentials"
// @Success      200   {object}  initiateLoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) InitiateLogin(c echo.Context) error {
	var req initiateLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	challenge, err := h.authService.InitiateLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if challenge.RequiresPasswordReset {
		return c.JSON(http.StatusOK, initiateLoginResponse{
			RequiresPasswordReset: true,
			AccountID:             challenge.AccountID,
		})
	}

	return c.JSON(http.StatusOK, initiateLoginResponse{
		CodeID:      challenge.CodeID,
		MaskedEmail: challenge.MaskedEmail,
	})
}

// CompleteLogin handles POST /v1/auth/verify — phase 2 of the login.
//
// @Summary      Verify the emailed code and issue a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      completeLoginRequest  true  "Code id and verification code"
// @Success      200   {object}  completeLoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/verify [post]
func (h *AuthHandler) CompleteLogin(c echo.Context) error {
	var req completeLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.CompleteLogin(c.Request().Context(), req.CodeID, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, completeLoginResponse{
		Token:   result.Token,
		Account: result.Account,
	})
}

// SetPassword handles POST /v1/auth/password — the forced first-password-set
// of a club manager holding a temporary password.
//
// @Summary      Exchange a temporary password for a permanent one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      setPasswordRequest  true  "Temporary and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/password [post]
func (h *AuthHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.SetPassword(c.Request().Context(), req.AccountID, req.TemporaryPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password set"})
}
