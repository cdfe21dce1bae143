package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/model"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

// UserAdminHandler implements the admin-only user management surface:
// listing accounts, promoting or demoting roles and deactivating
// accounts.  Deactivated users keep their rows and tickets but can no
// longer log in.
type UserAdminHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewUserAdminHandler(users *repository.UserRepo, tokens *repository.TokenRepo) *UserAdminHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewUserAdminHandler")
	}
	return &UserAdminHandler{Users: users, Tokens: tokens}
}

// List handles GET /api/v1/admin/users.
func (h *UserAdminHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"id":        u.ID,
			"email":     u.Email,
			"role_id":   u.RoleID,
			"role_name": model.RoleName(u.RoleID),
			"is_active": u.IsActive,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type setRoleReq struct {
	RoleID uint8 `json:"role_id"`
}

// SetRole handles PUT /api/v1/admin/users/:id/role.
func (h *UserAdminHandler) SetRole(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoleID < model.RoleCustomer || req.RoleID > model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	if err := h.Users.SetRole(c.Request().Context(), id, req.RoleID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	// force re-login so the new role lands in fresh claims
	if err := h.Tokens.RevokeAllForUser(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("revoke tokens for user %d: %v", id, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated"})
}

type setActiveReq struct {
	Active bool `json:"active"`
}

// SetActive handles PUT /api/v1/admin/users/:id/active.
func (h *UserAdminHandler) SetActive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Users.SetActive(c.Request().Context(), id, req.Active); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !req.Active {
		if err := h.Tokens.RevokeAllForUser(c.Request().Context(), id); err != nil {
			c.Logger().Errorf("revoke tokens for user %d: %v", id, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated"})
}
