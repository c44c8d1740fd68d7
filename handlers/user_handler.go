package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/store"
)

// Admin-only user management.
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// GET /admin/users
func (h *UserHandler) List(c echo.Context) error {
	rows, err := store.ListUsers(database.DB)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type roleReq struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// PUT /admin/users/:id/role
func (h *UserHandler) UpdateRole(c echo.Context) error {
	a := actorFrom(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req roleReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := store.UpdateUserRole(database.DB, id, req.Role); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_user_role", fmt.Sprint(id), req.Role)
	return c.JSON(http.StatusOK, map[string]any{"id": id, "role": req.Role})
}

// DELETE /admin/users/:id — no cascade; run a transfer first if the data
// should survive.
func (h *UserHandler) Delete(c echo.Context) error {
	a := actorFrom(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if id == a.UserID {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "CANNOT_DELETE_SELF"})
	}
	if err := store.DeleteUser(database.DB, id); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "delete_user", fmt.Sprint(id), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}

type transferReq struct {
	FromUserID uint `json:"from_user_id" validate:"required"`
	ToUserID   uint `json:"to_user_id" validate:"required"`
}

// POST /admin/users/transfer — move every owned row between tenants in one
// transaction.
func (h *UserHandler) Transfer(c echo.Context) error {
	a := actorFrom(c)
	var req transferReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.FromUserID == req.ToUserID {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "SAME_USER"})
	}
	if err := store.TransferUserData(database.DB, req.FromUserID, req.ToUserID); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "transfer_user_data",
		fmt.Sprintf("from=%d to=%d", req.FromUserID, req.ToUserID), "")
	return c.JSON(http.StatusOK, map[string]any{"from": req.FromUserID, "to": req.ToUserID})
}

// GET /admin/logs?limit=
func (h *UserHandler) Logs(c echo.Context) error {
	rows, err := store.ListLogs(database.DB, atoiOr(c.QueryParam("limit"), 200))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
