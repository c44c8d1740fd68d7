package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/store"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler { return &ClassHandler{} }

type classPayload struct {
	Name       string `json:"name" validate:"required,max=60"`
	Schedule   string `json:"schedule" validate:"omitempty,max=120"`
	Duration   int    `json:"duration" validate:"omitempty,min=0,max=600"`
	Instructor string `json:"instructor" validate:"omitempty,max=60"`
}

// GET /classes
func (h *ClassHandler) List(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	rows, err := store.ListClasses(database.DB, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /classes/:id
func (h *ClassHandler) GetByID(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	cl, err := store.GetClass(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

// POST /classes — the store appends to the owner's display order.
func (h *ClassHandler) Create(c echo.Context) error {
	a := actorFrom(c)
	var req classPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cl := models.Class{
		Name:       strings.TrimSpace(req.Name),
		Schedule:   strings.TrimSpace(req.Schedule),
		Duration:   req.Duration,
		Instructor: strings.TrimSpace(req.Instructor),
	}
	if err := store.CreateClass(database.DB, &cl, a.UserID); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "create_class", cl.Name, "")
	return c.JSON(http.StatusCreated, cl)
}

// PUT /classes/:id
func (h *ClassHandler) Update(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req classPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upd := map[string]any{
		"name":       strings.TrimSpace(req.Name),
		"schedule":   strings.TrimSpace(req.Schedule),
		"duration":   req.Duration,
		"instructor": strings.TrimSpace(req.Instructor),
	}
	if err := store.UpdateClass(database.DB, id, sc, upd); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_class", fmt.Sprint(id), "")
	cl, err := store.GetClass(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

type reorderReq struct {
	OrderedIDs []uint `json:"ordered_ids" validate:"required,min=1"`
}

// PUT /classes/reorder — display_order = position in ordered_ids. Ids the
// caller cannot see are skipped, not rejected.
func (h *ClassHandler) Reorder(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req reorderReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := store.ReorderClasses(database.DB, req.OrderedIDs, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "reorder_classes", "", fmt.Sprintf("%d ids", len(req.OrderedIDs)))
	rows, err := store.ListClasses(database.DB, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// DELETE /classes/:id — also rewrites every referencing student's
// class_ids (fan-out inside the store transaction).
func (h *ClassHandler) Delete(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := store.DeleteClass(database.DB, id, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "delete_class", fmt.Sprint(id), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}
