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

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	Name        string `json:"name" validate:"required,max=60"`
	Birthdate   string `json:"birthdate" validate:"omitempty,len=10"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	ParentPhone string `json:"parent_phone" validate:"omitempty,max=20"`
	ClassIDs    []uint `json:"class_ids"`
}

func (p *studentPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Birthdate = strings.TrimSpace(p.Birthdate)
	p.Phone = strings.TrimSpace(p.Phone)
	p.ParentPhone = strings.TrimSpace(p.ParentPhone)
}

// GET /students?filterUserId=
func (h *StudentHandler) List(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	rows, err := store.ListStudents(database.DB, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /students/:id
func (h *StudentHandler) GetByID(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	s, err := store.GetStudent(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	a := actorFrom(c)
	var req studentPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.normalize()
	if req.Birthdate != "" && !isDate(req.Birthdate) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	s := models.Student{
		Name:        req.Name,
		Birthdate:   req.Birthdate,
		Phone:       req.Phone,
		ParentPhone: req.ParentPhone,
		ClassIDs:    models.IDList(req.ClassIDs),
	}
	if err := store.CreateStudent(database.DB, &s, a.UserID); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "create_student", s.Name, "")
	return c.JSON(http.StatusCreated, s)
}

// PUT /students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req studentPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.normalize()
	if req.Birthdate != "" && !isDate(req.Birthdate) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	upd := map[string]any{
		"name":         req.Name,
		"birthdate":    req.Birthdate,
		"phone":        req.Phone,
		"parent_phone": req.ParentPhone,
		"class_ids":    models.IDList(req.ClassIDs),
	}
	if err := store.UpdateStudent(database.DB, id, sc, upd); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_student", fmt.Sprint(id), "")
	s, err := store.GetStudent(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /students/:id — attendance and competition participations go with
// the row (store-level cascade).
func (h *StudentHandler) Delete(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := store.DeleteStudent(database.DB, id, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "delete_student", fmt.Sprint(id), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}
