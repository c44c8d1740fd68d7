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

type CompetitionHandler struct{}

func NewCompetitionHandler() *CompetitionHandler { return &CompetitionHandler{} }

type competitionPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Date     string `json:"date" validate:"omitempty,len=10"`
	Location string `json:"location" validate:"omitempty,max=120"`
}

// GET /competitions
func (h *CompetitionHandler) List(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	rows, err := store.ListCompetitions(database.DB, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /competitions/:id
func (h *CompetitionHandler) GetByID(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comp, err := store.GetCompetition(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, comp)
}

// POST /competitions
func (h *CompetitionHandler) Create(c echo.Context) error {
	a := actorFrom(c)
	var req competitionPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Date != "" && !isDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	comp := models.Competition{
		Name:     strings.TrimSpace(req.Name),
		Date:     req.Date,
		Location: strings.TrimSpace(req.Location),
	}
	if err := store.CreateCompetition(database.DB, &comp, a.UserID); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "create_competition", comp.Name, "")
	return c.JSON(http.StatusCreated, comp)
}

// PUT /competitions/:id
func (h *CompetitionHandler) Update(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req competitionPayload
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Date != "" && !isDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	upd := map[string]any{
		"name":     strings.TrimSpace(req.Name),
		"date":     req.Date,
		"location": strings.TrimSpace(req.Location),
	}
	if err := store.UpdateCompetition(database.DB, id, sc, upd); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_competition", fmt.Sprint(id), "")
	comp, err := store.GetCompetition(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, comp)
}

// DELETE /competitions/:id — participations go with it (store cascade).
func (h *CompetitionHandler) Delete(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := store.DeleteCompetition(database.DB, id, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "delete_competition", fmt.Sprint(id), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}

/* ---------- participation ---------- */

// GET /competitions/:id/students
func (h *CompetitionHandler) Students(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	rows, err := store.GetCompetitionStudents(database.DB, id, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type addStudentReq struct {
	StudentID uint             `json:"student_id" validate:"required"`
	Events    models.EventList `json:"events"`
}

// POST /competitions/:id/students — upsert: re-registering a student just
// replaces their events list.
func (h *CompetitionHandler) AddStudent(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req addStudentReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	row, err := store.AddCompetitionStudent(database.DB, id, req.StudentID, req.Events, sc)
	if err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "add_competition_student",
		fmt.Sprintf("competition=%d student=%d", id, req.StudentID), "")
	return c.JSON(http.StatusOK, row)
}

// DELETE /competitions/:id/students/:studentId
func (h *CompetitionHandler) RemoveStudent(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sid, err := paramID(c, "studentId")
	if err != nil {
		return err
	}
	if err := store.RemoveCompetitionStudent(database.DB, id, sid, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "remove_competition_student",
		fmt.Sprintf("competition=%d student=%d", id, sid), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": sid})
}

// Events may be empty: submitting an empty list clears the participation's
// event entries.
type eventsReq struct {
	Events models.EventList `json:"events"`
}

// PUT /competitions/:id/students/:studentId/events
func (h *CompetitionHandler) UpdateStudentEvents(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sid, err := paramID(c, "studentId")
	if err != nil {
		return err
	}
	var req eventsReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := store.UpdateCompetitionStudentEvents(database.DB, id, sid, req.Events, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_competition_events",
		fmt.Sprintf("competition=%d student=%d", id, sid), "")
	return c.JSON(http.StatusOK, map[string]any{"updated": sid})
}

type paidReq struct {
	Paid         *bool `json:"paid"`
	CoachFeePaid *bool `json:"coach_fee_paid"`
}

// PUT /competitions/:id/students/:studentId/paid — either flag alone.
func (h *CompetitionHandler) UpdateStudentPaid(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sid, err := paramID(c, "studentId")
	if err != nil {
		return err
	}
	var req paidReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := store.UpdateCompetitionStudentPaid(database.DB, id, sid, req.Paid, req.CoachFeePaid, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "update_competition_paid",
		fmt.Sprintf("competition=%d student=%d", id, sid), "")
	return c.JSON(http.StatusOK, map[string]any{"updated": sid})
}
