package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/notify"
	"github.com/jwchoi684/rg-manager/store"
)

type AttendanceHandler struct {
	Notifier *notify.Notifier
}

func NewAttendanceHandler(n *notify.Notifier) *AttendanceHandler {
	return &AttendanceHandler{Notifier: n}
}

// GET /attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) List(c echo.Context) error {
	_, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date != "" {
		if !isDate(date) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
		}
		rows, err := store.ListAttendanceByDate(database.DB, date, sc)
		if err != nil {
			return storeErr(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}
	rows, err := store.ListAttendance(database.DB, sc)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type attendanceCreateReq struct {
	StudentID uint   `json:"student_id" validate:"required"`
	ClassID   uint   `json:"class_id" validate:"required"`
	Date      string `json:"date" validate:"required,len=10"`
}

// POST /attendance — single record, no dedup. The check flow below is the
// path that keeps one row per student per day.
func (h *AttendanceHandler) Create(c echo.Context) error {
	a := actorFrom(c)
	var req attendanceCreateReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !isDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	rec, err := store.CreateAttendance(database.DB, req.StudentID, req.ClassID, req.Date, a.UserID)
	if err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "create_attendance",
		fmt.Sprintf("student=%d class=%d", req.StudentID, req.ClassID), req.Date)
	return c.JSON(http.StatusCreated, rec)
}

// DELETE /attendance/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := store.DeleteAttendance(database.DB, id, sc); err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "delete_attendance", fmt.Sprint(id), "")
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}

// DELETE /attendance?date=YYYY-MM-DD&classId=N
func (h *AttendanceHandler) DeleteByDateAndClass(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	classID, convErr := strconv.ParseUint(strings.TrimSpace(c.QueryParam("classId")), 10, 32)
	if !isDate(date) || convErr != nil || classID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	n, err := store.DeleteAttendanceByDateAndClass(database.DB, date, uint(classID), sc)
	if err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "clear_attendance",
		fmt.Sprintf("class=%d", classID), date)
	return c.JSON(http.StatusOK, map[string]any{"deleted": n})
}

type checkClassReq struct {
	Date       string `json:"date" validate:"required,len=10"`
	ClassID    uint   `json:"class_id" validate:"required"`
	StudentIDs []uint `json:"student_ids"`
}

// POST /attendance/check — the "check attendance" submit. Replaces the
// day's rows for the class with one per checked student, then pings the
// owner on their side channels (fire-and-forget).
func (h *AttendanceHandler) CheckClass(c echo.Context) error {
	a, sc, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req checkClassReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !isDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	cl, err := store.GetClass(database.DB, req.ClassID, sc)
	if err != nil {
		return storeErr(c, err)
	}

	rows, err := store.CheckClass(database.DB, req.Date, req.ClassID, req.StudentIDs, sc, a.UserID)
	if err != nil {
		return storeErr(c, err)
	}
	store.AppendLog(database.DB, a.Username, "check_attendance",
		fmt.Sprintf("class=%d", req.ClassID), fmt.Sprintf("%s: %d students", req.Date, len(rows)))

	if owner, err := store.GetUserByID(database.DB, cl.UserID); err == nil {
		h.Notifier.AttendanceChecked(owner, cl.Name, req.Date, len(rows))
	}
	return c.JSON(http.StatusOK, rows)
}
