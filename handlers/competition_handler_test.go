package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/handlers"
	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/store"
)

// handlers read the package-global DB, so point it at a fresh in-memory
// database for the duration of the test.
func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func authedJSONRequest(c echo.Context, u *models.User) {
	c.Set("user_id", u.ID)
	c.Set("role", u.Role)
	c.Set("username", u.Username)
}

func TestUpdateStudentEventsAcceptsEmptyList(t *testing.T) {
	db := setupHandlerDB(t)

	u := models.User{Username: "coach", PasswordHash: "x", Role: models.RoleUser}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	comp := models.Competition{Name: "regionals", UserID: u.ID}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatal(err)
	}
	s := models.Student{Name: "mina", UserID: u.ID, ClassIDs: models.IDList{}}
	if err := db.Create(&s).Error; err != nil {
		t.Fatal(err)
	}
	sc, _ := store.ForActor(u.ID, models.RoleUser, "")
	if _, err := store.AddCompetitionStudent(db, comp.ID, s.ID, models.EventList{{Apparatus: "ball"}}, sc); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"events":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/competitions/:id/students/:studentId/events")
	c.SetParamNames("id", "studentId")
	c.SetParamValues(fmt.Sprint(comp.ID), fmt.Sprint(s.ID))
	authedJSONRequest(c, &u)

	h := handlers.NewCompetitionHandler()
	if err := h.UpdateStudentEvents(c); err != nil {
		t.Fatalf("empty events list rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var row models.CompetitionStudent
	if err := db.Where("competition_id = ? AND student_id = ?", comp.ID, s.ID).First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if len(row.Events) != 0 {
		t.Fatalf("events not cleared: %+v", row.Events)
	}
}
