package store_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/models"
)

// openTestDB gives each test a fresh in-memory DB with the real schema.
// Single connection so the :memory: database survives the pool.
func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	u := models.User{Username: username, PasswordHash: "x", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &u
}

func mustCreateStudent(t *testing.T, db *gorm.DB, name string, ownerID uint, classIDs ...uint) *models.Student {
	t.Helper()
	s := models.Student{Name: name, UserID: ownerID, ClassIDs: models.IDList(classIDs)}
	if s.ClassIDs == nil {
		s.ClassIDs = models.IDList{}
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create student %s: %v", name, err)
	}
	return &s
}

func mustCreateClass(t *testing.T, db *gorm.DB, name string, ownerID uint, order int) *models.Class {
	t.Helper()
	cl := models.Class{Name: name, UserID: ownerID, DisplayOrder: order}
	if err := db.Create(&cl).Error; err != nil {
		t.Fatalf("create class %s: %v", name, err)
	}
	return &cl
}

func mustCreateCompetition(t *testing.T, db *gorm.DB, name string, ownerID uint) *models.Competition {
	t.Helper()
	comp := models.Competition{Name: name, UserID: ownerID}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("create competition %s: %v", name, err)
	}
	return &comp
}
