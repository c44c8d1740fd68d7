package store_test

import (
	"errors"
	"testing"

	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/store"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	mustCreateUser(t, db, "coach", models.RoleUser)

	dup := models.User{Username: "coach", PasswordHash: "x"}
	if err := store.CreateUser(db, &dup); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestTransferUserData(t *testing.T) {
	db := openTestDB(t)
	from := mustCreateUser(t, db, "leaving", models.RoleUser)
	to := mustCreateUser(t, db, "staying", models.RoleUser)

	s := mustCreateStudent(t, db, "mina", from.ID)
	cl := mustCreateClass(t, db, "ball", from.ID, 0)
	comp := mustCreateCompetition(t, db, "regionals", from.ID)
	if _, err := store.CreateAttendance(db, s.ID, cl.ID, "2026-09-01", from.ID); err != nil {
		t.Fatal(err)
	}
	keep := mustCreateStudent(t, db, "sora", to.ID)

	if err := store.TransferUserData(db, from.ID, to.ID); err != nil {
		t.Fatal(err)
	}

	var count int64
	for _, m := range []any{&models.Student{}, &models.Class{}, &models.Attendance{}, &models.Competition{}} {
		db.Model(m).Where("user_id = ?", from.ID).Count(&count)
		if count != 0 {
			t.Fatalf("%T rows left behind for the source user", m)
		}
	}
	db.Model(&models.Student{}).Where("user_id = ?", to.ID).Count(&count)
	if count != 2 {
		t.Fatalf("target should own 2 students, got %d", count)
	}

	var gotComp models.Competition
	db.First(&gotComp, comp.ID)
	if gotComp.UserID != to.ID {
		t.Fatalf("competition not transferred: owner %d", gotComp.UserID)
	}
	var gotKeep models.Student
	db.First(&gotKeep, keep.ID)
	if gotKeep.UserID != to.ID {
		t.Fatalf("pre-existing target row changed owner: %d", gotKeep.UserID)
	}
}

func TestTransferRejectsSameUser(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "coach", models.RoleUser)
	if err := store.TransferUserData(db, u.ID, u.ID); err == nil {
		t.Fatal("same-user transfer must fail")
	}
}

func TestTransferRejectsUnknownUsers(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "coach", models.RoleUser)
	if err := store.TransferUserData(db, u.ID, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := store.TransferUserData(db, 999, u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteUserOrphansRows(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "leaving", models.RoleUser)
	s := mustCreateStudent(t, db, "mina", u.ID)

	if err := store.DeleteUser(db, u.ID); err != nil {
		t.Fatal(err)
	}

	// owned rows stay behind with the old user_id
	var got models.Student
	if err := db.First(&got, s.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.UserID != u.ID {
		t.Fatalf("orphaned row lost its owner id: %d", got.UserID)
	}

	// only an unrestricted scope still sees them
	sc, _ := store.ForActor(1, models.RoleAdmin, "all")
	rows, err := store.ListStudents(db, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("admin should see the orphan, got %d rows", len(rows))
	}
}

func TestUpdateUserRole(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "coach", models.RoleUser)

	if err := store.UpdateUserRole(db, u.ID, models.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	var got models.User
	db.First(&got, u.ID)
	if got.Role != models.RoleAdmin {
		t.Fatalf("role = %q", got.Role)
	}

	if err := store.UpdateUserRole(db, u.ID, "superuser"); err == nil {
		t.Fatal("invalid role must be rejected")
	}
	if err := store.UpdateUserRole(db, 999, models.RoleUser); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
