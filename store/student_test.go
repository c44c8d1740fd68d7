package store_test

import (
	"errors"
	"testing"

	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/store"
)

func TestDeleteStudentOutsideScope(t *testing.T) {
	db := openTestDB(t)
	u3 := mustCreateUser(t, db, "coach3", models.RoleUser)
	u5 := mustCreateUser(t, db, "coach5", models.RoleUser)
	other := mustCreateStudent(t, db, "sora", u5.ID)

	sc, _ := store.ForActor(u3.ID, models.RoleUser, "")
	err := store.DeleteStudent(db, other.ID, sc)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// the row owned by user 5 is untouched
	var count int64
	db.Model(&models.Student{}).Where("id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Fatalf("student was deleted across scopes")
	}
}

func TestUpdateStudentOutsideScopeIsNoop(t *testing.T) {
	db := openTestDB(t)
	u3 := mustCreateUser(t, db, "coach3", models.RoleUser)
	u5 := mustCreateUser(t, db, "coach5", models.RoleUser)
	other := mustCreateStudent(t, db, "sora", u5.ID)

	sc, _ := store.ForActor(u3.ID, models.RoleUser, "")
	err := store.UpdateStudent(db, other.ID, sc, map[string]any{"name": "hacked"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var s models.Student
	if err := db.First(&s, other.ID).Error; err != nil {
		t.Fatal(err)
	}
	if s.Name != "sora" {
		t.Fatalf("name mutated across scopes: %q", s.Name)
	}
}

func TestCreateStudentOwnerIsActingUser(t *testing.T) {
	db := openTestDB(t)
	admin := mustCreateUser(t, db, "boss", models.RoleAdmin)
	mustCreateUser(t, db, "coach7", models.RoleUser)

	// even with a tenant filter active, create lands on the acting user
	s := models.Student{Name: "yuna"}
	if err := store.CreateStudent(db, &s, admin.ID); err != nil {
		t.Fatal(err)
	}
	if s.UserID != admin.ID {
		t.Fatalf("owner = %d, want acting user %d", s.UserID, admin.ID)
	}
}

func TestClassIDsLenientDecode(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "coach", models.RoleUser)
	s := mustCreateStudent(t, db, "mina", u.ID, 1, 2)

	// corrupt the serialized column behind the model's back
	if err := db.Exec("UPDATE students SET class_ids = ? WHERE id = ?", "{not json", s.ID).Error; err != nil {
		t.Fatal(err)
	}

	sc, _ := store.ForActor(u.ID, models.RoleUser, "")
	got, err := store.GetStudent(db, s.ID, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ClassIDs) != 0 {
		t.Fatalf("corrupt class_ids should decode empty, got %v", got.ClassIDs)
	}

	// NULL decodes empty too
	if err := db.Exec("UPDATE students SET class_ids = NULL WHERE id = ?", s.ID).Error; err != nil {
		t.Fatal(err)
	}
	got, err = store.GetStudent(db, s.ID, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ClassIDs) != 0 {
		t.Fatalf("NULL class_ids should decode empty, got %v", got.ClassIDs)
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	db := openTestDB(t)
	u := mustCreateUser(t, db, "coach", models.RoleUser)
	s := mustCreateStudent(t, db, "mina", u.ID)
	comp := mustCreateCompetition(t, db, "regionals", u.ID)

	sc, _ := store.ForActor(u.ID, models.RoleUser, "")
	if _, err := store.CreateAttendance(db, s.ID, 1, "2026-09-01", u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddCompetitionStudent(db, comp.ID, s.ID, nil, sc); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteStudent(db, s.ID, sc); err != nil {
		t.Fatal(err)
	}

	var att, part int64
	db.Model(&models.Attendance{}).Where("student_id = ?", s.ID).Count(&att)
	db.Model(&models.CompetitionStudent{}).Where("student_id = ?", s.ID).Count(&part)
	if att != 0 || part != 0 {
		t.Fatalf("cascade failed: %d attendance, %d participations left", att, part)
	}
}
