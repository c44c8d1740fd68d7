package store_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/jwchoi684/rg-manager/models"
	"github.com/jwchoi684/rg-manager/store"
)

func TestForActor(t *testing.T) {
	tests := []struct {
		name         string
		userID       uint
		role         string
		filter       string
		wantErr      bool
		unrestricted bool
		owner        uint
	}{
		{"user no filter", 3, models.RoleUser, "", false, false, 3},
		{"user filter ignored", 3, models.RoleUser, "7", false, false, 3},
		{"user filter all ignored", 3, models.RoleUser, "all", false, false, 3},
		{"user garbage filter ignored", 3, models.RoleUser, "abc", false, false, 3},
		{"admin no filter", 1, models.RoleAdmin, "", false, true, 0},
		{"admin filter all", 1, models.RoleAdmin, "all", false, true, 0},
		{"admin concrete filter", 1, models.RoleAdmin, "7", false, false, 7},
		{"admin bad filter", 1, models.RoleAdmin, "seven", true, false, 0},
		{"admin negative filter", 1, models.RoleAdmin, "-2", true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := store.ForActor(tt.userID, tt.role, tt.filter)
			if tt.wantErr {
				if !errors.Is(err, store.ErrBadFilter) {
					t.Fatalf("want ErrBadFilter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if sc.IsUnrestricted() != tt.unrestricted {
				t.Fatalf("unrestricted = %v, want %v", sc.IsUnrestricted(), tt.unrestricted)
			}
			if !tt.unrestricted && sc.OwnerID() != tt.owner {
				t.Fatalf("owner = %d, want %d", sc.OwnerID(), tt.owner)
			}
		})
	}
}

func TestScopeFiltersRows(t *testing.T) {
	db := openTestDB(t)
	u3 := mustCreateUser(t, db, "coach3", models.RoleUser)
	u5 := mustCreateUser(t, db, "coach5", models.RoleUser)
	mustCreateStudent(t, db, "mina", u3.ID)
	mustCreateStudent(t, db, "sora", u5.ID)
	mustCreateStudent(t, db, "jiwoo", u5.ID)

	// non-admin sees only their own rows, whatever filter they send
	sc, err := store.ForActor(u3.ID, models.RoleUser, "5")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := store.ListStudents(db, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].UserID != u3.ID {
		t.Fatalf("user scope leak: %+v", rows)
	}

	// admin unrestricted sees the union
	sc, _ = store.ForActor(1, models.RoleAdmin, "all")
	rows, err = store.ListStudents(db, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("admin all: want 3 rows, got %d", len(rows))
	}

	// admin narrowed to one tenant sees exactly that tenant
	sc, _ = store.ForActor(1, models.RoleAdmin, strconv.Itoa(int(u5.ID)))
	rows, err = store.ListStudents(db, sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("admin filtered: want 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.UserID != u5.ID {
			t.Fatalf("admin filtered leak: %+v", r)
		}
	}
}
