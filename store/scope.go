package store

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

var (
	// ErrNotFound covers both "row absent" and "row outside the caller's
	// scope". The two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	ErrConflict  = errors.New("already exists")
	ErrBadFilter = errors.New("filterUserId must be an integer or \"all\"")
)

// FilterAll is the admin sentinel for "no tenant filter".
const FilterAll = "all"

// Scope is the row-visibility restriction applied to every query.
// Either unrestricted (admin without a tenant filter) or pinned to one
// owner's user_id. Computed once per request and threaded through each
// store call so no call site rebuilds the role branch itself.
type Scope struct {
	unrestricted bool
	ownerID      uint
}

func Unrestricted() Scope { return Scope{unrestricted: true} }

func RestrictedTo(ownerID uint) Scope { return Scope{ownerID: ownerID} }

// ForActor derives the scope from the caller's identity and the optional
// filterUserId query value. Non-admins are always pinned to their own id;
// whatever filter they send is ignored. Admins get everything unless they
// narrow to one tenant, in which case that tenant's own restriction rules
// apply to the query while the acting identity stays the admin's (the
// audit log keeps the admin's username).
func ForActor(userID uint, role, filterUserID string) (Scope, error) {
	if role != models.RoleAdmin {
		return RestrictedTo(userID), nil
	}
	if filterUserID == "" || filterUserID == FilterAll {
		return Unrestricted(), nil
	}
	n, err := strconv.ParseUint(filterUserID, 10, 32)
	if err != nil {
		return Scope{}, ErrBadFilter
	}
	return RestrictedTo(uint(n)), nil
}

// Apply narrows tx to the rows the scope may see or touch.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return tx
	}
	return tx.Where("user_id = ?", s.ownerID)
}

func (s Scope) IsUnrestricted() bool { return s.unrestricted }

// OwnerID returns the pinned owner id; only meaningful when restricted.
func (s Scope) OwnerID() uint { return s.ownerID }
