package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

// Student data access. Every read and mutation carries the caller's scope
// in the statement itself: an id outside the scope behaves exactly like a
// missing row.

func ListStudents(db *gorm.DB, sc Scope) ([]models.Student, error) {
	var rows []models.Student
	err := sc.Apply(db.Model(&models.Student{})).
		Order("name ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func GetStudent(db *gorm.DB, id uint, sc Scope) (*models.Student, error) {
	var s models.Student
	err := sc.Apply(db).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStudent always assigns ownership to the acting user, never a
// filter target. Admin creates under an active tenant filter still land
// on the admin's own id.
func CreateStudent(db *gorm.DB, s *models.Student, ownerID uint) error {
	s.UserID = ownerID
	if s.ClassIDs == nil {
		s.ClassIDs = models.IDList{}
	}
	return db.Create(s).Error
}

func UpdateStudent(db *gorm.DB, id uint, sc Scope, upd map[string]any) error {
	res := sc.Apply(db.Model(&models.Student{})).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteStudent(db *gorm.DB, id uint, sc Scope) error {
	res := sc.Apply(db).Delete(&models.Student{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
