package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

func ListAttendance(db *gorm.DB, sc Scope) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := sc.Apply(db.Model(&models.Attendance{})).
		Order("date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func ListAttendanceByDate(db *gorm.DB, date string, sc Scope) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := sc.Apply(db.Model(&models.Attendance{})).
		Where("date = ?", date).
		Order("class_id ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// CreateAttendance inserts one record. Not idempotent: nothing stops a
// duplicate (student, class, date) row. The bulk check flow below is the
// path that maintains the one-row-per-student invariant.
func CreateAttendance(db *gorm.DB, studentID, classID uint, date string, ownerID uint) (*models.Attendance, error) {
	rec := models.Attendance{
		StudentID: studentID,
		ClassID:   classID,
		Date:      date,
		CheckedAt: time.Now(),
		UserID:    ownerID,
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func DeleteAttendance(db *gorm.DB, id uint, sc Scope) error {
	res := sc.Apply(db).Delete(&models.Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAttendanceByDateAndClass clears every in-scope record for one
// class on one day. Zero matching rows is not an error here.
func DeleteAttendanceByDateAndClass(db *gorm.DB, date string, classID uint, sc Scope) (int64, error) {
	res := sc.Apply(db).
		Where("date = ? AND class_id = ?", date, classID).
		Delete(&models.Attendance{})
	return res.RowsAffected, res.Error
}

// CheckClass is the "check attendance" submit: replace the day's records
// for the class with one row per checked student. Delete and inserts run
// in one transaction so a failure cannot wipe the day without writing the
// replacement rows.
func CheckClass(db *gorm.DB, date string, classID uint, studentIDs []uint, sc Scope, ownerID uint) ([]models.Attendance, error) {
	now := time.Now()
	out := make([]models.Attendance, 0, len(studentIDs))
	err := db.Transaction(func(tx *gorm.DB) error {
		res := sc.Apply(tx).
			Where("date = ? AND class_id = ?", date, classID).
			Delete(&models.Attendance{})
		if res.Error != nil {
			return res.Error
		}
		for _, sid := range studentIDs {
			rec := models.Attendance{
				StudentID: sid,
				ClassID:   classID,
				Date:      date,
				CheckedAt: now,
				UserID:    ownerID,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
