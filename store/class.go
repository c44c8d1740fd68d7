package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

func ListClasses(db *gorm.DB, sc Scope) ([]models.Class, error) {
	var rows []models.Class
	err := sc.Apply(db.Model(&models.Class{})).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func GetClass(db *gorm.DB, id uint, sc Scope) (*models.Class, error) {
	var cl models.Class
	err := sc.Apply(db).First(&cl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// CreateClass appends the class to the end of the owner's display order.
func CreateClass(db *gorm.DB, cl *models.Class, ownerID uint) error {
	cl.UserID = ownerID
	var maxOrder int
	err := db.Model(&models.Class{}).
		Where("user_id = ?", ownerID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return err
	}
	cl.DisplayOrder = maxOrder + 1
	return db.Create(cl).Error
}

func UpdateClass(db *gorm.DB, id uint, sc Scope, upd map[string]any) error {
	res := sc.Apply(db.Model(&models.Class{})).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderClasses rewrites display_order to the zero-based position of each
// id in orderedIDs. The scope is applied per row, so ids the caller cannot
// see are skipped without failing the batch. Runs in one transaction.
func ReorderClasses(db *gorm.DB, orderedIDs []uint, sc Scope) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := sc.Apply(tx.Model(&models.Class{})).
				Where("id = ?", id).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}

// DeleteClass removes the class and fans the deletion out into every
// in-scope student whose class_ids references it. class_ids has no
// store-level integrity, so the fan-out and the row delete share one
// transaction to avoid leaving dangling references.
func DeleteClass(db *gorm.DB, id uint, sc Scope) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cl models.Class
		if err := sc.Apply(tx).First(&cl, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var students []models.Student
		if err := sc.Apply(tx.Model(&models.Student{})).Find(&students).Error; err != nil {
			return err
		}
		for i := range students {
			if !students[i].ClassIDs.Contains(id) {
				continue
			}
			err := tx.Model(&models.Student{}).
				Where("id = ?", students[i].ID).
				Update("class_ids", students[i].ClassIDs.Without(id)).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&models.Class{}, "id = ?", id).Error
	})
}
