package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	err := db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var u models.User
	err := db.First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByKakaoID(db *gorm.DB, kakaoID string) (*models.User, error) {
	var u models.User
	err := db.First(&u, "kakao_id = ?", kakaoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser rejects a taken username with ErrConflict before insert.
// The unique index still backs this up at the store level.
func CreateUser(db *gorm.DB, u *models.User) error {
	var dup models.User
	if err := db.Select("id").First(&dup, "username = ?", u.Username).Error; err == nil {
		return ErrConflict
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	return db.Create(u).Error
}

func ListUsers(db *gorm.DB) ([]models.User, error) {
	var rows []models.User
	err := db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func UpdateUserRole(db *gorm.DB, id uint, role string) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("invalid role %q", role)
	}
	res := db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes only the user row. Owned data is NOT cascaded: the
// rows keep their user_id and stay visible to admins until transferred.
func DeleteUser(db *gorm.DB, id uint) error {
	res := db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TransferUserData reassigns every row owned by fromID to toID in one
// transaction. Both users must exist; from == to is a caller error.
func TransferUserData(db *gorm.DB, fromID, toID uint) error {
	if fromID == toID {
		return errors.New("fromUserId and toUserId must differ")
	}
	if _, err := GetUserByID(db, fromID); err != nil {
		return err
	}
	if _, err := GetUserByID(db, toID); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Student{},
			&models.Class{},
			&models.Attendance{},
			&models.Competition{},
		} {
			err := tx.Model(m).
				Where("user_id = ?", fromID).
				Update("user_id", toID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
