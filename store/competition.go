package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jwchoi684/rg-manager/models"
)

func ListCompetitions(db *gorm.DB, sc Scope) ([]models.Competition, error) {
	var rows []models.Competition
	err := sc.Apply(db.Model(&models.Competition{})).
		Order("date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func GetCompetition(db *gorm.DB, id uint, sc Scope) (*models.Competition, error) {
	var comp models.Competition
	err := sc.Apply(db).First(&comp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func CreateCompetition(db *gorm.DB, comp *models.Competition, ownerID uint) error {
	comp.UserID = ownerID
	return db.Create(comp).Error
}

func UpdateCompetition(db *gorm.DB, id uint, sc Scope, upd map[string]any) error {
	res := sc.Apply(db.Model(&models.Competition{})).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCompetition relies on the DB cascade to drop participations.
func DeleteCompetition(db *gorm.DB, id uint, sc Scope) error {
	res := sc.Apply(db).Delete(&models.Competition{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ---------- participation sub-operations ----------
Ownership is always checked transitively: load the parent competition under
the caller's scope first, never the join row directly. */

// AddCompetitionStudent registers a student, upserting on the
// (competition_id, student_id) key so re-registration just replaces the
// events payload.
func AddCompetitionStudent(db *gorm.DB, compID, studentID uint, events models.EventList, sc Scope) (*models.CompetitionStudent, error) {
	if _, err := GetCompetition(db, compID, sc); err != nil {
		return nil, err
	}
	if events == nil {
		events = models.EventList{}
	}
	row := models.CompetitionStudent{
		CompetitionID: compID,
		StudentID:     studentID,
		Events:        events,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"events", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func RemoveCompetitionStudent(db *gorm.DB, compID, studentID uint, sc Scope) error {
	if _, err := GetCompetition(db, compID, sc); err != nil {
		return err
	}
	res := db.Where("competition_id = ? AND student_id = ?", compID, studentID).
		Delete(&models.CompetitionStudent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func UpdateCompetitionStudentEvents(db *gorm.DB, compID, studentID uint, events models.EventList, sc Scope) error {
	if _, err := GetCompetition(db, compID, sc); err != nil {
		return err
	}
	if events == nil {
		events = models.EventList{}
	}
	res := db.Model(&models.CompetitionStudent{}).
		Where("competition_id = ? AND student_id = ?", compID, studentID).
		Update("events", events)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCompetitionStudentPaid flips the payment flags; nil means "leave
// as is" so either flag can be set independently.
func UpdateCompetitionStudentPaid(db *gorm.DB, compID, studentID uint, paid, coachFeePaid *bool, sc Scope) error {
	if _, err := GetCompetition(db, compID, sc); err != nil {
		return err
	}
	upd := map[string]any{}
	if paid != nil {
		upd["paid"] = *paid
	}
	if coachFeePaid != nil {
		upd["coach_fee_paid"] = *coachFeePaid
	}
	if len(upd) == 0 {
		// nothing to change, but a missing participation is still an error
		var count int64
		err := db.Model(&models.CompetitionStudent{}).
			Where("competition_id = ? AND student_id = ?", compID, studentID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return nil
	}
	res := db.Model(&models.CompetitionStudent{}).
		Where("competition_id = ? AND student_id = ?", compID, studentID).
		Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompetitionEntry is one participation joined with the student's name for
// the roster view.
type CompetitionEntry struct {
	models.CompetitionStudent
	StudentName string `json:"student_name"`
}

func GetCompetitionStudents(db *gorm.DB, compID uint, sc Scope) ([]CompetitionEntry, error) {
	if _, err := GetCompetition(db, compID, sc); err != nil {
		return nil, err
	}
	var rows []CompetitionEntry
	err := db.Model(&models.CompetitionStudent{}).
		Select("competition_students.*, students.name AS student_name").
		Joins("JOIN students ON students.id = competition_students.student_id").
		Where("competition_students.competition_id = ?", compID).
		Order("students.name ASC").
		Scan(&rows).Error
	return rows, err
}
