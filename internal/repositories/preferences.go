package repositories

import (
	"context"

	"github.com/maxaizer/job-intel/internal/entities"
	"gorm.io/gorm"
)

type Preferences struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *Preferences {
	return &Preferences{db: db}
}

func (repo *Preferences) Add(ctx context.Context, prefs entities.StoredPreferences) error {
	return repo.db.WithContext(ctx).Create(&prefs).Error
}

func (repo *Preferences) GetByUser(ctx context.Context, userID int64) ([]entities.StoredPreferences, error) {

	var prefs []entities.StoredPreferences
	if err := repo.db.WithContext(ctx).Find(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (repo *Preferences) Get(ctx context.Context, limit int, offset int) ([]entities.StoredPreferences, error) {

	var prefs []entities.StoredPreferences
	if err := repo.db.WithContext(ctx).
		Limit(limit).
		Offset(offset).
		Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (repo *Preferences) Update(ctx context.Context, prefs entities.StoredPreferences) error {
	return repo.db.WithContext(ctx).Model(&entities.StoredPreferences{}).
		Where("id = ?", prefs.ID).Updates(prefs).Error
}

func (repo *Preferences) Remove(ctx context.Context, id int) error {
	return repo.db.WithContext(ctx).Delete(&entities.StoredPreferences{ID: id}).Error
}
