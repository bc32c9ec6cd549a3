package repository

import (
	"pet_adoption_server/internal/model"

	"gorm.io/gorm"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository 创建领养偏好 Repository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) FindByUserId(userId int64) (*model.UserPreference, error) {
	var pref model.UserPreference
	if err := r.db.First(&pref, "user_id = ?", userId).Error; err != nil {
		return nil, wrapDBErrorf(err, "query preferences user_id=%d", userId)
	}
	return &pref, nil
}

func (r *preferenceRepository) FindByUserIds(userIds []int64) ([]model.UserPreference, error) {
	var prefs []model.UserPreference
	if len(userIds) == 0 {
		return prefs, nil
	}
	if err := r.db.Where("user_id IN ?", userIds).Find(&prefs).Error; err != nil {
		return nil, wrapDBError(err, "batch query preferences")
	}
	return prefs, nil
}

func (r *preferenceRepository) Create(pref *model.UserPreference) error {
	if err := r.db.Create(pref).Error; err != nil {
		return wrapDBError(err, "create preferences")
	}
	return nil
}
