package repository

import (
	"pet_adoption_server/internal/model"

	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏 Repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(userId, petId int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.SavedPublication{}).Where("user_id = ? AND pet_id = ?", userId, petId).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "query favorite user_id=%d pet_id=%d", userId, petId)
	}
	return count > 0, nil
}

// FindByUserId 按收藏时间倒序
func (r *favoriteRepository) FindByUserId(userId int64) ([]model.SavedPublication, error) {
	var favs []model.SavedPublication
	if err := r.db.Where("user_id = ?", userId).Order("created_at DESC, id DESC").Find(&favs).Error; err != nil {
		return nil, wrapDBErrorf(err, "query favorites user_id=%d", userId)
	}
	return favs, nil
}

func (r *favoriteRepository) Create(fav *model.SavedPublication) error {
	if err := r.db.Create(fav).Error; err != nil {
		return wrapDBError(err, "create favorite")
	}
	return nil
}

// Delete 记录不存在时不报错
func (r *favoriteRepository) Delete(userId, petId int64) error {
	if err := r.db.Where("user_id = ? AND pet_id = ?", userId, petId).Delete(&model.SavedPublication{}).Error; err != nil {
		return wrapDBErrorf(err, "delete favorite user_id=%d pet_id=%d", userId, petId)
	}
	return nil
}

func (r *favoriteRepository) DeleteByPetId(petId int64) error {
	if err := r.db.Where("pet_id = ?", petId).Delete(&model.SavedPublication{}).Error; err != nil {
		return wrapDBErrorf(err, "delete favorites pet_id=%d", petId)
	}
	return nil
}
