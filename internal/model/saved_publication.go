package model

import "time"

// SavedPublication 用户收藏的宠物
type SavedPublication struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	UserId    int64     `gorm:"column:user_id;uniqueIndex:idx_user_pet_save,priority:1;not null"`
	PetId     int64     `gorm:"column:pet_id;uniqueIndex:idx_user_pet_save,priority:2;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (SavedPublication) TableName() string {
	return "saved_publications"
}
