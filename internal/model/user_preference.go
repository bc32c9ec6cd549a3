package model

import "time"

// UserPreference 注册时填写的领养偏好问卷，与用户一对一
type UserPreference struct {
	Id               int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId           int64     `gorm:"column:user_id;uniqueIndex;not null" json:"user_id,string"`
	HasPetExperience bool      `gorm:"column:has_pet_experience;not null;default:false" json:"has_pet_experience"`
	HasAllergies     bool      `gorm:"column:has_allergies;not null;default:false" json:"has_allergies"`
	LivingSpace      string    `gorm:"column:living_space;type:varchar(50)" json:"living_space"`
	PetSpending      string    `gorm:"column:pet_spending;type:varchar(50)" json:"pet_spending"`
	TimeCommitment   string    `gorm:"column:time_commitment;type:varchar(50)" json:"time_commitment"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
