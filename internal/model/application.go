package model

import (
	"time"

	"pet_adoption_server/pkg/enum/application/application_status_enum"
)

// Application 领养申请
// (applicant_id, pet_id) 唯一，保证同一用户对同一宠物只有一条申请
type Application struct {
	Id          int64                          `gorm:"column:id;primaryKey;autoIncrement:false"`
	PetId       int64                          `gorm:"column:pet_id;uniqueIndex:idx_applicant_pet,priority:2;index;not null"`
	ApplicantId int64                          `gorm:"column:applicant_id;uniqueIndex:idx_applicant_pet,priority:1;not null"`
	Description string                         `gorm:"column:description;type:text;not null"`
	Status      application_status_enum.Status `gorm:"column:status;type:varchar(20);index;not null"`
	CreatedAt   time.Time                      `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time                      `gorm:"column:updated_at;not null"`
}

func (Application) TableName() string {
	return "applications"
}
