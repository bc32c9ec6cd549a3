package model

import "time"

// Pet 待领养的宠物信息（挂牌）
// 只能由发布者删除，没有编辑入口
type Pet struct {
	Id           int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	OwnerId      int64  `gorm:"column:owner_id;index;not null"`
	Name         string `gorm:"column:name;type:varchar(100);not null"`
	Species      string `gorm:"column:species;type:varchar(50);index;not null"`
	Breed        string `gorm:"column:breed;type:varchar(100);not null"`
	Age          string `gorm:"column:age;type:varchar(50);not null"`
	AgeCategory  string `gorm:"column:age_category;type:varchar(50);not null"`
	Gender       string `gorm:"column:gender;type:varchar(20);not null"`
	Size         string `gorm:"column:size;type:varchar(20);not null"`
	CoatLength   string `gorm:"column:coat_length;type:varchar(20);not null"`
	GoodWithKids bool   `gorm:"column:good_with_kids;not null;default:false"`
	Location     string `gorm:"column:location;type:varchar(255);not null"`
	City         string `gorm:"column:city;type:varchar(100);index;not null"`
	AdoptionType string `gorm:"column:adoption_type;type:varchar(50);not null"`
	Description  string `gorm:"column:description;type:text"`
	// ImageUrl 对外路径，如 /uploads/pet-xxx.jpg；上传失败时为占位图
	ImageUrl string `gorm:"column:image_url;type:varchar(255);not null"`
	// PassportPath 宠物证件 PDF，可为空
	PassportPath *string   `gorm:"column:passport_path;type:varchar(255)"`
	CreatedAt    time.Time `gorm:"column:created_at;index;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (Pet) TableName() string {
	return "pets"
}

// DaysOnPlatform 上架第几天，发布当天为第 1 天
func (p *Pet) DaysOnPlatform(now time.Time) int {
	if now.Before(p.CreatedAt) {
		return 1
	}
	return int(now.Sub(p.CreatedAt)/(24*time.Hour)) + 1
}
