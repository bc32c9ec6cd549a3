// Package model 定义数据库实体模型
// 主键统一使用雪花 ID，JSON 序列化为字符串，避免前端精度丢失
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 注册用户
// 对应数据库 users 表
type UserInfo struct {
	Id        int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	FirstName string `gorm:"column:first_name;type:varchar(50);not null" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:varchar(50);not null" json:"last_name"`
	// Email 登录账号，唯一索引兜底并发注册
	Email    string `gorm:"column:email;type:varchar(100);uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;type:varchar(100);not null" json:"-"`
	City     string `gorm:"column:city;type:varchar(100)" json:"city"`
	Gender   string `gorm:"column:gender;type:varchar(20)" json:"gender"`
	// BirthDate 格式 YYYY-MM-DD
	BirthDate string    `gorm:"column:birth_date;type:char(10)" json:"birth_date"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// RawPassword 明文密码，不入库，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

func (UserInfo) TableName() string {
	return "users"
}

// BeforeSave 调用方只需设置 RawPassword，入库前自动 bcrypt
func (u *UserInfo) BeforeSave(tx *gorm.DB) error {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验明文密码
func (u *UserInfo) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// FullName 展示用姓名
func (u *UserInfo) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
