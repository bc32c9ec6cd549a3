// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
package repository

import (
	"time"

	"pet_adoption_server/internal/model"
	"pet_adoption_server/pkg/enum/application/application_status_enum"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	FindById(id int64) (*model.UserInfo, error)
	FindByEmail(email string) (*model.UserInfo, error)
	Create(user *model.UserInfo) error
}

// PreferenceRepository 领养偏好数据访问接口
type PreferenceRepository interface {
	FindByUserId(userId int64) (*model.UserPreference, error)
	FindByUserIds(userIds []int64) ([]model.UserPreference, error)
	Create(pref *model.UserPreference) error
}

// PetFilter 宠物搜索条件，零值字段表示不限
type PetFilter struct {
	Species      string
	Breed        string
	AgeCategory  string
	Size         string
	Gender       string
	City         string
	CoatLength   string
	AdoptionType string
	GoodWithKids *bool
	// CreatedAfter 不含边界；CreatedNotAfter 含边界
	CreatedAfter    *time.Time
	CreatedNotAfter *time.Time
	// Keyword 在 name / breed / species 上做不区分大小写的子串匹配
	Keyword string
}

// PetRepository 宠物数据访问接口
type PetRepository interface {
	FindById(id int64) (*model.Pet, error)
	FindByIds(ids []int64) ([]model.Pet, error)
	FindByOwnerId(ownerId int64) ([]model.Pet, error)
	Search(filter PetFilter) ([]model.Pet, error)
	Create(pet *model.Pet) error
	// DeleteByIdAndOwner 只删除属于 ownerId 的记录，返回受影响行数
	DeleteByIdAndOwner(id, ownerId int64) (int64, error)
	DistinctBreeds(species string) ([]string, error)
	DistinctCities() ([]string, error)
}

// ApplicationWithPet 申请记录及所申请宠物的展示信息
type ApplicationWithPet struct {
	Id          int64
	PetId       int64
	ApplicantId int64
	OwnerId     int64
	Description string
	Status      application_status_enum.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PetName     string
	PetImageUrl string
	PetBreed    string
	PetSpecies  string
}

// ReceivedApplication 宠物主人收到的申请，附带申请人信息
type ReceivedApplication struct {
	ApplicationWithPet
	ApplicantFirstName string
	ApplicantLastName  string
	ApplicantEmail     string
}

// ApplicationRepository 领养申请数据访问接口
type ApplicationRepository interface {
	FindById(id int64) (*model.Application, error)
	FindByApplicantAndPet(applicantId, petId int64) (*model.Application, error)
	FindByIdWithPet(id int64) (*ApplicationWithPet, error)
	FindByApplicantWithPet(applicantId int64) ([]ApplicationWithPet, error)
	FindReceivedByOwner(ownerId int64) ([]ReceivedApplication, error)
	Create(app *model.Application) error
	// UpdatePendingStatusByOwner 单条条件更新：仅当申请仍为 pending 且宠物归 ownerId 所有时生效
	UpdatePendingStatusByOwner(id, ownerId int64, status application_status_enum.Status, at time.Time) (int64, error)
	// DeletePendingByApplicant 单条条件删除：仅当申请仍为 pending 且属于 applicantId 时生效
	DeletePendingByApplicant(id, applicantId int64) (int64, error)
	DeleteByPetId(petId int64) error
}

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	Exists(userId, petId int64) (bool, error)
	FindByUserId(userId int64) ([]model.SavedPublication, error)
	Create(fav *model.SavedPublication) error
	Delete(userId, petId int64) error
	DeleteByPetId(petId int64) error
}

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB
	User        UserRepository
	Preference  PreferenceRepository
	Pet         PetRepository
	Application ApplicationRepository
	Favorite    FavoriteRepository
}

// NewRepositories 基于同一个 *gorm.DB 创建所有 Repository
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Preference:  NewPreferenceRepository(db),
		Pet:         NewPetRepository(db),
		Application: NewApplicationRepository(db),
		Favorite:    NewFavoriteRepository(db),
	}
}

// Transaction 在数据库事务中执行函数，fn 返回错误时整体回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// DB 暴露底层连接，供健康检查与关闭使用
func (r *Repositories) DB() *gorm.DB {
	return r.db
}
