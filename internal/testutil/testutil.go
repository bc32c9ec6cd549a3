// Package testutil 提供测试用的内存数据库与种子数据
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"pet_adoption_server/internal/dao/database"
	"pet_adoption_server/internal/dao/database/repository"
	"pet_adoption_server/internal/infrastructure/mq"
	"pet_adoption_server/internal/model"
	"pet_adoption_server/pkg/util/snowflake"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewRepos 每个测试独立的 SQLite 内存库，已完成迁移
func NewRepos(t testing.TB) *repository.Repositories {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return repository.NewRepositories(db)
}

// SeedUser 插入一个密码为 secret123 的用户
func SeedUser(t testing.TB, repos *repository.Repositories, firstName, email string) *model.UserInfo {
	t.Helper()
	now := time.Now()
	u := &model.UserInfo{
		Id: snowflake.GenerateID(), FirstName: firstName, LastName: "Tester", Email: email,
		RawPassword: "secret123", City: "Almaty", Gender: "Female", BirthDate: "1990-01-01",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.User.Create(u))
	return u
}

// PetOption 修改种子宠物的字段
type PetOption func(*model.Pet)

func WithCreatedAt(at time.Time) PetOption {
	return func(p *model.Pet) { p.CreatedAt, p.UpdatedAt = at, at }
}

func WithSpecies(species, breed string) PetOption {
	return func(p *model.Pet) { p.Species, p.Breed = species, breed }
}

func WithCity(city string) PetOption {
	return func(p *model.Pet) { p.City = city }
}

// SeedPet 插入一只属于 ownerId 的宠物
func SeedPet(t testing.TB, repos *repository.Repositories, ownerId int64, name string, opts ...PetOption) *model.Pet {
	t.Helper()
	now := time.Now()
	p := &model.Pet{
		Id: snowflake.GenerateID(), OwnerId: ownerId, Name: name, Species: "Dog", Breed: "Labrador",
		Age: "2 years", AgeCategory: "Adult", Gender: "Male", Size: "Large", CoatLength: "Short",
		GoodWithKids: true, Location: "Abay ave 10", City: "Almaty", AdoptionType: "Free",
		Description: "Friendly", ImageUrl: "/uploads/seed.jpg", CreatedAt: now, UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, repos.Pet.Create(p))
	return p
}

// RecordingPublisher 记录发布的事件
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []mq.ApplicationEvent
	Err    error
}

func (r *RecordingPublisher) Publish(_ context.Context, event mq.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return r.Err
}

// Types 已发布事件的类型序列
func (r *RecordingPublisher) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
