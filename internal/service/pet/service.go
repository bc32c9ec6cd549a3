// Package pet 处理宠物发布、搜索与删除
package pet

import (
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/infrastructure/storage"
	"pet_adoption_server/internal/model"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/enum/pet/pet_filter_enum"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/snowflake"
)

const day = 24 * time.Hour

// LookupInvalidator 宠物增删后清理品种、城市下拉缓存
type LookupInvalidator interface {
	Invalidate()
}

// petService 宠物业务逻辑实现
type petService struct {
	repos       *repository.Repositories
	store       storage.FileStore
	lookup      LookupInvalidator
	placeholder string
	now         func() time.Time
}

// NewPetService placeholder 为图片上传失败时使用的占位图路径
func NewPetService(repos *repository.Repositories, store storage.FileStore, lookup LookupInvalidator, placeholder string) *petService {
	return &petService{repos: repos, store: store, lookup: lookup, placeholder: placeholder, now: time.Now}
}

// Create 发布宠物
// 图片保存失败时退回占位图，证件保存失败时不记录证件，都不影响发布
func (p *petService) Create(ownerId int64, req request.CreatePetRequest, image, passport *multipart.FileHeader) (*respond.CreatePetRespond, error) {
	fields := []*string{
		&req.Name, &req.Species, &req.Breed, &req.Age, &req.AgeCategory, &req.Gender,
		&req.Size, &req.CoatLength, &req.Location, &req.City, &req.AdoptionType,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "missing required fields")
		}
	}
	goodWithKids, ok := pet_filter_enum.ParseYesNo(req.GoodWithKids)
	if !ok {
		return nil, errorx.New(errorx.CodeInvalidParam, "good_with_kids must be yes or no")
	}

	imageUrl := p.placeholder
	if image != nil {
		if url, err := p.store.SaveImage(image); err != nil {
			zap.L().Warn("save pet image, falling back to placeholder", zap.Error(err))
		} else {
			imageUrl = url
		}
	}
	var passportPath *string
	if passport != nil {
		if path, err := p.store.SaveDocument(passport); err != nil {
			zap.L().Warn("save pet passport, skipping", zap.Error(err))
		} else {
			passportPath = &path
		}
	}

	now := p.now()
	pet := &model.Pet{
		Id:           snowflake.GenerateID(),
		OwnerId:      ownerId,
		Name:         req.Name,
		Species:      req.Species,
		Breed:        req.Breed,
		Age:          req.Age,
		AgeCategory:  req.AgeCategory,
		Gender:       req.Gender,
		Size:         req.Size,
		CoatLength:   req.CoatLength,
		GoodWithKids: goodWithKids,
		Location:     req.Location,
		City:         req.City,
		AdoptionType: req.AdoptionType,
		Description:  strings.TrimSpace(req.Description),
		ImageUrl:     imageUrl,
		PassportPath: passportPath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.repos.Pet.Create(pet); err != nil {
		zap.L().Error("create pet", zap.Error(err))
		p.removeFiles(pet)
		return nil, errorx.ErrServerBusy
	}
	p.lookup.Invalidate()
	zap.L().Info("pet published", zap.Int64("pet_id", pet.Id), zap.Int64("owner_id", ownerId))

	return &respond.CreatePetRespond{
		PetId:        strconv.FormatInt(pet.Id, 10),
		ImageUrl:     pet.ImageUrl,
		PassportPath: pet.PassportPath,
	}, nil
}

// Get 宠物详情
func (p *petService) Get(petId int64) (*respond.PetDetailRespond, error) {
	pet, err := p.repos.Pet.FindById(petId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "pet not found")
		}
		zap.L().Error("find pet", zap.Error(err), zap.Int64("pet_id", petId))
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.PetDetailRespond{PetRespond: ToPetRespond(pet, p.now())}
	owner, err := p.repos.User.FindById(pet.OwnerId)
	switch {
	case err == nil:
		rsp.OwnerName = owner.FullName()
	case errorx.IsNotFound(err):
	default:
		zap.L().Error("find pet owner", zap.Error(err), zap.Int64("owner_id", pet.OwnerId))
		return nil, errorx.ErrServerBusy
	}
	return rsp, nil
}

// ListByOwner 我发布的宠物
func (p *petService) ListByOwner(ownerId int64) (*respond.PetListRespond, error) {
	pets, err := p.repos.Pet.FindByOwnerId(ownerId)
	if err != nil {
		zap.L().Error("find pets by owner", zap.Error(err), zap.Int64("owner_id", ownerId))
		return nil, errorx.ErrServerBusy
	}
	return p.toList(pets), nil
}

// Search 所有条件均可选，空值与 "Any" 不参与过滤
func (p *petService) Search(req request.SearchPetRequest) (*respond.PetListRespond, error) {
	filter, err := p.buildFilter(req)
	if err != nil {
		return nil, err
	}
	pets, err := p.repos.Pet.Search(filter)
	if err != nil {
		zap.L().Error("search pets", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return p.toList(pets), nil
}

func anyOrValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, constants.ANY) {
		return ""
	}
	return v
}

func (p *petService) buildFilter(req request.SearchPetRequest) (repository.PetFilter, error) {
	filter := repository.PetFilter{
		Species:      anyOrValue(req.Species),
		Breed:        anyOrValue(req.Breed),
		AgeCategory:  anyOrValue(req.Age),
		Size:         anyOrValue(req.Size),
		Gender:       anyOrValue(req.Gender),
		City:         anyOrValue(req.City),
		CoatLength:   anyOrValue(req.CoatLength),
		AdoptionType: anyOrValue(req.AdoptionType),
		Keyword:      strings.TrimSpace(req.Search),
	}
	if v := anyOrValue(req.GoodWithKids); v != "" {
		b, ok := pet_filter_enum.ParseYesNo(v)
		if !ok {
			return filter, errorx.Newf(errorx.CodeInvalidParam, "invalid good_with_kids %q", req.GoodWithKids)
		}
		filter.GoodWithKids = &b
	}
	if v := anyOrValue(req.DaysOnPlatform); v != "" {
		after, notAfter, ok := daysRange(v, p.now())
		if !ok {
			return filter, errorx.Newf(errorx.CodeInvalidParam, "invalid days_on_platform %q", req.DaysOnPlatform)
		}
		filter.CreatedAfter, filter.CreatedNotAfter = after, notAfter
	}
	return filter, nil
}

// daysRange 把上架天数区间换算成 created_at 区间
// 第 N 天指已过去 N-1 个整天，所以 "1-7" 即 created_at > now-7d
func daysRange(bucket string, now time.Time) (after, notAfter *time.Time, ok bool) {
	ago := func(days int) *time.Time {
		t := now.Add(-time.Duration(days) * day)
		return &t
	}
	switch pet_filter_enum.DaysBucket(bucket) {
	case pet_filter_enum.DaysWeek:
		return ago(7), nil, true
	case pet_filter_enum.DaysMonth:
		return ago(30), ago(7), true
	case pet_filter_enum.DaysQuarter:
		return ago(90), ago(30), true
	case pet_filter_enum.DaysOlder:
		return nil, ago(90), true
	}
	return nil, nil, false
}

// Delete 只有发布者可以删除，其他人与不存在统一返回 NotFound
// 申请与收藏在同一事务中一并删除，文件在提交后尽力清理
func (p *petService) Delete(petId, actorId int64) error {
	notFound := errorx.New(errorx.CodeNotFound, "pet not found")
	pet, err := p.repos.Pet.FindById(petId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return notFound
		}
		zap.L().Error("find pet", zap.Error(err), zap.Int64("pet_id", petId))
		return errorx.ErrServerBusy
	}
	if pet.OwnerId != actorId {
		return notFound
	}

	err = p.repos.Transaction(func(tx *repository.Repositories) error {
		n, err := tx.Pet.DeleteByIdAndOwner(petId, actorId)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound
		}
		if err := tx.Application.DeleteByPetId(petId); err != nil {
			return err
		}
		return tx.Favorite.DeleteByPetId(petId)
	})
	if err != nil {
		if errorx.IsNotFound(err) {
			return notFound
		}
		zap.L().Error("delete pet", zap.Error(err), zap.Int64("pet_id", petId))
		return errorx.ErrServerBusy
	}

	p.removeFiles(pet)
	p.lookup.Invalidate()
	zap.L().Info("pet deleted", zap.Int64("pet_id", petId), zap.Int64("owner_id", actorId))
	return nil
}

func (p *petService) removeFiles(pet *model.Pet) {
	paths := []string{pet.ImageUrl}
	if pet.PassportPath != nil {
		paths = append(paths, *pet.PassportPath)
	}
	for _, path := range paths {
		if path == p.placeholder {
			continue
		}
		if err := p.store.Remove(path); err != nil {
			zap.L().Warn("remove pet file", zap.String("path", path), zap.Error(err))
		}
	}
}

func (p *petService) toList(pets []model.Pet) *respond.PetListRespond {
	now := p.now()
	list := make([]respond.PetRespond, 0, len(pets))
	for i := range pets {
		list = append(list, ToPetRespond(&pets[i], now))
	}
	return &respond.PetListRespond{Pets: list}
}

// ToPetRespond 宠物展示结构，上架天数按 now 计算
func ToPetRespond(pet *model.Pet, now time.Time) respond.PetRespond {
	return respond.PetRespond{
		Id:             strconv.FormatInt(pet.Id, 10),
		OwnerId:        strconv.FormatInt(pet.OwnerId, 10),
		Name:           pet.Name,
		Species:        pet.Species,
		Breed:          pet.Breed,
		Age:            pet.Age,
		AgeCategory:    pet.AgeCategory,
		Gender:         pet.Gender,
		Size:           pet.Size,
		CoatLength:     pet.CoatLength,
		GoodWithKids:   pet.GoodWithKids,
		Location:       pet.Location,
		City:           pet.City,
		AdoptionType:   pet.AdoptionType,
		Description:    pet.Description,
		ImageUrl:       pet.ImageUrl,
		PassportPath:   pet.PassportPath,
		DaysOnPlatform: pet.DaysOnPlatform(now),
		CreatedAt:      pet.CreatedAt,
	}
}
