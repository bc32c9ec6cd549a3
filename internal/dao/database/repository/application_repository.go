package repository

import (
	"time"

	"pet_adoption_server/internal/model"
	"pet_adoption_server/pkg/enum/application/application_status_enum"

	"gorm.io/gorm"
)

const applicationWithPetColumns = "applications.id, applications.pet_id, applications.applicant_id, pets.owner_id, " +
	"applications.description, applications.status, applications.created_at, applications.updated_at, " +
	"pets.name AS pet_name, pets.image_url AS pet_image_url, pets.breed AS pet_breed, pets.species AS pet_species"

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建领养申请 Repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindById(id int64) (*model.Application, error) {
	var app model.Application
	if err := r.db.First(&app, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query application id=%d", id)
	}
	return &app, nil
}

func (r *applicationRepository) FindByApplicantAndPet(applicantId, petId int64) (*model.Application, error) {
	var app model.Application
	if err := r.db.Where("applicant_id = ? AND pet_id = ?", applicantId, petId).First(&app).Error; err != nil {
		return nil, wrapDBErrorf(err, "query application applicant_id=%d pet_id=%d", applicantId, petId)
	}
	return &app, nil
}

func (r *applicationRepository) FindByIdWithPet(id int64) (*ApplicationWithPet, error) {
	var row ApplicationWithPet
	res := r.db.Model(&model.Application{}).
		Select(applicationWithPetColumns).
		Joins("JOIN pets ON pets.id = applications.pet_id").
		Where("applications.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, wrapDBErrorf(res.Error, "query application id=%d", id)
	}
	if res.RowsAffected == 0 {
		return nil, wrapDBErrorf(gorm.ErrRecordNotFound, "query application id=%d", id)
	}
	return &row, nil
}

// FindByApplicantWithPet 我提交的申请，按提交时间倒序
func (r *applicationRepository) FindByApplicantWithPet(applicantId int64) ([]ApplicationWithPet, error) {
	var rows []ApplicationWithPet
	err := r.db.Model(&model.Application{}).
		Select(applicationWithPetColumns).
		Joins("JOIN pets ON pets.id = applications.pet_id").
		Where("applications.applicant_id = ?", applicantId).
		Order("applications.created_at DESC, applications.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "query applications applicant_id=%d", applicantId)
	}
	return rows, nil
}

// FindReceivedByOwner 我发布的宠物收到的申请
func (r *applicationRepository) FindReceivedByOwner(ownerId int64) ([]ReceivedApplication, error) {
	var rows []ReceivedApplication
	err := r.db.Model(&model.Application{}).
		Select(applicationWithPetColumns+", users.first_name AS applicant_first_name, "+
			"users.last_name AS applicant_last_name, users.email AS applicant_email").
		Joins("JOIN pets ON pets.id = applications.pet_id").
		Joins("JOIN users ON users.id = applications.applicant_id").
		Where("pets.owner_id = ?", ownerId).
		Order("applications.created_at DESC, applications.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "query received applications owner_id=%d", ownerId)
	}
	return rows, nil
}

func (r *applicationRepository) Create(app *model.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return wrapDBError(err, "create application")
	}
	return nil
}

// UpdatePendingStatusByOwner 状态校验与归属校验放进同一条 UPDATE，避免先查后改的竞争
func (r *applicationRepository) UpdatePendingStatusByOwner(id, ownerId int64, status application_status_enum.Status, at time.Time) (int64, error) {
	ownedPets := r.db.Model(&model.Pet{}).Select("id").Where("owner_id = ?", ownerId)
	res := r.db.Model(&model.Application{}).
		Where("id = ? AND status = ?", id, application_status_enum.Pending).
		Where("pet_id IN (?)", ownedPets).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "update application status id=%d", id)
	}
	return res.RowsAffected, nil
}

func (r *applicationRepository) DeletePendingByApplicant(id, applicantId int64) (int64, error) {
	res := r.db.Where("id = ? AND applicant_id = ? AND status = ?", id, applicantId, application_status_enum.Pending).
		Delete(&model.Application{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "withdraw application id=%d", id)
	}
	return res.RowsAffected, nil
}

func (r *applicationRepository) DeleteByPetId(petId int64) error {
	if err := r.db.Where("pet_id = ?", petId).Delete(&model.Application{}).Error; err != nil {
		return wrapDBErrorf(err, "delete applications pet_id=%d", petId)
	}
	return nil
}
