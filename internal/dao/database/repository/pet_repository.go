package repository

import (
	"strings"

	"pet_adoption_server/internal/model"

	"gorm.io/gorm"
)

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository 创建宠物 Repository
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) FindById(id int64) (*model.Pet, error) {
	var pet model.Pet
	if err := r.db.First(&pet, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query pet id=%d", id)
	}
	return &pet, nil
}

func (r *petRepository) FindByIds(ids []int64) ([]model.Pet, error) {
	var pets []model.Pet
	if len(ids) == 0 {
		return pets, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&pets).Error; err != nil {
		return nil, wrapDBError(err, "batch query pets")
	}
	return pets, nil
}

func (r *petRepository) FindByOwnerId(ownerId int64) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.Where("owner_id = ?", ownerId).Order("created_at DESC, id DESC").Find(&pets).Error; err != nil {
		return nil, wrapDBErrorf(err, "query pets owner_id=%d", ownerId)
	}
	return pets, nil
}

// Search 按条件动态拼接 WHERE，未设置的条件不参与过滤
func (r *petRepository) Search(f PetFilter) ([]model.Pet, error) {
	tx := r.db.Model(&model.Pet{})
	equals := []struct {
		column string
		value  string
	}{
		{"species", f.Species},
		{"breed", f.Breed},
		{"age_category", f.AgeCategory},
		{"size", f.Size},
		{"gender", f.Gender},
		{"city", f.City},
		{"coat_length", f.CoatLength},
		{"adoption_type", f.AdoptionType},
	}
	for _, eq := range equals {
		if eq.value != "" {
			tx = tx.Where(eq.column+" = ?", eq.value)
		}
	}
	if f.GoodWithKids != nil {
		tx = tx.Where("good_with_kids = ?", *f.GoodWithKids)
	}
	if f.CreatedAfter != nil {
		tx = tx.Where("created_at > ?", *f.CreatedAfter)
	}
	if f.CreatedNotAfter != nil {
		tx = tx.Where("created_at <= ?", *f.CreatedNotAfter)
	}
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		like := "%" + kw + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ? OR LOWER(species) LIKE ?", like, like, like)
	}

	var pets []model.Pet
	if err := tx.Order("created_at DESC, id DESC").Find(&pets).Error; err != nil {
		return nil, wrapDBError(err, "search pets")
	}
	return pets, nil
}

func (r *petRepository) Create(pet *model.Pet) error {
	if err := r.db.Create(pet).Error; err != nil {
		return wrapDBError(err, "create pet")
	}
	return nil
}

func (r *petRepository) DeleteByIdAndOwner(id, ownerId int64) (int64, error) {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerId).Delete(&model.Pet{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "delete pet id=%d", id)
	}
	return res.RowsAffected, nil
}

// DistinctBreeds species 为空时返回全部品种
func (r *petRepository) DistinctBreeds(species string) ([]string, error) {
	tx := r.db.Model(&model.Pet{}).Where("breed <> ''")
	if species != "" {
		tx = tx.Where("species = ?", species)
	}
	var breeds []string
	if err := tx.Distinct("breed").Order("breed").Pluck("breed", &breeds).Error; err != nil {
		return nil, wrapDBError(err, "query distinct breeds")
	}
	return breeds, nil
}

func (r *petRepository) DistinctCities() ([]string, error) {
	var cities []string
	if err := r.db.Model(&model.Pet{}).Where("city <> ''").Distinct("city").Order("city").Pluck("city", &cities).Error; err != nil {
		return nil, wrapDBError(err, "query distinct cities")
	}
	return cities, nil
}
