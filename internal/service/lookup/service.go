// Package lookup 提供品种与城市下拉数据，旁路缓存到 Redis
package lookup

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
)

type lookupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService

	// mu 串行化回写与失效；generation 每次失效加一
	// 回写任务只在查库前后 generation 未变时落缓存
	mu         sync.Mutex
	generation uint64
}

func NewLookupService(repos *repository.Repositories, cache myredis.AsyncCacheService) *lookupService {
	return &lookupService{repos: repos, cache: cache}
}

// breedsKey species 为空与 "Any" 共用一个键
func breedsKey(species string) string {
	if species == "" || species == constants.ANY {
		return constants.PET_BREEDS_PREFIX + constants.ANY
	}
	return constants.PET_BREEDS_PREFIX + species
}

// Breeds 指定物种下出现过的品种，species 为 Any 时返回全部
func (s *lookupService) Breeds(ctx context.Context, species string) ([]string, error) {
	if species == constants.ANY {
		species = ""
	}
	return s.cached(ctx, breedsKey(species), func() ([]string, error) {
		return s.repos.Pet.DistinctBreeds(species)
	})
}

// Cities 已发布宠物所在的城市
func (s *lookupService) Cities(ctx context.Context) ([]string, error) {
	return s.cached(ctx, constants.PET_CITIES_KEY, s.repos.Pet.DistinctCities)
}

// cached 先读缓存，未命中查库后异步回写
// 查库期间发生过失效则放弃回写，缓存读写失败只记日志
func (s *lookupService) cached(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	if raw, err := s.cache.Get(ctx, key); err != nil {
		zap.L().Warn("lookup cache get", zap.String("key", key), zap.Error(err))
	} else if raw != "" {
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err == nil {
			return values, nil
		}
		zap.L().Warn("lookup cache corrupted", zap.String("key", key))
	}

	gen := s.currentGeneration()
	values, err := load()
	if err != nil {
		zap.L().Error("load lookup values", zap.String("key", key), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if values == nil {
		values = []string{}
	}

	data, err := json.Marshal(values)
	if err == nil {
		s.cache.SubmitTask(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation != gen {
				zap.L().Debug("skip stale lookup write-back", zap.String("key", key))
				return
			}
			if err := s.cache.Set(context.Background(), key, string(data), constants.LOOKUP_CACHE_EXPIRY); err != nil {
				zap.L().Warn("lookup cache set", zap.String("key", key), zap.Error(err))
			}
		})
	}
	return values, nil
}

func (s *lookupService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Invalidate 宠物发布或删除后清理下拉缓存
// 同步删除，返回后的读取不会再命中旧值
func (s *lookupService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	ctx := context.Background()
	if err := s.cache.DeleteByPattern(ctx, constants.PET_BREEDS_PREFIX+"*"); err != nil {
		zap.L().Warn("invalidate breeds cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, constants.PET_CITIES_KEY); err != nil {
		zap.L().Warn("invalidate cities cache", zap.Error(err))
	}
}
