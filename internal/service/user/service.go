// Package user 处理注册、登录与个人资料
package user

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/model"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/jwt"
	"pet_adoption_server/pkg/util/snowflake"
)

const msgInvalidCredentials = "invalid email or password"

// userInfoService 用户业务逻辑实现
// 通过构造函数注入依赖，不使用全局实例
type userInfoService struct {
	repos  *repository.Repositories
	cache  myredis.CacheService
	tokens *jwt.Manager
	now    func() time.Time
}

// NewUserService 构造函数，注入 Repository、缓存与令牌管理器
func NewUserService(repos *repository.Repositories, cache myredis.CacheService, tokens *jwt.Manager) *userInfoService {
	return &userInfoService{repos: repos, cache: cache, tokens: tokens, now: time.Now}
}

// birthDate 将年月日拼成 YYYY-MM-DD，拒绝 2 月 30 日这类不存在的日期
func birthDate(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册
// 用户与偏好问卷在同一事务中写入，任一失败整体回滚
func (u *userInfoService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	birth, ok := birthDate(req.BirthYear, req.BirthMonth, req.BirthDate)
	if !ok {
		return nil, errorx.New(errorx.CodeInvalidParam, "invalid birth date")
	}
	email := normalizeEmail(req.Email)

	if _, err := u.repos.User.FindByEmail(email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("find user by email", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	now := u.now()
	user := &model.UserInfo{
		Id:          snowflake.GenerateID(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		RawPassword: req.Password,
		City:        req.City,
		Gender:      req.Gender,
		BirthDate:   birth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pref := &model.UserPreference{
		Id:               snowflake.GenerateID(),
		UserId:           user.Id,
		HasPetExperience: req.HasPetExperience == "yes",
		HasAllergies:     req.HasAllergies == "yes",
		LivingSpace:      req.LivingSpace,
		PetSpending:      req.PetSpending,
		TimeCommitment:   req.TimeCommitment,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.User.Create(user); err != nil {
			return err
		}
		return tx.Preference.Create(pref)
	})
	if err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errorx.Is(err, errorx.CodeConflict) {
			return nil, errorx.New(errorx.CodeUserExist, "email already registered")
		}
		zap.L().Error("register user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("user registered", zap.Int64("user_id", user.Id))
	return &respond.RegisterRespond{UserId: strconv.FormatInt(user.Id, 10)}, nil
}

// Login 登录，签发双 Token
// 邮箱不存在和密码错误返回同一条消息
func (u *userInfoService) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, msgInvalidCredentials)
		}
		zap.L().Error("find user by email", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeUnauthorized, msgInvalidCredentials)
	}

	uid := strconv.FormatInt(user.Id, 10)
	accessToken, _, err := u.tokens.GenerateAccessToken(jwt.Principal{
		UserID:    uid,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		zap.L().Error("generate access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := u.tokens.GenerateRefreshToken(uid)
	if err != nil {
		zap.L().Error("generate refresh token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 将 Refresh Token ID 存入 Redis，后登录的会话覆盖先前的
	if err := u.cache.Set(ctx, constants.USER_TOKEN_PREFIX+uid, tokenID, u.tokens.RefreshTokenExpiry()); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("store refresh token id", zap.Error(err))
	}

	return &respond.LoginRespond{
		User: respond.UserBrief{
			Id:        uid,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.tokens.AccessTokenExpiry().Seconds()),
	}, nil
}

// GetProfile 个人资料与偏好问卷
func (u *userInfoService) GetProfile(userId int64) (*respond.ProfileRespond, error) {
	user, err := u.repos.User.FindById(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "user not found")
		}
		zap.L().Error("find user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.ProfileRespond{
		Id:        strconv.FormatInt(user.Id, 10),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		City:      user.City,
		Gender:    user.Gender,
		BirthDate: user.BirthDate,
		CreatedAt: user.CreatedAt,
	}
	pref, err := u.repos.Preference.FindByUserId(userId)
	switch {
	case err == nil:
		rsp.Preferences = ToPreferenceRespond(pref)
	case errorx.IsNotFound(err):
	default:
		zap.L().Error("find user preference", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return rsp, nil
}

// ToPreferenceRespond 偏好问卷展示结构，pref 为 nil 时返回 nil
func ToPreferenceRespond(pref *model.UserPreference) *respond.PreferenceRespond {
	if pref == nil {
		return nil
	}
	return &respond.PreferenceRespond{
		HasPetExperience: pref.HasPetExperience,
		HasAllergies:     pref.HasAllergies,
		LivingSpace:      pref.LivingSpace,
		PetSpending:      pref.PetSpending,
		TimeCommitment:   pref.TimeCommitment,
	}
}
