package user

import (
	"context"
	"strconv"
	"testing"

	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/testutil"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() request.RegisterRequest {
	return request.RegisterRequest{
		FirstName: "Aigerim", LastName: "Sadykova", Email: "Aigerim@Example.com", Password: "secret123",
		City: "Almaty", Gender: "Female", BirthYear: 1995, BirthMonth: 2, BirthDate: 28,
		HasPetExperience: "yes", HasAllergies: "no", LivingSpace: "Apartment",
		PetSpending: "100-200", TimeCommitment: "2-4 hours",
	}
}

func newService(t *testing.T) (*userInfoService, *myredis.MemoryCache) {
	t.Helper()
	cache := myredis.NewMemoryCache()
	return NewUserService(testutil.NewRepos(t), cache, jwt.NewManager("test-secret", 60, 24)), cache
}

func TestRegister(t *testing.T) {
	svc, _ := newService(t)

	rsp, err := svc.Register(validRegister())
	require.NoError(t, err)
	uid, err := strconv.ParseInt(rsp.UserId, 10, 64)
	require.NoError(t, err)

	user, err := svc.repos.User.FindById(uid)
	require.NoError(t, err)
	assert.Equal(t, "aigerim@example.com", user.Email)
	assert.Equal(t, "1995-02-28", user.BirthDate)
	assert.NotEqual(t, "secret123", user.Password)

	pref, err := svc.repos.Preference.FindByUserId(uid)
	require.NoError(t, err)
	assert.True(t, pref.HasPetExperience)
	assert.False(t, pref.HasAllergies)
	assert.Equal(t, "Apartment", pref.LivingSpace)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	req := validRegister()
	req.Email = "aigerim@example.COM"
	_, err = svc.Register(req)
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestRegisterInvalidBirthDate(t *testing.T) {
	svc, _ := newService(t)
	req := validRegister()
	req.BirthMonth, req.BirthDate = 2, 30
	_, err := svc.Register(req)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestLogin(t *testing.T) {
	svc, cache := newService(t)
	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	rsp, err := svc.Login(context.Background(), request.LoginRequest{Email: "aigerim@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Aigerim", rsp.User.FirstName)
	assert.Equal(t, int64(3600), rsp.ExpiresIn)

	access, err := svc.tokens.ParseTokenWithSubject(rsp.AccessToken, jwt.SubjectAccess)
	require.NoError(t, err)
	assert.Equal(t, rsp.User.Id, access.UserID)
	assert.Equal(t, "aigerim@example.com", access.Email)

	refresh, err := svc.tokens.ParseTokenWithSubject(rsp.RefreshToken, jwt.SubjectRefresh)
	require.NoError(t, err)
	stored, err := cache.Get(context.Background(), constants.USER_TOKEN_PREFIX+rsp.User.Id)
	require.NoError(t, err)
	assert.Equal(t, refresh.ID, stored)
}

func TestLoginFailuresShareMessage(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), request.LoginRequest{Email: "aigerim@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), request.LoginRequest{Email: "ghost@example.com", Password: "secret123"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGetProfile(t *testing.T) {
	svc, _ := newService(t)
	reg, err := svc.Register(validRegister())
	require.NoError(t, err)
	uid, _ := strconv.ParseInt(reg.UserId, 10, 64)

	profile, err := svc.GetProfile(uid)
	require.NoError(t, err)
	assert.Equal(t, "Almaty", profile.City)
	require.NotNil(t, profile.Preferences)
	assert.Equal(t, "2-4 hours", profile.Preferences.TimeCommitment)

	_, err = svc.GetProfile(1)
	assert.True(t, errorx.IsNotFound(err))
}
