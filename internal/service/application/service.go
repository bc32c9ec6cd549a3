// Package application 领养申请：提交、审批、撤回与查询
// 状态流转统一经过 application_status_enum.Next 校验，
// 落库时再用条件更新/删除兜底，避免先查后改的并发竞争
package application

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/infrastructure/mq"
	"pet_adoption_server/internal/model"
	"pet_adoption_server/internal/service/user"
	"pet_adoption_server/pkg/enum/application/application_status_enum"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/snowflake"
)

// applicationService 领养申请业务逻辑实现
type applicationService struct {
	repos     *repository.Repositories
	publisher mq.EventPublisher
	now       func() time.Time
}

// NewApplicationService 构造函数，publisher 用于推送申请状态变化
func NewApplicationService(repos *repository.Repositories, publisher mq.EventPublisher) *applicationService {
	return &applicationService{repos: repos, publisher: publisher, now: time.Now}
}

// Create 提交领养申请
// 校验顺序：留言非空 -> 宠物存在 -> 不能申请自己的宠物 -> 不能重复申请
func (a *applicationService) Create(ctx context.Context, applicantId int64, req request.CreateApplicationRequest) (*respond.CreateApplicationRespond, error) {
	petId, err := strconv.ParseInt(strings.TrimSpace(req.PetId), 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "invalid pet id")
	}
	message := strings.TrimSpace(req.Description)
	if message == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "description is required")
	}

	pet, err := a.repos.Pet.FindById(petId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "pet not found")
		}
		zap.L().Error("find pet", zap.Error(err), zap.Int64("pet_id", petId))
		return nil, errorx.ErrServerBusy
	}
	if pet.OwnerId == applicantId {
		return nil, errorx.New(errorx.CodeInvalidParam, "you cannot apply for your own pet")
	}

	if _, err := a.repos.Application.FindByApplicantAndPet(applicantId, petId); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "you have already applied for this pet")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("find application", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	now := a.now()
	app := &model.Application{
		Id:          snowflake.GenerateID(),
		PetId:       petId,
		ApplicantId: applicantId,
		Description: message,
		Status:      application_status_enum.Pending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.repos.Application.Create(app); err != nil {
		// 并发重复提交由 (applicant_id, pet_id) 唯一索引拦下
		if errorx.Is(err, errorx.CodeConflict) {
			return nil, errorx.New(errorx.CodeConflict, "you have already applied for this pet")
		}
		zap.L().Error("create application", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("application created",
		zap.Int64("application_id", app.Id),
		zap.Int64("pet_id", petId),
		zap.Int64("applicant_id", applicantId))

	a.publish(ctx, mq.EventApplicationCreated, app, pet)
	return &respond.CreateApplicationRespond{
		ApplicationId: strconv.FormatInt(app.Id, 10),
		Status:        string(app.Status),
	}, nil
}

// Transition 审批或撤回
//   - withdrawn：仅申请人，记录直接删除
//   - approved / rejected：仅宠物主人，更新状态与 updated_at
//
// 只有 pending 状态可以流转，终态再次操作返回 Conflict
func (a *applicationService) Transition(ctx context.Context, applicationId, actorId int64, target string) (*respond.TransitionRespond, error) {
	action, ok := application_status_enum.ActionFor(strings.TrimSpace(target))
	if !ok {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "invalid status %q", target)
	}
	app, err := a.findApplication(applicationId)
	if err != nil {
		return nil, err
	}
	if action.OwnerAction() {
		return a.decide(ctx, app, actorId, action)
	}
	return a.withdraw(ctx, app, actorId)
}

func (a *applicationService) decide(ctx context.Context, app *model.Application, actorId int64, action application_status_enum.Action) (*respond.TransitionRespond, error) {
	pet, err := a.repos.Pet.FindById(app.PetId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "pet not found")
		}
		zap.L().Error("find pet", zap.Error(err), zap.Int64("pet_id", app.PetId))
		return nil, errorx.ErrServerBusy
	}
	if pet.OwnerId != actorId {
		return nil, errorx.New(errorx.CodeForbidden, "only the pet owner can review this application")
	}
	next, ok := application_status_enum.Next(app.Status, action)
	if !ok {
		return nil, alreadyDecided(app.Status)
	}

	now := a.now()
	n, err := a.repos.Application.UpdatePendingStatusByOwner(app.Id, actorId, next, now)
	if err != nil {
		zap.L().Error("update application status", zap.Error(err), zap.Int64("application_id", app.Id))
		return nil, errorx.ErrServerBusy
	}
	if n == 0 {
		return nil, a.classifyLost(app.Id)
	}
	zap.L().Info("application reviewed",
		zap.Int64("application_id", app.Id),
		zap.String("status", string(next)),
		zap.Int64("owner_id", actorId))

	app.Status, app.UpdatedAt = next, now
	eventType := mq.EventApplicationApproved
	if next == application_status_enum.Rejected {
		eventType = mq.EventApplicationRejected
	}
	a.publish(ctx, eventType, app, pet)
	return &respond.TransitionRespond{
		Application: &respond.ApplicationStatus{
			Id:        strconv.FormatInt(app.Id, 10),
			Status:    string(next),
			UpdatedAt: now,
		},
	}, nil
}

func (a *applicationService) withdraw(ctx context.Context, app *model.Application, actorId int64) (*respond.TransitionRespond, error) {
	if app.ApplicantId != actorId {
		return nil, errorx.New(errorx.CodeForbidden, "only the applicant can withdraw this application")
	}
	if _, ok := application_status_enum.Next(app.Status, application_status_enum.Withdraw); !ok {
		return nil, alreadyDecided(app.Status)
	}
	n, err := a.repos.Application.DeletePendingByApplicant(app.Id, actorId)
	if err != nil {
		zap.L().Error("withdraw application", zap.Error(err), zap.Int64("application_id", app.Id))
		return nil, errorx.ErrServerBusy
	}
	if n == 0 {
		return nil, a.classifyLost(app.Id)
	}
	zap.L().Info("application withdrawn", zap.Int64("application_id", app.Id), zap.Int64("applicant_id", actorId))

	// 宠物信息只用于通知，查不到不影响撤回结果
	pet, err := a.repos.Pet.FindById(app.PetId)
	if err != nil {
		pet = &model.Pet{Id: app.PetId}
	}
	app.Status = application_status_enum.Withdrawn
	a.publish(ctx, mq.EventApplicationWithdrawn, app, pet)
	return &respond.TransitionRespond{Withdrawn: true}, nil
}

// classifyLost 条件更新没有命中时重新读取，区分"已被删除"与"状态已被改变"
func (a *applicationService) classifyLost(applicationId int64) error {
	app, err := a.findApplication(applicationId)
	if err != nil {
		return err
	}
	return alreadyDecided(app.Status)
}

func alreadyDecided(status application_status_enum.Status) error {
	return errorx.Newf(errorx.CodeConflict, "application already %s", status)
}

func (a *applicationService) findApplication(applicationId int64) (*model.Application, error) {
	app, err := a.repos.Application.FindById(applicationId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "application not found")
		}
		zap.L().Error("find application", zap.Error(err), zap.Int64("application_id", applicationId))
		return nil, errorx.ErrServerBusy
	}
	return app, nil
}

// Get 申请人与宠物主人可见，其他人视为不存在
func (a *applicationService) Get(applicationId, actorId int64) (*respond.ApplicationRespond, error) {
	row, err := a.repos.Application.FindByIdWithPet(applicationId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "application not found")
		}
		zap.L().Error("find application", zap.Error(err), zap.Int64("application_id", applicationId))
		return nil, errorx.ErrServerBusy
	}
	if row.ApplicantId != actorId && row.OwnerId != actorId {
		return nil, errorx.New(errorx.CodeNotFound, "application not found")
	}
	rsp := toApplicationRespond(row)
	return &rsp, nil
}

// ListMine 我提交的申请
func (a *applicationService) ListMine(applicantId int64) (*respond.ApplicationListRespond, error) {
	rows, err := a.repos.Application.FindByApplicantWithPet(applicantId)
	if err != nil {
		zap.L().Error("find my applications", zap.Error(err), zap.Int64("applicant_id", applicantId))
		return nil, errorx.ErrServerBusy
	}
	list := make([]respond.ApplicationRespond, 0, len(rows))
	for i := range rows {
		list = append(list, toApplicationRespond(&rows[i]))
	}
	return &respond.ApplicationListRespond{Applications: list}, nil
}

// ListReceived 我发布的宠物收到的申请，附带申请人的领养偏好
func (a *applicationService) ListReceived(ownerId int64) (*respond.ReceivedApplicationListRespond, error) {
	rows, err := a.repos.Application.FindReceivedByOwner(ownerId)
	if err != nil {
		zap.L().Error("find received applications", zap.Error(err), zap.Int64("owner_id", ownerId))
		return nil, errorx.ErrServerBusy
	}

	applicantIds := make([]int64, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ApplicantId]; !ok {
			seen[r.ApplicantId] = struct{}{}
			applicantIds = append(applicantIds, r.ApplicantId)
		}
	}
	prefs, err := a.repos.Preference.FindByUserIds(applicantIds)
	if err != nil {
		zap.L().Error("batch find preferences", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	prefMap := make(map[int64]*model.UserPreference, len(prefs))
	for i := range prefs {
		prefMap[prefs[i].UserId] = &prefs[i]
	}

	list := make([]respond.ReceivedApplicationRespond, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		list = append(list, respond.ReceivedApplicationRespond{
			ApplicationRespond: toApplicationRespond(&r.ApplicationWithPet),
			Applicant: respond.ApplicantRespond{
				Id:        strconv.FormatInt(r.ApplicantId, 10),
				FirstName: r.ApplicantFirstName,
				LastName:  r.ApplicantLastName,
				Email:     r.ApplicantEmail,
			},
			Preferences: user.ToPreferenceRespond(prefMap[r.ApplicantId]),
		})
	}
	return &respond.ReceivedApplicationListRespond{Applications: list}, nil
}

// publish 通知失败只记日志，不影响业务结果
func (a *applicationService) publish(ctx context.Context, eventType string, app *model.Application, pet *model.Pet) {
	event := mq.ApplicationEvent{
		Type:          eventType,
		ApplicationId: app.Id,
		PetId:         app.PetId,
		PetName:       pet.Name,
		ApplicantId:   app.ApplicantId,
		OwnerId:       pet.OwnerId,
		Status:        string(app.Status),
		OccurredAt:    a.now(),
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("publish application event", zap.Error(err), zap.String("type", eventType))
	}
}

func toApplicationRespond(row *repository.ApplicationWithPet) respond.ApplicationRespond {
	return respond.ApplicationRespond{
		Id:          strconv.FormatInt(row.Id, 10),
		PetId:       strconv.FormatInt(row.PetId, 10),
		ApplicantId: strconv.FormatInt(row.ApplicantId, 10),
		OwnerId:     strconv.FormatInt(row.OwnerId, 10),
		Description: row.Description,
		Status:      string(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		PetName:     row.PetName,
		PetImageUrl: row.PetImageUrl,
		PetBreed:    row.PetBreed,
		PetSpecies:  row.PetSpecies,
	}
}
