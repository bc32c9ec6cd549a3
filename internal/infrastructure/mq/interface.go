// Package mq 申请事件总线
// channel 模式走进程内缓冲通道，kafka 模式走 Kafka topic，两者消费后都交给 Dispatcher 推送
package mq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// 申请事件类型
const (
	EventApplicationCreated   = "application.created"
	EventApplicationApproved  = "application.approved"
	EventApplicationRejected  = "application.rejected"
	EventApplicationWithdrawn = "application.withdrawn"
)

// ApplicationEvent 申请状态变化事件
type ApplicationEvent struct {
	Type          string    `json:"type"`
	ApplicationId int64     `json:"application_id,string"`
	PetId         int64     `json:"pet_id,string"`
	PetName       string    `json:"pet_name"`
	ApplicantId   int64     `json:"applicant_id,string"`
	OwnerId       int64     `json:"owner_id,string"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Recipient 事件需要通知的用户
// 新申请与撤回通知宠物主人，审批结果通知申请人
func (e ApplicationEvent) Recipient() (int64, bool) {
	switch e.Type {
	case EventApplicationCreated, EventApplicationWithdrawn:
		return e.OwnerId, true
	case EventApplicationApproved, EventApplicationRejected:
		return e.ApplicantId, true
	default:
		return 0, false
	}
}

// Key 分区键，同一只宠物的事件落在同一分区保证顺序
func (e ApplicationEvent) Key() []byte {
	return []byte(strconv.FormatInt(e.PetId, 10))
}

func (e ApplicationEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEvent(data []byte) (ApplicationEvent, error) {
	var e ApplicationEvent
	err := json.Unmarshal(data, &e)
	return e, err
}

// EventPublisher 事件发布接口，Service 层只依赖它
type EventPublisher interface {
	Publish(ctx context.Context, event ApplicationEvent) error
}

// EventHandler 事件消费回调
type EventHandler func(ctx context.Context, event ApplicationEvent)

// Broker 发布 + 后台消费
type Broker interface {
	EventPublisher
	// Start 启动消费循环，ctx 取消后返回
	Start(ctx context.Context)
	Close() error
}

// MessageSender 消息推送接口
// 用于解耦 MQ 层和 Gateway 层，MQ 只需知道"有个东西能给用户发消息"
type MessageSender interface {
	// SendToUser 向用户的所有在线连接推送，返回成功投递的连接数
	SendToUser(userId int64, message []byte) int
}

// NopPublisher 丢弃所有事件，用于测试或关闭通知
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ApplicationEvent) error { return nil }
