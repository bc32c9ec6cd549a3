package mq

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Notification 推送给前端的消息体
type Notification struct {
	Kind  string           `json:"kind"`
	Event ApplicationEvent `json:"event"`
}

// Dispatcher 把申请事件转成通知推送给相关用户
type Dispatcher struct {
	sender MessageSender
}

func NewDispatcher(sender MessageSender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Handle 满足 EventHandler 签名
func (d *Dispatcher) Handle(_ context.Context, event ApplicationEvent) {
	uid, ok := event.Recipient()
	if !ok {
		zap.L().Warn("drop application event with unknown type", zap.String("type", event.Type))
		return
	}
	payload, err := json.Marshal(Notification{Kind: "application_event", Event: event})
	if err != nil {
		zap.L().Error("marshal notification", zap.Error(err))
		return
	}
	delivered := d.sender.SendToUser(uid, payload)
	zap.L().Debug("application event dispatched",
		zap.String("type", event.Type),
		zap.Int64("recipient", uid),
		zap.Int("connections", delivered))
}
