package mq

import (
	"context"
	"sync"

	"pet_adoption_server/pkg/errorx"

	"go.uber.org/zap"
)

// ChannelBroker 进程内事件总线
type ChannelBroker struct {
	events  chan ApplicationEvent
	handler EventHandler
	done    chan struct{}
	once    sync.Once
}

func NewChannelBroker(size int, handler EventHandler) *ChannelBroker {
	return &ChannelBroker{
		events:  make(chan ApplicationEvent, size),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Publish 通道满时阻塞直到 ctx 结束
func (b *ChannelBroker) Publish(ctx context.Context, event ApplicationEvent) error {
	select {
	case <-b.done:
		return errorx.New(errorx.CodeServerBusy, "event broker closed")
	default:
	}
	select {
	case b.events <- event:
		return nil
	case <-b.done:
		return errorx.New(errorx.CodeServerBusy, "event broker closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *ChannelBroker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.done:
			b.drain(ctx)
			return
		case event := <-b.events:
			b.dispatch(ctx, event)
		}
	}
}

// drain 关闭后把已入队的事件处理完
func (b *ChannelBroker) drain(ctx context.Context) {
	for {
		select {
		case event := <-b.events:
			b.dispatch(ctx, event)
		default:
			return
		}
	}
}

func (b *ChannelBroker) dispatch(ctx context.Context, event ApplicationEvent) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("event handler panic", zap.Any("recover", r), zap.String("type", event.Type))
		}
	}()
	b.handler(ctx, event)
}

func (b *ChannelBroker) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

var _ Broker = (*ChannelBroker)(nil)
