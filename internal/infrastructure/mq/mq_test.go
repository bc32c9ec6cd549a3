package mq

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"pet_adoption_server/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent map[int64][][]byte
}

func (r *recordingSender) SendToUser(userId int64, message []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent == nil {
		r.sent = make(map[int64][][]byte)
	}
	r.sent[userId] = append(r.sent[userId], message)
	return 1
}

func (r *recordingSender) count(userId int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent[userId])
}

func sampleEvent(kind string) ApplicationEvent {
	return ApplicationEvent{
		Type: kind, ApplicationId: 10, PetId: 20, PetName: "Max",
		ApplicantId: 1, OwnerId: 2, Status: "pending",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecipient(t *testing.T) {
	cases := map[string]int64{
		EventApplicationCreated:   2,
		EventApplicationWithdrawn: 2,
		EventApplicationApproved:  1,
		EventApplicationRejected:  1,
	}
	for kind, want := range cases {
		uid, ok := sampleEvent(kind).Recipient()
		assert.True(t, ok, kind)
		assert.Equal(t, want, uid, kind)
	}
	_, ok := sampleEvent("application.unknown").Recipient()
	assert.False(t, ok)
}

func TestDispatcherPayload(t *testing.T) {
	sender := &recordingSender{}
	NewDispatcher(sender).Handle(context.Background(), sampleEvent(EventApplicationApproved))

	require.Equal(t, 1, sender.count(1))
	var n Notification
	require.NoError(t, json.Unmarshal(sender.sent[1][0], &n))
	assert.Equal(t, "application_event", n.Kind)
	assert.Equal(t, int64(10), n.Event.ApplicationId)
	assert.Equal(t, "Max", n.Event.PetName)
}

func TestChannelBrokerDelivers(t *testing.T) {
	sender := &recordingSender{}
	b := NewChannelBroker(4, NewDispatcher(sender).Handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { b.Start(ctx); close(done) }()

	require.NoError(t, b.Publish(ctx, sampleEvent(EventApplicationCreated)))
	require.NoError(t, b.Publish(ctx, sampleEvent(EventApplicationRejected)))

	assert.Eventually(t, func() bool { return sender.count(2) == 1 && sender.count(1) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, b.Close())
	<-done
	assert.Error(t, b.Publish(context.Background(), sampleEvent(EventApplicationCreated)))
}

func TestChannelBrokerSurvivesHandlerPanic(t *testing.T) {
	var mu sync.Mutex
	handled := 0
	b := NewChannelBroker(4, func(_ context.Context, e ApplicationEvent) {
		if e.Type == "boom" {
			panic("boom")
		}
		mu.Lock()
		handled++
		mu.Unlock()
	})
	ctx := context.Background()
	require.NoError(t, b.Publish(ctx, ApplicationEvent{Type: "boom"}))
	require.NoError(t, b.Publish(ctx, sampleEvent(EventApplicationCreated)))
	require.NoError(t, b.Close())

	// 关闭后 Start 会处理完已入队事件再返回
	b.Start(ctx)
	assert.Equal(t, 1, handled)
}

func TestChannelBrokerPublishRespectsContext(t *testing.T) {
	b := NewChannelBroker(0, func(context.Context, ApplicationEvent) {})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Publish(ctx, sampleEvent(EventApplicationCreated)), context.DeadlineExceeded)
}

func TestKafkaMessageRoundTrip(t *testing.T) {
	event := sampleEvent(EventApplicationWithdrawn)
	msg, err := toKafkaMessage(event)
	require.NoError(t, err)
	assert.Equal(t, "20", string(msg.Key))

	got, err := fromKafkaMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestNewBroker(t *testing.T) {
	b, err := NewBroker(&config.KafkaConfig{MessageMode: "channel"}, func(context.Context, ApplicationEvent) {})
	require.NoError(t, err)
	assert.IsType(t, &ChannelBroker{}, b)

	_, err = NewBroker(&config.KafkaConfig{MessageMode: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}

func TestKafkaWriterDoesNotWaitForBatch(t *testing.T) {
	// 未配置 groupId 的 Reader 在首次读取前不建立连接
	b := NewKafkaBroker(&config.KafkaConfig{HostPort: "127.0.0.1:1", EventTopic: "pet.events", Timeout: 1}, nil)
	defer b.Close()
	assert.Equal(t, publishBatchTimeout, b.writer.BatchTimeout)
	assert.Less(t, b.writer.BatchTimeout, 50*time.Millisecond)
}
