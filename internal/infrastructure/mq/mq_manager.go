package mq

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"pet_adoption_server/internal/config"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker 基于 kafka-go 的事件总线
type KafkaBroker struct {
	writer  *kafka.Writer
	reader  *kafka.Reader
	handler EventHandler
}

// publishBatchTimeout 每次发布只有一条事件，不等默认的 1s 攒批
const publishBatchTimeout = 5 * time.Millisecond

// NewKafkaBroker 创建 Writer 与消费者组 Reader，不会立即建立连接
func NewKafkaBroker(conf *config.KafkaConfig, handler EventHandler) *KafkaBroker {
	timeout := conf.Timeout * time.Second
	return &KafkaBroker{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.EventTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           publishBatchTimeout,
			WriteTimeout:           timeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.EventTopic,
			GroupID:        conf.GroupID,
			CommitInterval: timeout,
			StartOffset:    kafka.LastOffset,
		}),
		handler: handler,
	}
}

// CreateTopic 创建事件 topic，已存在时 Kafka 返回的错误只记日志
func CreateTopic(conf *config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", conf.HostPort)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "dial kafka")
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "find kafka controller")
	}
	ctrlConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "dial kafka controller")
	}
	defer ctrlConn.Close()

	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             conf.EventTopic,
		NumPartitions:     conf.Partition,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return errorx.Wrap(err, errorx.CodeServerBusy, "create kafka topic")
	}
	return nil
}

func (k *KafkaBroker) Publish(ctx context.Context, event ApplicationEvent) error {
	msg, err := toKafkaMessage(event)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "encode application event")
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "publish application event")
	}
	return nil
}

func (k *KafkaBroker) Start(ctx context.Context) {
	for {
		m, err := k.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			zap.L().Error("read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		zap.L().Debug("kafka message received",
			zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset))

		event, err := fromKafkaMessage(m)
		if err != nil {
			zap.L().Error("decode application event", zap.Error(err), zap.ByteString("value", m.Value))
			continue
		}
		k.dispatch(ctx, event)
	}
}

func (k *KafkaBroker) dispatch(ctx context.Context, event ApplicationEvent) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("event handler panic", zap.Any("recover", r), zap.String("type", event.Type))
		}
	}()
	k.handler(ctx, event)
}

func (k *KafkaBroker) Close() error {
	werr := k.writer.Close()
	rerr := k.reader.Close()
	return errors.Join(werr, rerr)
}

func toKafkaMessage(event ApplicationEvent) (kafka.Message, error) {
	value, err := event.Marshal()
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{Key: event.Key(), Value: value, Time: event.OccurredAt}, nil
}

func fromKafkaMessage(m kafka.Message) (ApplicationEvent, error) {
	return UnmarshalEvent(m.Value)
}

// NewBroker 按 messageMode 选择事件总线实现
func NewBroker(conf *config.KafkaConfig, handler EventHandler) (Broker, error) {
	switch conf.MessageMode {
	case "", "channel":
		return NewChannelBroker(constants.CHANNEL_SIZE, handler), nil
	case "kafka":
		if err := CreateTopic(conf); err != nil {
			zap.L().Warn("create kafka topic", zap.Error(err))
		}
		return NewKafkaBroker(conf, handler), nil
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unsupported message mode %q", conf.MessageMode)
	}
}

var _ Broker = (*KafkaBroker)(nil)
