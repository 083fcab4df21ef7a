// Package mq 提供基于 Watermill 的发布/订阅客户端.
// 通过工厂模式抽象不同实现：
//   - gochannel 进程内发布订阅（默认，单实例部署与测试）
//   - NATS（可选 JetStream）
//
// 使用示例：
//
//	client, err := mq.New(ctx, cfg.MQ, mq.Options{Metrics: true})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	msg := message.NewMessage(watermill.NewUUID(), payload)
//	err = client.Publish(ctx, queue.TopicFileUploaded, msg)
package mq

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/genomeinsight/pkg/configs"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[configs.MQType]Factory{}
)

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[t] = f
}

// GetRegisteredMQTypes 返回已注册的 MQ 类型列表.
func GetRegisteredMQTypes() []configs.MQType {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Options 客户端选项.
type Options struct {
	// Metrics 为 publisher/subscriber 添加 prometheus 指标
	Metrics bool
	// Registerer 指标注册表，为空时使用默认注册表
	Registerer prometheus.Registerer
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	kind       configs.MQType
	publisher  message.Publisher
	subscriber message.Subscriber

	closeOnce sync.Once
	closeErr  error
}

// New 根据配置创建客户端.
func New(ctx context.Context, cfg configs.MQConfig, opts Options) (*Client, error) {
	kind := cfg.Type
	if kind == "" {
		kind = configs.MQTypeGoChannel
	}

	factoriesMu.RLock()
	factory, ok := factories[kind]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", kind)
	}

	logger := NewLoggerAdapter(nlog.Logger())

	pub, sub, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", kind, err)
	}

	if opts.Metrics {
		reg := opts.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		builder := metrics.NewPrometheusMetricsBuilder(reg, "genomeinsight", "mq")

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(kind)).Bool("metrics", opts.Metrics).Msg("mq client initialized")

	return &Client{kind: kind, publisher: pub, subscriber: sub}, nil
}

// NewWithPubSub 使用现成的 publisher/subscriber 创建客户端.
func NewWithPubSub(kind configs.MQType, pub message.Publisher, sub message.Subscriber) *Client {
	return &Client{kind: kind, publisher: pub, subscriber: sub}
}

// Kind 返回实现类型.
func (c *Client) Kind() configs.MQType { return c.kind }

// Publisher 返回底层 publisher.
func (c *Client) Publisher() message.Publisher { return c.publisher }

// Publish 便捷发布.
func (c *Client) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return errors.New("mq publisher not initialized")
	}

	for _, m := range msgs {
		m.SetContext(ctx)
	}

	return c.publisher.Publish(topic, msgs...)
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, errors.New("mq subscriber not initialized")
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// Close 关闭资源，可重复调用.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		var errs []error

		if c.publisher != nil {
			errs = append(errs, c.publisher.Close())
		}

		// gochannel 的 publisher 与 subscriber 共享实例，重复关闭是安全的
		if c.subscriber != nil {
			errs = append(errs, c.subscriber.Close())
		}

		c.closeErr = errors.Join(errs...)
	})

	return c.closeErr
}
