package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

// natsKeyReplacer NATS KV 的键不允许出现冒号.
var natsKeyReplacer = strings.NewReplacer(":", ".")

// NATSKV 基于 NATS JetStream KV 的详情缓存，已部署 NATS 作为事件总线时无需额外的 Redis.
// 过期由 bucket 的 TTL 统一控制，Set 的 ttl 参数被忽略.
type NATSKV struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKV 连接 NATS 并创建或复用 bucket.
func NewNATSKV(_ context.Context, cfg configs.KVConfig) (KVStore, error) {
	opts := []nats.Option{nats.Name("genomeinsight-kv")}
	if cfg.NATS.User != "" {
		opts = append(opts, nats.UserInfo(cfg.NATS.User, cfg.NATS.Password))
	}

	nc, err := nats.Connect(cfg.NATS.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	kv, err := js.KeyValue(cfg.NATS.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: cfg.NATS.Bucket,
			TTL:    cfg.TTL,
		})
	}

	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("kv bucket %s: %w", cfg.NATS.Bucket, err)
	}

	return &NATSKV{conn: nc, kv: kv}, nil
}

func (n *NATSKV) Get(_ context.Context, key string) ([]byte, error) {
	entry, err := n.kv.Get(natsKeyReplacer.Replace(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("nats kv get %s: %w", key, err)
	}

	return entry.Value(), nil
}

func (n *NATSKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if _, err := n.kv.Put(natsKeyReplacer.Replace(key), value); err != nil {
		return fmt.Errorf("nats kv put %s: %w", key, err)
	}

	return nil
}

func (n *NATSKV) Delete(_ context.Context, key string) error {
	err := n.kv.Delete(natsKeyReplacer.Replace(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("nats kv delete %s: %w", key, err)
	}

	return nil
}

func (n *NATSKV) Exists(ctx context.Context, key string) (bool, error) {
	_, err := n.Get(ctx, key)

	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// Ping 检查连接状态.
func (n *NATSKV) Ping(context.Context) error {
	if !n.conn.IsConnected() {
		return fmt.Errorf("nats kv: connection %s", n.conn.Status())
	}

	return nil
}

func (n *NATSKV) Close() error {
	n.conn.Close()
	return nil
}

func init() {
	RegisterKVFactory(configs.KVNATS, NewNATSKV)
}
