package configs

import (
	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeGoChannel MQType = "gochannel"
	MQTypeNATS      MQType = "nats"

	DefaultMQURL         = "nats://localhost:4222"
	DefaultMaxReconnects = 5                   // 默认最大重连次数.
	DefaultReconnectWait = 5                   // 默认重连等待时间（秒）.
	DefaultMQClientID    = "genomeinsight-app" // 默认客户端ID
	DefaultMaxPingsOut   = 3                   // 默认最大ping输出次数
	DefaultPingInterval  = 20                  // 默认ping间隔 (秒)
	DefaultGoChannelBuf  = 64                  // 进程内通道缓冲
)

// MQConfig 消息队列配置.
type MQConfig struct {
	Type      MQType            `mapstructure:"type"      rule:"oneof=gochannel nats"`
	GoChannel MQGoChannelConfig `mapstructure:"gochannel"`
	NATS      MQNATSConfig      `mapstructure:"nats"`
}

// MQGoChannelConfig 进程内发布订阅配置.
type MQGoChannelConfig struct {
	OutputBuffer int64 `mapstructure:"output_buffer" rule:"min=0"`
	Persistent   bool  `mapstructure:"persistent"`
}

// MQNATSConfig NATS MQ 配置.
type MQNATSConfig struct {
	URL                    string `mapstructure:"url"                      rule:"required"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"                 json:"-"`
	ClientID               string `mapstructure:"client_id"`
	MaxReconnects          int    `mapstructure:"max_reconnects"           rule:"min=-1,max=100"`
	ReconnectWait          int    `mapstructure:"reconnect_wait"           rule:"min=1,max=300"`
	MaxPingsOut            int    `mapstructure:"max_pings_out"            rule:"min=1,max=10"`
	PingInterval           int    `mapstructure:"ping_interval"            rule:"min=1,max=300"`
	JetStreamEnabled       bool   `mapstructure:"jetstream_enabled"`
	JetStreamAutoProvision bool   `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool   `mapstructure:"jetstream_track_msg_id"`
	JetStreamAckAsync      bool   `mapstructure:"jetstream_ack_async"`
	JWT                    string `mapstructure:"jwt"                      json:"-"`
	NKey                   string `mapstructure:"nkey"                     json:"-"`
}

// setDefaults 设置MQ配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeGoChannel)

	v.SetDefault("mq.gochannel.output_buffer", DefaultGoChannelBuf)
	v.SetDefault("mq.gochannel.persistent", false)

	// NATS 默认值
	v.SetDefault("mq.nats.url", DefaultMQURL)
	v.SetDefault("mq.nats.user", "")
	v.SetDefault("mq.nats.password", "")
	v.SetDefault("mq.nats.client_id", DefaultMQClientID)
	v.SetDefault("mq.nats.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.nats.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.nats.max_pings_out", DefaultMaxPingsOut)
	v.SetDefault("mq.nats.ping_interval", DefaultPingInterval)
	v.SetDefault("mq.nats.jetstream_enabled", false)
	v.SetDefault("mq.nats.jetstream_auto_provision", true)
	v.SetDefault("mq.nats.jetstream_track_msg_id", true)
	v.SetDefault("mq.nats.jetstream_ack_async", false)
	v.SetDefault("mq.nats.jwt", "")
	v.SetDefault("mq.nats.nkey", "")
}
