package std

import (
	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/std/internal"
)

type (
	DataSource     = internal.DataSource
	QueryConfig    = internal.QueryConfig
	MetadataConfig = internal.MetadataConfig
)

// LogConfig 日志配置
type LogConfig struct {
	Level  string      `mapstructure:"level"`
	Caller bool        `mapstructure:"caller"`
	Rotate *log.Rotate `mapstructure:"rotate"`
}

// Config 表示标准配置
type Config struct {
	internal.AppConfig `mapstructure:"app"`
	Mode               string         `mapstructure:"mode"`
	Query              QueryConfig    `mapstructure:"query"`
	Metadata           MetadataConfig `mapstructure:"metadata"`
	Log                LogConfig      `mapstructure:"log"`
}

func NewConfig(k *Konfig) (*Config, error) {
	k.SetDefault("query.default-page", 1)
	k.SetDefault("query.default-page-size", 10)
	k.SetDefault("query.audit-columns", []string{"id", "created_at", "updated_at", "deleted_at"})
	k.SetDefault("log.level", "info")

	c := &Config{}
	if err := k.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

// IsDebug 判断是否为开发模式
func (my *Config) IsDebug() bool {
	return my.Mode == "development" || my.Mode == "dev"
}

// Logger 按日志配置构建日志实例
func (my *Config) Logger() *log.Logger {
	opts := []log.LoggerOption{log.WithLevel(log.ParseLevel(my.Log.Level))}
	if my.Log.Rotate != nil {
		opts = append(opts, log.WithRotate(my.Log.Rotate))
	}
	if my.Log.Caller {
		opts = append(opts, log.WithCaller())
	}
	return log.NewLogger(opts...)
}
