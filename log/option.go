package log

import (
	"io"

	"github.com/codiumsa/toolkit/log/internal"
	"github.com/rs/zerolog"
)

// LoggerOption 日志选项
type LoggerOption func(zerolog.Logger) zerolog.Logger

// Rotate 日志轮转配置
type Rotate = internal.Rotate

// WithOutput 以JSON格式输出到指定writer
func WithOutput(w io.Writer) LoggerOption {
	return func(l zerolog.Logger) zerolog.Logger {
		return l.Output(w)
	}
}

// WithLevel 设置日志级别
func WithLevel(level Level) LoggerOption {
	return func(l zerolog.Logger) zerolog.Logger {
		return l.Level(level)
	}
}

// WithRotate 输出到按大小轮转的日志文件
func WithRotate(r *Rotate) LoggerOption {
	return func(l zerolog.Logger) zerolog.Logger {
		if r == nil || r.Filename == "" {
			return l
		}
		return l.Output(internal.NewRotateWriter(r))
	}
}

// WithCaller 记录调用位置
func WithCaller() LoggerOption {
	return func(l zerolog.Logger) zerolog.Logger {
		return l.With().Caller().Logger()
	}
}
