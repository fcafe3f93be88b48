package ioc

import (
	"go.uber.org/fx"
)

var options []fx.Option

func Add(args ...fx.Option) {
	options = append(options, args...)
}

// Get 汇总所有模块，配置文件路径由调用方通过 fx.Supply 提供
func Get() fx.Option {
	return fx.Options(options...)
}
