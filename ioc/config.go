package ioc

import (
	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/std"
	"go.uber.org/fx"
)

// 配置模块
func init() {
	Add(fx.Module("config",
		fx.Provide(
			// filePath由调用方fx.Supply提供
			fx.Annotate(
				std.WithFilePath,
				fx.ResultTags(`group:"konfigOptions"`),
			),
			fx.Annotate(
				std.NewKonfig,
				fx.ParamTags(`group:"konfigOptions"`),
			),
			std.NewConfig,
			std.NewValidator,
		),
		fx.Invoke(setupLogger),
	))
}

// setupLogger 按配置替换全局日志
func setupLogger(c *std.Config) {
	log.SetDefault(c.Logger())
}
