package ioc

import (
	"github.com/codiumsa/toolkit/meta"
	"go.uber.org/fx"
)

// 元数据模块，gorm模型通过 group:"model" 注册
func init() {
	Add(fx.Module("metadata",
		fx.Provide(
			fx.Annotate(
				meta.NewConfigLoader,
				fx.As(new(meta.Loader)),
				fx.ResultTags(`group:"loader"`),
			),
			fx.Annotate(
				meta.NewFileLoader,
				fx.As(new(meta.Loader)),
				fx.ResultTags(`group:"loader"`),
			),
			fx.Annotate(
				meta.NewGormLoader,
				fx.ParamTags(`group:"model"`),
				fx.As(new(meta.Loader)),
				fx.ResultTags(`group:"loader"`),
			),
			fx.Annotate(
				meta.NewRegistry,
				fx.ParamTags(``, `group:"loader"`),
			),
		),
	))
}
