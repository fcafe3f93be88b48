package ioc

import (
	"github.com/codiumsa/toolkit/query"
	"github.com/codiumsa/toolkit/std"
	"go.uber.org/fx"
)

// 查询模块
func init() {
	Add(fx.Module("query",
		fx.Provide(
			query.NewCompiler,
			fx.Annotate(
				std.NewDryRun,
				fx.ResultTags(`name:"dryRun"`),
			),
		),
	))
}
