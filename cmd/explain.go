package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/codiumsa/toolkit/ioc"
	"github.com/codiumsa/toolkit/query"
	"github.com/codiumsa/toolkit/std"
	"github.com/codiumsa/toolkit/utl"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type explainFlags struct {
	entity      string
	where       []string
	order       []string
	page        int
	pageSize    int
	pageAll     bool
	search      string
	searchPaths []string
	sql         bool
	count       bool
}

// explanation explain 命令输出的数据部分
type explanation struct {
	Descriptor *query.Descriptor `json:"descriptor"`
	SQL        string            `json:"sql,omitempty"`
	CountSQL   string            `json:"countSql,omitempty"`
}

func newExplainCmd() *cobra.Command {
	f := &explainFlags{}
	c := &cobra.Command{
		Use:     "explain",
		Aliases: []string{"e"},
		Short:   "Build a query descriptor and print it as JSON.",
		Example: `  toolkit explain -c config.yaml --entity User --where role.name=admin --where name:iLike=jo --order createdAt=desc --sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString(configFlag)
			data, err := explain(configFile, f)
			result := std.Result{Data: data}
			if err != nil {
				result = std.Result{Errors: []*std.Exception{std.ToException(err)}}
			}
			out, merr := utl.MarshalIndentJSON(result, "", "  ")
			if merr != nil {
				return merr
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if err != nil {
				return errReported
			}
			return nil
		},
	}
	flags := c.Flags()
	flags.StringVarP(&f.entity, "entity", "e", "", "root entity name")
	flags.StringArrayVarP(&f.where, "where", "w", nil, "filter as path=value or path:operator=value")
	flags.StringArrayVarP(&f.order, "order", "o", nil, "sort as path=asc|desc, a bare path sorts ascending")
	flags.IntVar(&f.page, "page", 0, "page number, starts from 1")
	flags.IntVar(&f.pageSize, "page-size", 0, "page size")
	flags.BoolVar(&f.pageAll, "page-all", false, "disable paging")
	flags.StringVarP(&f.search, "search", "s", "", "general search value")
	flags.StringSliceVar(&f.searchPaths, "search-path", nil, "paths used by general search, defaults to entity attributes")
	flags.BoolVar(&f.sql, "sql", false, "render the SQL with a dry run connection")
	flags.BoolVar(&f.count, "count", false, "render the count SQL, implies --sql")
	_ = c.MarkFlagRequired("entity")
	return c
}

func explain(configFile string, f *explainFlags) (*explanation, error) {
	var (
		compiler *query.Compiler
		db       *gorm.DB
	)
	app := fx.New(
		ioc.Get(),
		fx.Supply(configFile),
		fx.NopLogger,
		fx.Populate(&compiler),
		fx.Invoke(fx.Annotate(func(d *gorm.DB) { db = d }, fx.ParamTags(`name:"dryRun"`))),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	settings, err := f.settings()
	if err != nil {
		return nil, err
	}
	d, err := compiler.Build(settings)
	if err != nil {
		return nil, err
	}

	e := &explanation{Descriptor: d}
	if f.sql || f.count {
		e.SQL = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var rows []map[string]interface{}
			return tx.Scopes(query.Scope(d)).Find(&rows)
		})
	}
	if f.count {
		e.CountSQL = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var total int64
			return tx.Scopes(query.Scope(d, query.ForCount())).Distinct(query.CountColumn(d)).Count(&total)
		})
	}
	return e, nil
}

func (my *explainFlags) settings() (query.Settings, error) {
	s := query.Settings{Entity: my.entity}
	for _, v := range my.where {
		filter, err := parseFilter(v)
		if err != nil {
			return s, err
		}
		s.Filters = append(s.Filters, filter)
	}
	for _, v := range my.order {
		path, direction, ok := strings.Cut(v, "=")
		if !ok {
			direction = string(query.ASC)
		}
		s.Sorts = append(s.Sorts, query.Sort{Path: strings.TrimSpace(path), Direction: strings.TrimSpace(direction)})
	}
	if !my.pageAll {
		s.Paging = &query.Paging{Page: my.page, PageSize: my.pageSize}
	}
	if my.search != "" {
		s.Search = &query.Search{Value: my.search, Paths: my.searchPaths}
	}
	return s, nil
}

// parseFilter 解析 path=value 或 path:operator=value，模糊匹配未带%时两侧补全，in/ni按逗号拆分
func parseFilter(s string) (query.Filter, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return query.Filter{}, fmt.Errorf("invalid filter %q, expected path=value", s)
	}
	path, name, _ := strings.Cut(strings.TrimSpace(key), ":")
	op := query.EQ
	if name != "" {
		parsed, err := query.ParseOperator(name)
		if err != nil {
			return query.Filter{}, &query.OperatorError{Path: path, Operator: name}
		}
		op = parsed
	}

	var v any = value
	switch {
	case op == query.IN || op == query.NI:
		v = strings.Split(value, ",")
	case op.Wildcard() && !strings.Contains(value, "%"):
		v = utl.Wrap("%", value)
	}
	return query.Filter{Path: path, Condition: query.Condition{op: v}}, nil
}
