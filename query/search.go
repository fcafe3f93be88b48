package query

import (
	"strings"

	"github.com/codiumsa/toolkit/meta"
	"github.com/codiumsa/toolkit/utl"
	"github.com/samber/lo"
)

// SearchPaths 实体默认参与通用搜索的属性，按声明顺序，排除标识、已标记的列与默认审计列
func SearchPaths(e *meta.Entity) []string {
	identity := e.Identity()
	return lo.FilterMap(e.Attributes(), func(a *meta.Attribute, _ int) (string, bool) {
		return a.Name, !a.Excluded && !a.Primary && a.Name != identity && !a.IsAudit()
	})
}

// ExtendedSearchPaths 默认搜索路径再追加额外路径，常用于加入关联属性
func ExtendedSearchPaths(e *meta.Entity, extra ...string) []string {
	return append(SearchPaths(e), extra...)
}

// ApplySearch 把一个搜索值展开为多个路径上的模糊匹配并追加到OR列表
func ApplySearch(d *Descriptor, e *meta.Entity, value string, paths []string) error {
	if value == "" {
		return nil
	}
	if paths == nil {
		paths = SearchPaths(e)
	}
	if len(paths) == 0 {
		return nil
	}

	matches := make([]*Match, 0, len(paths))
	for _, path := range paths {
		resolved, err := prepare(path, d, e, false)
		if err != nil {
			return err
		}
		if !strings.Contains(path, ".") {
			resolved = utl.JoinString(e.Name, ".", resolved)
		}
		matches = append(matches, &Match{
			Column:   resolved,
			Cast:     CAST,
			Operator: I_LIKE,
			Value:    utl.Wrap("%", value),
		})
	}
	d.Where.Or = append(d.Where.Or, matches...)
	return nil
}
