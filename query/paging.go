package query

import "github.com/samber/lo"

// ApplyPaging 计算 offset/limit，非正数的页码或页大小使用默认值
func ApplyPaging(d *Descriptor, p Paging, defaults Paging) {
	page := lo.Ternary(p.Page > 0, p.Page, lo.Ternary(defaults.Page > 0, defaults.Page, DEFAULT_PAGE))
	size := lo.Ternary(p.PageSize > 0, p.PageSize, lo.Ternary(defaults.PageSize > 0, defaults.PageSize, DEFAULT_PAGE_SIZE))
	d.Offset = lo.ToPtr((page - 1) * size)
	d.Limit = lo.ToPtr(size)
}
