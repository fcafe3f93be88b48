package query

import (
	"strings"

	"github.com/codiumsa/toolkit/meta"
	"github.com/duke-git/lancet/v2/convertor"
	"github.com/samber/lo"
)

// Condition 单个键上的条件，操作符 => 值
type Condition map[Operator]any

// Merge 浅合并，同一操作符后者覆盖
func (my Condition) Merge(other Condition) Condition {
	for op, v := range other {
		my[op] = v
	}
	return my
}

// Match 通用搜索中的一项 CAST(column AS cast) ILIKE value
type Match struct {
	Column   string   `json:"column"`
	Cast     string   `json:"cast"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// Where 有序的 键 => 条件 集合，键之间为AND，Or中的各项之间为OR
type Where struct {
	keys       []string
	conditions map[string]Condition
	Or         []*Match
}

func NewWhere() *Where {
	return &Where{conditions: make(map[string]Condition)}
}

// Merge 合并到指定键，键不存在时按插入顺序追加
func (my *Where) Merge(key string, c Condition) {
	if exist, ok := my.conditions[key]; ok {
		exist.Merge(c)
		return
	}
	my.keys = append(my.keys, key)
	my.conditions[key] = c
}

func (my *Where) Get(key string) (Condition, bool) {
	c, ok := my.conditions[key]
	return c, ok
}

// Keys 按首次出现顺序返回条件键
func (my *Where) Keys() []string {
	return my.keys
}

func (my *Where) Empty() bool {
	return len(my.keys) == 0 && len(my.Or) == 0
}

func (my *Where) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range my.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(my.conditions[k])
	}
	if len(my.Or) > 0 {
		if len(my.keys) > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(OR)
		stream.WriteVal(my.Or)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// Include 连接树中的一个节点，Attributes为nil表示取全部列，空切片表示不取列
type Include struct {
	Model      string   `json:"model"`
	As         string   `json:"as"`
	Required   bool     `json:"required"`
	Attributes []string `json:"attributes"`
	Include    Includes `json:"include,omitempty"`

	entity      *meta.Entity
	association *meta.Association
}

func (my *Include) Entity() *meta.Entity { return my.entity }

func (my *Include) Association() *meta.Association { return my.association }

type Includes []*Include

// Find 在同一层级中按别名查找
func (my Includes) Find(alias string) (*Include, bool) {
	return lo.Find(my, func(v *Include) bool { return v.As == alias })
}

// Order 排序项，Path为逻辑路径片段，Column为解析后的物理路径
type Order struct {
	Path      []string  `json:"path"`
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Segments 路径片段加排序方向，如 [company name ASC]
func (my *Order) Segments() []string {
	return append(append(make([]string, 0, len(my.Path)+1), my.Path...), string(my.Direction))
}

// Descriptor 查询描述，由Build生成后交给存储层执行
type Descriptor struct {
	Model    string   `json:"model"`
	Where    *Where   `json:"where"`
	Include  Includes `json:"include,omitempty"`
	Order    []*Order `json:"order,omitempty"`
	Offset   *int     `json:"offset,omitempty"`
	Limit    *int     `json:"limit,omitempty"`
	SubQuery bool     `json:"subQuery"`

	entity *meta.Entity
}

func NewDescriptor(e *meta.Entity) *Descriptor {
	return &Descriptor{Model: e.Name, Where: NewWhere(), entity: e}
}

func (my *Descriptor) Entity() *meta.Entity { return my.entity }

// String 单行摘要，用于日志
func (my *Descriptor) String() string {
	var sb strings.Builder
	sb.WriteString(my.Model)
	for _, k := range my.Where.Keys() {
		c, _ := my.Where.Get(k)
		sb.WriteString(" where ")
		sb.WriteString(k)
		sb.WriteString(convertor.ToString(c))
	}
	if len(my.Where.Or) > 0 {
		sb.WriteString(" search ")
		sb.WriteString(strings.Join(lo.Map(my.Where.Or, func(m *Match, _ int) string { return m.Column }), "|"))
	}
	for _, o := range my.Order {
		sb.WriteString(" order ")
		sb.WriteString(strings.Join(o.Segments(), " "))
	}
	if my.Offset != nil && my.Limit != nil {
		sb.WriteString(" offset ")
		sb.WriteString(convertor.ToString(*my.Offset))
		sb.WriteString(" limit ")
		sb.WriteString(convertor.ToString(*my.Limit))
	}
	return sb.String()
}

// Filter 一条显式过滤，路径上的条件之间为AND
type Filter struct {
	Path      string
	Condition Condition
}

// NewFilter 以相等条件构建过滤
func NewFilter(path string, value any) Filter {
	return Filter{Path: path, Condition: Condition{EQ: value}}
}

// Sort 一条排序输入，Direction 为 asc/desc，大小写不敏感
type Sort struct {
	Path      string
	Direction string
}

// Paging 分页输入，非正数视为未提供
type Paging struct {
	Page     int
	PageSize int
}

// Search 通用搜索输入，Paths为空时使用实体的默认搜索路径
type Search struct {
	Value string
	Paths []string
}

// Settings 一次构建的全部输入，Paging为nil表示不分页
type Settings struct {
	Entity  string
	Filters []Filter
	Sorts   []Sort
	Paging  *Paging
	Search  *Search
}
