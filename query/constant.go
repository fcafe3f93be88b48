package query

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Operator 过滤条件操作符，取值为封闭集合
type Operator string

const (
	EQ       Operator = "eq"
	NE       Operator = "ne"
	GT       Operator = "gt"
	GE       Operator = "ge"
	LT       Operator = "lt"
	LE       Operator = "le"
	IN       Operator = "in"
	NI       Operator = "ni"
	LIKE     Operator = "like"
	NOT_LIKE Operator = "notLike"
	I_LIKE   Operator = "iLike"
	IS       Operator = "is"
)

// Direction 排序方向
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

const (
	// OR 通用搜索条件在where中的键
	OR = "$or"
	// MARKER 关联列键的包裹符号，如 $company.name$
	MARKER = "$"
	// CAST 通用搜索时列的文本类型
	CAST = "VARCHAR"
	// ALIAS_SEPARATOR 多级关联的连接别名分隔符
	ALIAS_SEPARATOR = "__"
)

const (
	DEFAULT_PAGE      = 1
	DEFAULT_PAGE_SIZE = 10
)

var operators = map[string]Operator{
	"eq":      EQ,
	"ne":      NE,
	"gt":      GT,
	"ge":      GE,
	"gte":     GE,
	"lt":      LT,
	"le":      LE,
	"lte":     LE,
	"in":      IN,
	"ni":      NI,
	"notin":   NI,
	"like":    LIKE,
	"notlike": NOT_LIKE,
	"ilike":   I_LIKE,
	"is":      IS,
}

// ParseOperator 解析操作符，大小写不敏感，兼容 $eq 形式与 gte/lte/notIn 别名
func ParseOperator(s string) (Operator, error) {
	if op, ok := operators[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), MARKER))]; ok {
		return op, nil
	}
	return "", &OperatorError{Operator: s}
}

// Valid 是否属于支持的操作符
func (my Operator) Valid() bool {
	op, ok := operators[strings.ToLower(string(my))]
	return ok && op == my
}

// Wildcard 是否为需要 %value% 包裹的模糊匹配操作符
func (my Operator) Wildcard() bool {
	return my == LIKE || my == NOT_LIKE || my == I_LIKE
}

// ParseDirection 解析排序方向，大小写不敏感
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case ASC:
		return ASC, true
	case DESC:
		return DESC, true
	}
	return "", false
}
