package query

import (
	"strings"

	"github.com/codiumsa/toolkit/meta"
	"github.com/codiumsa/toolkit/utl"
)

// Resolve 把逻辑路径解析为物理路径：属性替换为列名，关联保持原名并进入目标实体
func Resolve(path string, e *meta.Entity) (string, error) {
	resolved, err := resolve(strings.Split(path, "."), e)
	if err != nil {
		if pe, ok := err.(*PathError); ok {
			pe.Path = path
		}
		return "", err
	}
	return resolved, nil
}

func resolve(segments []string, e *meta.Entity) (string, error) {
	head, rest := segments[0], segments[1:]
	var current string
	if a, ok := e.Attribute(head); ok {
		current = a.Column
	} else if r, ok := e.Association(head); ok && r.Target != nil {
		current, e = head, r.Target
	} else {
		return "", &PathError{Entity: e.Name, Segment: head, Err: ErrUnknownPathSegment}
	}
	if len(rest) == 0 {
		return current, nil
	}
	tail, err := resolve(rest, e)
	if err != nil {
		return "", err
	}
	return utl.JoinString(current, ".", tail), nil
}

// associations 返回路径中除最后一段外各段对应的关联，不修改任何状态
func associations(path string, e *meta.Entity) ([]*meta.Association, error) {
	segments := strings.Split(path, ".")
	chain := make([]*meta.Association, 0, len(segments)-1)
	for _, s := range segments[:len(segments)-1] {
		a, ok := e.Association(s)
		if !ok || a.Target == nil {
			return nil, &PathError{Entity: e.Name, Path: path, Segment: s, Err: ErrUnknownAssociation}
		}
		chain = append(chain, a)
		e = a.Target
	}
	return chain, nil
}

// grow 按关联链逐层查找或创建连接节点
func grow(list *Includes, chain []*meta.Association, required bool) *Include {
	var node *Include
	for _, a := range chain {
		found, ok := list.Find(a.Name)
		if !ok {
			found = &Include{
				Model:       a.Target.Name,
				As:          a.Name,
				Required:    required,
				Attributes:  []string{},
				entity:      a.Target,
				association: a,
			}
			*list = append(*list, found)
		}
		node, list = found, &found.Include
	}
	return node
}

// Ensure 确保路径涉及的关联都在连接树中，单段路径无需连接，重复调用幂等
func Ensure(path string, d *Descriptor, e *meta.Entity, required bool) error {
	chain, err := associations(path, e)
	if err != nil {
		return err
	}
	grow(&d.Include, chain, required)
	return nil
}

// AddInclude 确保根实体的直接关联被连接并取回其全部列
func AddInclude(d *Descriptor, alias string) error {
	a, ok := d.entity.Association(alias)
	if !ok || a.Target == nil {
		return &PathError{Entity: d.entity.Name, Segment: alias, Err: ErrUnknownAssociation}
	}
	grow(&d.Include, []*meta.Association{a}, false).Attributes = nil
	return nil
}

// JoinedKey 关联列在where中的键
func JoinedKey(resolved string) string {
	return utl.Wrap(MARKER, resolved)
}

// keyOf 单段路径用列名，多段路径用关联列标记
func keyOf(resolved string) string {
	if strings.Contains(resolved, ".") {
		return JoinedKey(resolved)
	}
	return resolved
}

// prepare 校验路径并连接所需关联，返回物理路径
func prepare(path string, d *Descriptor, e *meta.Entity, required bool) (string, error) {
	chain, err := associations(path, e)
	if err != nil {
		return "", err
	}
	resolved, err := Resolve(path, e)
	if err != nil {
		return "", err
	}
	grow(&d.Include, chain, required)
	return resolved, nil
}
