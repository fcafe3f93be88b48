package utl

import (
	"path/filepath"
	"runtime"
	"strings"
)

// JoinString 连接多个字符串
func JoinString(elem ...string) string {
	if len(elem) == 0 {
		return ""
	}

	totalLen := 0
	for _, e := range elem {
		totalLen += len(e)
	}

	b := strings.Builder{}
	b.Grow(totalLen)
	for _, e := range elem {
		b.WriteString(e)
	}
	return b.String()
}

// Wrap 用同一个标记包裹内容，如 Wrap("$", "role.name") => "$role.name$"
func Wrap(with, content string) string {
	return JoinString(with, content, with)
}

// Unwrap 去掉两端的包裹标记，未被包裹时原样返回
func Unwrap(with, content string) (string, bool) {
	if len(content) < 2*len(with) || !strings.HasPrefix(content, with) || !strings.HasSuffix(content, with) {
		return content, false
	}
	return content[len(with) : len(content)-len(with)], true
}

// Root 返回项目的根目录路径
func Root() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(filename))
}
