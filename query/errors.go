package query

import (
	"errors"
	"fmt"

	"github.com/codiumsa/toolkit/std"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrUnknownPathSegment    = errors.New("unknown path segment")
	ErrUnknownAssociation    = errors.New("unknown association")
	ErrInvalidOrderDirection = errors.New("invalid order direction")
	ErrUnknownOperator       = errors.New("unknown operator")
	ErrUnknownEntity         = errors.New("unknown entity")
	ErrUnsupportedJoin       = errors.New("association cannot be joined")
)

// PathError 路径相关错误，Segment为出错的片段或方向
type PathError struct {
	Entity  string
	Path    string
	Segment string
	Err     error
}

func (my *PathError) Error() string {
	if my.Path == "" {
		return fmt.Sprintf("%v: %q on %s", my.Err, my.Segment, my.Entity)
	}
	return fmt.Sprintf("%v: %q in path %q on %s", my.Err, my.Segment, my.Path, my.Entity)
}

func (my *PathError) Unwrap() error { return my.Err }

func (my *PathError) StatusCode() int { return fiber.StatusBadRequest }

// Extensions 供 std.Exception 携带路径详情
func (my *PathError) Extensions() std.Extension {
	ext := std.Extension{"entity": my.Entity, "segment": my.Segment}
	if my.Path != "" {
		ext["path"] = my.Path
	}
	return ext
}

// OperatorError 未知操作符
type OperatorError struct {
	Path     string
	Operator string
}

func (my *OperatorError) Error() string {
	if my.Path == "" {
		return fmt.Sprintf("%v: %q", ErrUnknownOperator, my.Operator)
	}
	return fmt.Sprintf("%v: %q on %q", ErrUnknownOperator, my.Operator, my.Path)
}

func (my *OperatorError) Unwrap() error { return ErrUnknownOperator }

func (my *OperatorError) StatusCode() int { return fiber.StatusBadRequest }

func (my *OperatorError) Extensions() std.Extension {
	return std.Extension{"operator": my.Operator, "path": my.Path}
}
