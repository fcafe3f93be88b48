package std

import (
	"errors"
	"maps"

	"github.com/gofiber/fiber/v2"
)

// Result 统一响应结构
type Result struct {
	Data       interface{}  `json:"data,omitempty"`
	Errors     []*Exception `json:"errors,omitempty"`
	Extensions Extension    `json:"extensions,omitempty"`
}

// Extension 扩展信息
type Extension map[string]interface{}

// Exception 统一的异常结构
type Exception struct {
	Message    string    `json:"message"`
	Path       []string  `json:"path,omitempty"`
	Extensions Extension `json:"extensions,omitempty"`

	statusCode int
}

func (my *Exception) Error() string {
	return my.Message
}

// StatusCode 对应的HTTP状态码
func (my *Exception) StatusCode() int {
	return my.statusCode
}

// NewException 创建异常实例，仅设置状态码
func NewException(statusCode int) *Exception {
	return &Exception{statusCode: statusCode}
}

// With 添加扩展字段，支持链式调用
func (my *Exception) With(key string, value interface{}) *Exception {
	if value == nil {
		return my
	}
	if my.Extensions == nil {
		my.Extensions = make(Extension)
	}
	my.Extensions[key] = value
	return my
}

// WithMessage 设置错误消息
func (my *Exception) WithMessage(message string) *Exception {
	if message != "" {
		my.Message = message
	}
	return my
}

// WithPath 设置出错的路径
func (my *Exception) WithPath(path ...string) *Exception {
	my.Path = append(my.Path, path...)
	return my
}

// WithError 绑定底层错误，合并其扩展信息，消息为空时使用错误文本
func (my *Exception) WithError(err error) *Exception {
	if err == nil {
		return my
	}
	var carrier interface{ Extensions() Extension }
	if errors.As(err, &carrier) {
		if ext := carrier.Extensions(); len(ext) > 0 {
			if my.Extensions == nil {
				my.Extensions = maps.Clone(ext)
			} else {
				maps.Copy(my.Extensions, ext)
			}
		}
	}
	if my.Message == "" {
		my.Message = err.Error()
	}
	return my
}

// ToException 把任意错误归类为异常：校验错误为422，fiber错误与自带状态码的错误沿用其状态码，其余为500
func ToException(err error) *Exception {
	if err == nil {
		return nil
	}
	var ex *Exception
	if errors.As(err, &ex) {
		return ex
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewException(fiber.StatusUnprocessableEntity).WithError(ve)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return NewException(fe.Code).WithMessage(fe.Message)
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return NewException(sc.StatusCode()).WithError(err)
	}
	return NewException(fiber.StatusInternalServerError).WithError(err)
}
