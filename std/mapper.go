package std

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldErrorCarrier 任何能按字段列出错误的错误类型
type fieldErrorCarrier interface {
	FieldErrors() []FieldError
}

// FieldMessages 将校验类错误折叠为 字段 => 消息，同名字段后者覆盖前者，
// 无字段名的条目被忽略，无法识别的错误返回空map
func FieldMessages(err error) map[string]string {
	result := make(map[string]string)
	if err == nil {
		return result
	}

	var carrier fieldErrorCarrier
	if errors.As(err, &carrier) && carrier != nil {
		for _, f := range carrier.FieldErrors() {
			if f.Field != "" {
				result[f.Field] = f.Message
			}
		}
		return result
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			if field := fieldPath(e); field != "" {
				result[field] = e.Error()
			}
		}
	}
	return result
}
