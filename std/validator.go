package std

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

const (
	LocaleEnglish = "en"
	LocaleChinese = "zh"
)

// FieldError 字段级错误信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 翻译后的校验错误
type ValidationError struct {
	fields []FieldError
	detail string
	err    error
}

func (my *ValidationError) Error() string {
	if my.detail != "" {
		return my.detail
	}
	if my.err != nil {
		return my.err.Error()
	}
	return "参数校验失败"
}

func (my *ValidationError) Unwrap() error { return my.err }

// FieldErrors 按校验顺序返回字段错误
func (my *ValidationError) FieldErrors() []FieldError {
	if my == nil {
		return nil
	}
	return my.fields
}

func (my *ValidationError) Extensions() Extension {
	if my == nil {
		return nil
	}
	ext := make(Extension, len(my.fields))
	for k, v := range FieldMessages(my) {
		ext[k] = v
	}
	return ext
}

// Validator 封装 go-playground/validator 并支持多语言翻译
type Validator struct {
	validate      *validator.Validate
	universal     *ut.UniversalTranslator
	defaultLocale string
	registered    map[string]struct{}
	mutex         sync.RWMutex
}

// NewValidator 创建默认语言为简体中文的校验器
func NewValidator() (*Validator, error) {
	enLocale, zhLocale := en.New(), zh.New()
	v := &Validator{
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		universal:     ut.New(enLocale, enLocale, zhLocale),
		defaultLocale: LocaleChinese,
		registered:    make(map[string]struct{}),
	}

	if err := v.RegisterTranslation(enLocale, enTranslations.RegisterDefaultTranslations); err != nil {
		return nil, err
	}
	if err := v.RegisterTranslation(zhLocale, zhTranslations.RegisterDefaultTranslations); err != nil {
		return nil, err
	}

	// 字段名依次取 label、mapstructure、json 标签，都没有时用字段原名
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"label", "mapstructure", "json"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name = strings.TrimSpace(name); name == "-" {
				return ""
			} else if name != "" {
				return name
			}
		}
		return field.Name
	})

	return v, nil
}

// RegisterValidation 注册自定义校验函数
func (my *Validator) RegisterValidation(tag string, fn validator.Func, callValidationEvenIfNull ...bool) error {
	return my.validate.RegisterValidation(tag, fn, callValidationEvenIfNull...)
}

// RegisterTranslation 注册指定语言翻译
func (my *Validator) RegisterTranslation(trans locales.Translator, register func(*validator.Validate, ut.Translator) error) error {
	if trans == nil {
		return fmt.Errorf("validator: translator 不能为空")
	}
	if register == nil {
		return fmt.Errorf("validator: register 函数不能为空")
	}
	locale := strings.TrimSpace(trans.Locale())
	if locale == "" {
		return fmt.Errorf("validator: translator locale 不能为空")
	}

	my.mutex.Lock()
	defer my.mutex.Unlock()
	if err := my.universal.AddTranslator(trans, true); err != nil {
		return err
	}
	if _, ok := my.registered[locale]; ok {
		return nil
	}
	translator, found := my.universal.GetTranslator(locale)
	if !found {
		return fmt.Errorf("validator: 未支持的语言代码 %q", locale)
	}
	if err := register(my.validate, translator); err != nil {
		return err
	}
	my.registered[locale] = struct{}{}
	return nil
}

// SetDefaultLocale 设置默认语言
func (my *Validator) SetDefaultLocale(locale string) error {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return fmt.Errorf("validator: 语言代码不能为空")
	}
	if _, found := my.universal.GetTranslator(locale); !found {
		return fmt.Errorf("validator: 未支持的语言代码 %q", locale)
	}
	my.mutex.Lock()
	defer my.mutex.Unlock()
	my.defaultLocale = locale
	return nil
}

// Struct 校验结构体，失败时返回 *ValidationError
func (my *Validator) Struct(target any) error {
	if err := my.validate.Struct(target); err != nil {
		if converted, ok := my.translateError(err); ok {
			return converted
		}
		return err
	}
	return nil
}

// Var 校验单个值
func (my *Validator) Var(field any, tag string) error {
	if err := my.validate.Var(field, tag); err != nil {
		if converted, ok := my.translateError(err); ok {
			return converted
		}
		return err
	}
	return nil
}

// Check 与 Struct 相同，但保证非空错误一定是 *ValidationError
func (my *Validator) Check(payload any) error {
	if err := my.Struct(payload); err != nil {
		var e *ValidationError
		if errors.As(err, &e) {
			return e
		}
		return &ValidationError{detail: err.Error(), err: err}
	}
	return nil
}

func (my *Validator) translator() (ut.Translator, bool) {
	my.mutex.RLock()
	locale := my.defaultLocale
	my.mutex.RUnlock()
	return my.universal.GetTranslator(locale)
}

func (my *Validator) translateError(raw error) (*ValidationError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(raw, &errs) {
		return nil, false
	}
	translator, found := my.translator()
	if !found {
		return nil, false
	}
	fields := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		message := e.Error()
		if translated := e.Translate(translator); translated != "" {
			message = translated
		}
		fields = append(fields, FieldError{Field: fieldPath(e), Message: message})
	}
	return &ValidationError{fields: fields, detail: raw.Error(), err: raw}, true
}

// fieldPath 去掉命名空间中的根结构体名，如 Entity.attributes[0].name => attributes[0].name
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}
