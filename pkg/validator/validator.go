// Package validator 提供 gin binding 使用的自定义验证器
package validator

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
)

// CustomValidator 实现 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	validate *validatorV10.Validate
}

var _ binding.StructValidator = &CustomValidator{}

// NewCustomValidator 创建自定义验证器实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体; 非结构体值一律放行
func (v *CustomValidator) ValidateStruct(obj any) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	v.lazyInit()
	if err := v.validate.Struct(obj); err != nil {
		return err
	}
	return nil
}

// Engine 返回底层 validator 实例, 供注册翻译与自定义标签
func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = validatorV10.New()
		v.validate.SetTagName("binding")
	})
}
