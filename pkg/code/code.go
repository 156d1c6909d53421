// Package code 定义双语编码结果, 错误与成功共用同一结构
package code

import (
	"fmt"
	"net/http"
)

// Code 一个编码结果; status 区分成功与失败
// 实现 error, 可在服务层作为错误值返回并用 errors.Is 判定
type Code struct {
	code        int
	status      bool
	Lang        lang
	data        interface{}
	haveData    bool
	details     []string
	haveDetails bool
}

// registered 已注册的码值, 防止重复定义
var registered = map[int]bool{}

func register(codeVal int) {
	if registered[codeVal] {
		panic(fmt.Sprintf("code %d already registered", codeVal))
	}
	registered[codeVal] = true
}

// NewError 注册一个失败码
func NewError(codeVal int, l lang) *Code {
	register(codeVal)
	return &Code{code: codeVal, status: false, Lang: l}
}

// NewSuss 注册一个成功码
func NewSuss(codeVal int, l lang) *Code {
	register(codeVal)
	return &Code{code: codeVal, status: true, Lang: l}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// Msg 按当前请求语言取消息文本
func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData 附带响应数据
func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

// WithDetails 替换详情列表
func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = append([]string{}, details...)
	return e
}

// StatusCode 响应一律携带 HTTP 200, 结果状态由 code/status 表达
func (e *Code) StatusCode() int {
	return http.StatusOK
}
