package code

import "errors"

// lang 一条消息的双语文本
type lang struct {
	en    string
	zh_cn string
}

const fallbackLang = "en"

// lng 当前请求语言, 由语言协商中间件设置
var lng = fallbackLang

// GetMessage 按当前语言取文本, 缺失时回退英文
func (l lang) GetMessage() string {
	switch lng {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	return l.en
}

// GetSupportedLanguages 返回支持的语言标识列表
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}

// SetGlobalDefaultLang 设置当前语言, 不支持的语言返回错误
func SetGlobalDefaultLang(language string) error {
	for _, supported := range GetSupportedLanguages() {
		if language == supported {
			lng = language
			return nil
		}
	}
	return errors.New("unsupported language: " + language)
}
