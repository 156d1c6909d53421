package domain

// ThemeMode 主题模式
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// IsValid 判断主题模式是否为可识别的枚举成员
// Any other stored value is ignored and the default is retained
// 其他存储值会被忽略，保留默认值
func (m ThemeMode) IsValid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Toggle 在 light 与 dark 之间切换
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
