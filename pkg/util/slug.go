package util

import "strings"

// Slugify converts a title to a filesystem-safe file name fragment
// Slugify 将标题转换为文件系统安全的文件名片段
// Non-alphanumeric characters are replaced with "_" and the result is lower-cased
// 非字母数字字符替换为 "_"，结果转为小写
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.ToLower(b.String())
}
