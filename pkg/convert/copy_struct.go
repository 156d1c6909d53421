// Package convert 提供模型与 DTO 之间的结构体拷贝
package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign 按字段名把 src 的值拷贝到 dst, 返回 dst 便于链式取用
// 类型不兼容的字段保持 dst 的零值
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
