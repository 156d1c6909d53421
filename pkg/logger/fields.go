package logger

// 日志字段命名常量, 保证跨包字段名一致
const (
	// FieldCount 集合数量
	FieldCount = "count"

	// FieldFile 文件名
	FieldFile = "file"

	// FieldKey 存储键
	FieldKey = "key"
)
