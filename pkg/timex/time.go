// Package timex provides a JSON-friendly time type
// Package timex 提供对 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout serialization layout, ISO 8601 with millisecond precision
// Layout 序列化格式，带毫秒的 ISO 8601
// Parsing accepts any fractional precision via time.RFC3339
// 解析时经 time.RFC3339 接受任意小数位精度
const Layout = "2006-01-02T15:04:05.000Z07:00"

// Time wraps time.Time and serializes as an ISO 8601 string
// Time 包装 time.Time，序列化为 ISO 8601 字符串
type Time time.Time

// Now returns the current time as timex.Time
// Now 返回当前时间对应的 timex.Time
func Now() Time {
	return Time(time.Now())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timex: invalid time %q", s)
	}
	parsed, err := time.Parse(time.RFC3339, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so the type can be stored by gorm
// Value 实现 driver.Valuer，便于被 gorm 存储
func (t Time) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements sql.Scanner
// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	default:
		return fmt.Errorf("timex: cannot scan %T into timex.Time", v)
	}
}
