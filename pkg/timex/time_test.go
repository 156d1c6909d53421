package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	// Test Unix()
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	// Test UnixMilli()
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// Test UnixMicro()
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}

	// Test UnixNano()
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}

	// Verify it's not returning time.Now() by waiting a bit
	// 通过等待一会确认它不是返回 time.Now()
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	data, err := json.Marshal(tt)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-01-01T12:00:00.000Z"` {
		t.Errorf("Marshal = %s, want %q", data, "2024-01-01T12:00:00.000Z")
	}

	var back Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Time().Equal(now) {
		t.Errorf("round trip = %v, want %v", back.Time(), now)
	}
}

func TestTime_MillisecondPrecisionKept(t *testing.T) {
	// 毫秒精度在序列化后不丢失
	now := time.Date(2024, 1, 1, 12, 0, 0, 123_000_000, time.UTC)

	data, err := json.Marshal(Time(now))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-01-01T12:00:00.123Z"` {
		t.Errorf("Marshal = %s, want %q", data, "2024-01-01T12:00:00.123Z")
	}

	var back Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Time().UnixMilli() != now.UnixMilli() {
		t.Errorf("round trip lost milliseconds: got %v, want %v", back.Time(), now)
	}

	// 不带小数位的历史值仍可解析
	var plain Time
	if err := json.Unmarshal([]byte(`"2024-01-01T12:00:00Z"`), &plain); err != nil {
		t.Fatalf("Unmarshal without fraction failed: %v", err)
	}
}
