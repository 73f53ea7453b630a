package mysql

import (
	"testing"
	"time"
)

func TestNativeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes to string", []byte("hello"), "hello"},
		{"int64 passthrough", int64(42), int64(42)},
		{"float passthrough", 3.14, 3.14},
		{"bool passthrough", true, true},
		{"time formatted", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NativeValue(tc.in); got != tc.want {
				t.Fatalf("NativeValue(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
