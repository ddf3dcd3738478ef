package utils

import (
	"strings"
	"time"
)

func StrPtr(s string) *string {
	return &s
}

// NilIfBlank turns "" (after trimming) into nil so optional text columns stay NULL.
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
