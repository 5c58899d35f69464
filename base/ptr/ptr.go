package ptr

import "time"

func String(value string) *string {
	return &value
}

func Int64(value int64) *int64 {
	return &value
}

func Bool(value bool) *bool {
	return &value
}

func Time(value time.Time) *time.Time {
	return &value
}

// StringValue dereferences p, returning "" for nil
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
