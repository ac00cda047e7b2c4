package common

import (
	"encoding/json"
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// Decode turns a cached value back into T. The memory cache hands back
// the stored value unchanged; Redis hands back generic JSON, which is
// re-marshalled into T.
func Decode[T any](val any) (T, bool) {
	var out T
	if val == nil {
		return out, false
	}
	if typed, ok := val.(T); ok {
		return typed, true
	}
	if typed, ok := val.(*T); ok && typed != nil {
		return *typed, true
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
