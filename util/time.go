package util

import "time"

func GetMillionSeconds() int64 {
	return time.Now().UnixMilli()
}
