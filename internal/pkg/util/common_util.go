package util

import (
	"strconv"
	"time"
)

// GetMidnight 返回时间戳所在 UTC 自然日的零点，同天去重和水位比较都以它为界
func GetMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StrSliceToUInt64Slice 将字符串切片转换为 uint64 切片
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	result := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// UInt64SliceToStrSlice 将 uint64 切片转换为字符串切片
func UInt64SliceToStrSlice(nums []uint64) []string {
	result := make([]string, 0, len(nums))
	for _, n := range nums {
		result = append(result, strconv.FormatUint(n, 10))
	}
	return result
}
