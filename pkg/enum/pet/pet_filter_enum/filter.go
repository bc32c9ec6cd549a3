// Package pet_filter_enum 宠物表单与搜索条件中的枚举值
// 请求校验（handler 的自定义 tag）与业务层换算共用这里的定义
package pet_filter_enum

import "strings"

// ParseYesNo 接受 yes/no/true/false，不区分大小写
// ok=false 表示不是合法取值
func ParseYesNo(v string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	}
	return false, false
}

// DaysBucket 上架天数区间
type DaysBucket string

const (
	DaysWeek    DaysBucket = "1-7"
	DaysMonth   DaysBucket = "8-30"
	DaysQuarter DaysBucket = "31-90"
	DaysOlder   DaysBucket = "91+"
)

// IsDaysBucket 是否为四个区间之一，大小写与空白都不放宽
func IsDaysBucket(v string) bool {
	switch DaysBucket(v) {
	case DaysWeek, DaysMonth, DaysQuarter, DaysOlder:
		return true
	}
	return false
}
