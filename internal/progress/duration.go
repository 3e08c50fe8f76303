package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 数字前不能紧跟数字或小数点，"1.5h" 这类小数片段整体视为无法解析
var (
	hoursPattern   = regexp.MustCompile(`(?:^|[^\d.,])(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(?:^|[^\d.,])(\d+)\s*min`)
)

// Minutes 以分钟计的时长
type Minutes int

// MaxMinutes 时长上限，超出时饱和而不是回绕
const MaxMinutes Minutes = math.MaxInt

// ParseDuration 解析 "1h 30min" / "30min 1h" / "45min" / "2h"
// 两个片段各自独立匹配，与出现顺序无关；都不存在时为 0
func ParseDuration(s string) Minutes {
	s = strings.ToLower(s)
	var total Minutes
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		// 换算成分钟会溢出的片段视为无法解析
		if h, err := strconv.Atoi(m[1]); err == nil && h <= math.MaxInt/60 {
			total = total.Add(Minutes(h * 60))
		}
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total = total.Add(Minutes(n))
		}
	}
	return total
}

// Add 饱和加法，负数按 0 处理
func (m Minutes) Add(d Minutes) Minutes {
	if m < 0 {
		m = 0
	}
	if d <= 0 {
		return m
	}
	if m > MaxMinutes-d {
		return MaxMinutes
	}
	return m + d
}

// String 格式化为 "<H>h <M>min"、"<H>h" 或 "<M>min"
func (m Minutes) String() string {
	if m < 0 {
		m = 0
	}
	h, mins := int(m)/60, int(m)%60
	switch {
	case h > 0 && mins > 0:
		return strconv.Itoa(h) + "h " + strconv.Itoa(mins) + "min"
	case h > 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(mins) + "min"
	}
}
