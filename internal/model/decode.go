package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ── 宽松解码 ──
//
// 上游返回的课程结构字段并不稳定：同一字段可能有多个别名，
// 数字可能以字符串出现，容器可能不是数组。这里统一按"取不到即零值"处理，
// 保证局部异常数据不会让整个页面报错。

// fields 对象字段的原始 JSON
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		// JSON null
		return fields{}, nil
	}
	return f, nil
}

// raw 返回第一个存在且非 null 的别名对应的值
func (f fields) raw(keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := f[k]; ok && !isNull(v) {
			return v
		}
	}
	return nil
}

func (f fields) str(keys ...string) string {
	v := f.raw(keys...)
	if v == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}

func (f fields) boolean(keys ...string) bool {
	v := f.raw(keys...)
	if v == nil {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

// booleanOr 字段缺失时返回 def
func (f fields) booleanOr(def bool, keys ...string) bool {
	if f.raw(keys...) == nil {
		return def
	}
	return f.boolean(keys...)
}

func (f fields) number(keys ...string) float64 {
	v := f.raw(keys...)
	if v == nil {
		return 0
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
	}
	return 0
}

func (f fields) integer(keys ...string) int64 {
	return int64(f.number(keys...))
}

// decodeList 宽松解码数组：非数组视为空，无法解码的元素跳过
func decodeList[T any](data json.RawMessage) []T {
	if data == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
