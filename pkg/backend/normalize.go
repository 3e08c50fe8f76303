package backend

import "encoding/json"

// Normalize 把 Strapi v4 的 {data:{id,attributes}} 信封展开为扁平对象
// 关系字段（{data:[...]}）递归展开为数组；扁平格式原样返回
func Normalize(raw []byte) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, ErrInvalidResponse
	}

	if top, ok := v.(map[string]any); ok {
		if data, has := top["data"]; has && onlyEnvelopeKeys(top) {
			v = data
		}
	}

	out, err := json.Marshal(flatten(v))
	if err != nil {
		return nil, ErrInvalidResponse
	}
	return out, nil
}

func onlyEnvelopeKeys(m map[string]any) bool {
	for k := range m {
		if k != "data" && k != "meta" {
			return false
		}
	}
	return true
}

func flatten(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = flatten(e)
		}
		return out
	case map[string]any:
		// {id, attributes} 条目
		if attrs, ok := t["attributes"].(map[string]any); ok {
			out := make(map[string]any, len(attrs)+1)
			for k, a := range attrs {
				out[k] = flatten(a)
			}
			if id, has := t["id"]; has {
				out["id"] = id
			}
			return out
		}
		// 关系字段 {data: ...}
		if data, has := t["data"]; has && len(t) == 1 {
			if data == nil {
				return nil
			}
			return flatten(data)
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = flatten(e)
		}
		return out
	default:
		return v
	}
}
