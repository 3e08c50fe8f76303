package model

import "encoding/json"

// Capsule 课程补充资料（胶囊）
type Capsule struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// UnmarshalJSON 宽松解码
func (c *Capsule) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*c = Capsule{
		ID:          f.integer("id"),
		Title:       f.str("title", "titulo"),
		Description: f.str("description", "descripcion"),
		Link:        f.str("link", "url", "link_drive"),
	}
	return nil
}

// ParseCapsules 非数组返回空列表，异常元素跳过
func ParseCapsules(data json.RawMessage) []Capsule {
	return decodeList[Capsule](data)
}
