package model

import (
	"encoding/json"
	"sort"
)

// Course 课程聚合（只读快照，每次请求从上游拉取）
type Course struct {
	ID            int64    `json:"id"`
	Title         string   `json:"titulo"`
	Description   string   `json:"descripcion"`
	Active        bool     `json:"activo"`
	DurationLabel string   `json:"duracion_total"`
	Modules       []Module `json:"modules"`
}

// UnmarshalJSON 宽松解码，兼容 modules/modulos 等别名
func (c *Course) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*c = Course{
		ID:            f.integer("id"),
		Title:         f.str("titulo", "title", "Titulo"),
		Description:   f.str("descripcion", "description"),
		Active:        f.boolean("activo", "active"),
		DurationLabel: f.str("duracion_total", "duration"),
		Modules:       decodeList[Module](f.raw("modules", "modulos")),
	}
	return nil
}

// ParseCourse 解析课程 JSON；顶层不是对象时返回错误
func ParseCourse(data []byte) (*Course, error) {
	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// OrderedModules 按模块序号稳定排序后的副本（不修改原切片）
func (c *Course) OrderedModules() []Module {
	out := make([]Module, len(c.Modules))
	copy(out, c.Modules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sequence() < out[j].Sequence()
	})
	return out
}

// Module 课程模块
type Module struct {
	ID          int64    `json:"id"`
	Number      int64    `json:"moduleNumber,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Progress    float64  `json:"progress"`
	Completed   bool     `json:"completed"`
	Locked      bool     `json:"locked"`
	Lessons     []Lesson `json:"lessons"`
}

// UnmarshalJSON 宽松解码，兼容 lessons/lecciones/unidades 等别名
func (m *Module) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	progress := f.number("progress", "progreso")
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	*m = Module{
		ID:          f.integer("id"),
		Number:      f.integer("moduleNumber", "numero", "orden"),
		Title:       f.str("title", "titulo"),
		Description: f.str("description", "descripcion"),
		Duration:    f.str("duration", "duracion"),
		Progress:    progress,
		Completed:   f.boolean("completed", "completado"),
		Locked:      f.boolean("locked", "bloqueado"),
		Lessons:     decodeList[Lesson](f.raw("lessons", "lecciones", "unidades")),
	}
	return nil
}

// Sequence 显示序号：优先 moduleNumber，缺失时用 ID
func (m *Module) Sequence() int64 {
	if m.Number > 0 {
		return m.Number
	}
	return m.ID
}

// Label 模块标题前缀，例如 "Módulo 2"
func (m *Module) Label() string {
	return "Módulo " + formatInt(m.Sequence())
}

// StatusLabel 模块状态文案
func (m *Module) StatusLabel() string {
	switch {
	case m.Locked:
		return "Bloqueado"
	case m.Completed:
		return "Completado"
	default:
		return "En progreso"
	}
}

// Lesson 课时
type Lesson struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Duration     string     `json:"duration"`
	DateLabel    string     `json:"date"`
	DateRaw      string     `json:"date_raw,omitempty"`
	Completed    bool       `json:"completed"`
	Locked       bool       `json:"locked"`
	JoinLink     string     `json:"link_zoom,omitempty"`
	HasResources bool       `json:"hasResources"`
	Materials    []Material `json:"materiales,omitempty"`
}

// UnmarshalJSON 宽松解码，兼容 duracion/completada/fecha_clase 等别名
func (l *Lesson) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	materials := decodeList[Material](f.raw("materiales", "materials"))
	*l = Lesson{
		ID:           f.integer("id"),
		Title:        f.str("title", "titulo"),
		Description:  f.str("description", "descripcion"),
		Duration:     f.str("duration", "duracion"),
		DateLabel:    f.str("date", "fecha"),
		DateRaw:      f.str("date_raw", "fecha_clase"),
		Completed:    f.boolean("completed", "completada"),
		Locked:       f.boolean("locked", "bloqueada"),
		JoinLink:     f.str("link_zoom", "link"),
		HasResources: f.booleanOr(len(materials) > 0, "hasResources", "tiene_recursos"),
		Materials:    materials,
	}
	return nil
}

// Material 课时资料
type Material struct {
	ID    int64        `json:"id"`
	Title string       `json:"titulo"`
	Link  string       `json:"link_drive"`
	Type  MaterialType `json:"tipo"`
}

// UnmarshalJSON 宽松解码
func (m *Material) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*m = Material{
		ID:    f.integer("id"),
		Title: f.str("titulo", "title"),
		Link:  f.str("link_drive", "link", "url"),
		Type:  ParseMaterialType(f.str("tipo", "type")),
	}
	return nil
}

// MaterialType 资料类型
type MaterialType string

const (
	MaterialTopic        MaterialType = "tema"
	MaterialBibliography MaterialType = "bibliografia"
	MaterialResource     MaterialType = "recurso"
)

// ParseMaterialType 未知类型归为 recurso
func ParseMaterialType(s string) MaterialType {
	switch MaterialType(s) {
	case MaterialTopic, MaterialBibliography:
		return MaterialType(s)
	default:
		return MaterialResource
	}
}

// Label 资料类型文案
func (t MaterialType) Label() string {
	switch t {
	case MaterialTopic:
		return "Material de clase"
	case MaterialBibliography:
		return "Bibliografía"
	default:
		return "Recurso adicional"
	}
}
