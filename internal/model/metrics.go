// Package model 定义 methodstat 的核心数据模型。
// 这些结构会被解析层、分类器、扫描器和输出层共同使用。
package model

// Method 表示解析层输出的一个方法声明。
//
// 注意：
// - StartLine/EndLine 为解析器给出的 1-based 行号
// - Nested 为 true 表示祖先链上存在另一个方法声明
// - Calls/Comments 覆盖方法整棵子树（包含内部嵌套方法）
type Method struct {
	Name      string   `json:"name"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Nested    bool     `json:"nested"`
	Calls     []string `json:"calls,omitempty"`
	Comments  []string `json:"comments,omitempty"`
}

// Span 返回方法跨越的行数差值（end - begin）。
func (m Method) Span() int {
	return m.EndLine - m.StartLine
}

// CallbackBucket 是 addCallback 调用次数的分桶。
type CallbackBucket int

const (
	CallbackNone CallbackBucket = iota
	CallbackOne
	CallbackTwo
	CallbackThreeOrMore
)

// LineBucket 是方法行数的分桶。
type LineBucket int

const (
	LineNone LineBucket = iota
	LineUnder50
	LineBetween50And150
	LineOver150
)

// TodoBucket 是 TODO 注释数量的分桶。
type TodoBucket int

const (
	TodoNone TodoBucket = iota
	TodoLow
	TodoMedium
	TodoHigh
)

// Classification 是单个方法在三个维度上的分类结果。
// None 表示该维度不计数。
type Classification struct {
	Callback CallbackBucket `json:"callback"`
	Lines    LineBucket     `json:"lines"`
	Todo     TodoBucket     `json:"todo"`
}

// CallbackTotals 汇总 addCallback 维度。
type CallbackTotals struct {
	One         int64 `json:"one"`
	Two         int64 `json:"two"`
	ThreeOrMore int64 `json:"three_or_more"`
}

// LineTotals 汇总行数维度。
type LineTotals struct {
	Under50         int64 `json:"under_50"`
	Between50And150 int64 `json:"between_50_and_150"`
	Over150         int64 `json:"over_150"`
}

// TodoTotals 汇总 TODO 注释维度。
type TodoTotals struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

// Totals 是九个分桶计数器的集合。
// Methods 记录参与分类的顶层方法数，Skipped 记录被忽略的嵌套方法数。
type Totals struct {
	Methods   int64          `json:"methods"`
	Skipped   int64          `json:"skipped"`
	Callbacks CallbackTotals `json:"callbacks"`
	Lines     LineTotals     `json:"lines"`
	Todos     TodoTotals     `json:"todos"`
}

// Apply 将一个方法的分类结果累加到计数器。
func (t *Totals) Apply(c Classification) {
	t.Methods++

	switch c.Callback {
	case CallbackOne:
		t.Callbacks.One++
	case CallbackTwo:
		t.Callbacks.Two++
	case CallbackThreeOrMore:
		t.Callbacks.ThreeOrMore++
	}

	switch c.Lines {
	case LineUnder50:
		t.Lines.Under50++
	case LineBetween50And150:
		t.Lines.Between50And150++
	case LineOver150:
		t.Lines.Over150++
	}

	switch c.Todo {
	case TodoLow:
		t.Todos.Low++
	case TodoMedium:
		t.Todos.Medium++
	case TodoHigh:
		t.Todos.High++
	}
}

// Add 将另一个统计结果叠加到当前对象。
func (t *Totals) Add(other Totals) {
	t.Methods += other.Methods
	t.Skipped += other.Skipped

	t.Callbacks.One += other.Callbacks.One
	t.Callbacks.Two += other.Callbacks.Two
	t.Callbacks.ThreeOrMore += other.Callbacks.ThreeOrMore

	t.Lines.Under50 += other.Lines.Under50
	t.Lines.Between50And150 += other.Lines.Between50And150
	t.Lines.Over150 += other.Lines.Over150

	t.Todos.Low += other.Todos.Low
	t.Todos.Medium += other.Todos.Medium
	t.Todos.High += other.Todos.High
}

// FileResult 表示单文件分类结果。
type FileResult struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Totals   Totals `json:"totals"`
}

// ScanError 记录单文件解析失败信息。
// 设计为“错误不阻断全量扫描”，失败文件不贡献任何计数。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ScanResult 是 scan 命令的完整输出模型。
type ScanResult struct {
	ScannedPath string       `json:"scanned_path"`
	Extensions  []string     `json:"extensions"`
	Files       []FileResult `json:"files"`
	Totals      Totals       `json:"totals"`
	Errors      []ScanError  `json:"errors"`
}
