// Package languages 提供各语言的语法解析适配层。
// 解析层只负责把源码转换为 model.Method 列表，不做任何分类。
package languages

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"methodstat/internal/model"
)

// DefaultExtensions 是未显式配置时扫描的文件后缀。
var DefaultExtensions = []string{".java"}

// Analyzer 定义单语言解析器接口。
type Analyzer interface {
	// Name 返回语言名称（例如 Java、Go）。
	Name() string
	// Extensions 返回该语言支持的后缀列表（包含点号，如 .java）。
	Extensions() []string
	// Analyze 解析源码并返回全部方法声明（含嵌套方法）。
	// 解析失败时不返回任何部分结果。
	Analyze(reader io.Reader) ([]model.Method, error)
}

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
}

// Registry 管理语言解析器注册与后缀映射。
type Registry struct {
	analyzers     []Analyzer
	analyzerByExt map[string]Analyzer
}

// NewRegistry 创建并注册所有内置语言解析器。
func NewRegistry() *Registry {
	analyzers := []Analyzer{
		NewJavaAnalyzer(),
		NewJavaScriptAnalyzer(),
		NewTypeScriptAnalyzer(),
		NewTSXAnalyzer(),
		NewGoAnalyzer(),
	}

	registry := &Registry{
		analyzers:     analyzers,
		analyzerByExt: make(map[string]Analyzer),
	}

	for _, analyzer := range analyzers {
		for _, ext := range analyzer.Extensions() {
			registry.analyzerByExt[strings.ToLower(ext)] = analyzer
		}
	}

	return registry
}

// AnalyzerForFile 根据文件后缀查找解析器。
func (r *Registry) AnalyzerForFile(path string) (Analyzer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	analyzer, ok := r.analyzerByExt[ext]
	return analyzer, ok
}

// Supports 判断后缀是否有对应解析器。后缀可以不带点号。
func (r *Registry) Supports(ext string) bool {
	_, ok := r.analyzerByExt[NormalizeExtension(ext)]
	return ok
}

// Languages 返回已注册语言清单。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.analyzers))
	for _, analyzer := range r.analyzers {
		extensions := append([]string(nil), analyzer.Extensions()...)
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       analyzer.Name(),
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	for _, analyzer := range r.analyzers {
		if analyzer.Name() == language {
			extensions := append([]string(nil), analyzer.Extensions()...)
			sort.Strings(extensions)
			return extensions
		}
	}
	return nil
}

// NormalizeExtension 统一后缀格式：小写并补齐点号。
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
