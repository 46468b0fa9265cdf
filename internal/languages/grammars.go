package languages

import (
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// NewJavaAnalyzer 创建 Java 分析器。
// 构造器（constructor_declaration）不属于方法，也不参与嵌套判定。
func NewJavaAnalyzer() Analyzer {
	return &treeSitterAnalyzer{grammar: grammar{
		name:         "Java",
		extensions:   []string{".java"},
		language:     java.GetLanguage,
		methodTypes:  typeSet("method_declaration"),
		callTypes:    typeSet("method_invocation"),
		commentTypes: typeSet("line_comment", "block_comment"),
	}}
}

// NewJavaScriptAnalyzer 创建 JavaScript 分析器。
func NewJavaScriptAnalyzer() Analyzer {
	return &treeSitterAnalyzer{grammar: grammar{
		name:         "JavaScript",
		extensions:   []string{".js", ".mjs", ".cjs", ".jsx"},
		language:     javascript.GetLanguage,
		methodTypes:  ecmaMethodTypes(),
		callTypes:    typeSet("call_expression"),
		commentTypes: typeSet("comment"),
	}}
}

// NewTypeScriptAnalyzer 创建 TypeScript 分析器。
func NewTypeScriptAnalyzer() Analyzer {
	return &treeSitterAnalyzer{grammar: grammar{
		name:         "TypeScript",
		extensions:   []string{".ts", ".mts", ".cts"},
		language:     typescript.GetLanguage,
		methodTypes:  ecmaMethodTypes(),
		callTypes:    typeSet("call_expression"),
		commentTypes: typeSet("comment"),
	}}
}

// NewTSXAnalyzer 创建 TSX 分析器，TSX 使用独立语法。
func NewTSXAnalyzer() Analyzer {
	return &treeSitterAnalyzer{grammar: grammar{
		name:         "TSX",
		extensions:   []string{".tsx"},
		language:     tsx.GetLanguage,
		methodTypes:  ecmaMethodTypes(),
		callTypes:    typeSet("call_expression"),
		commentTypes: typeSet("comment"),
	}}
}

// NewGoAnalyzer 创建 Go 分析器。
// Go 的函数字面量不是声明，因此 Go 方法永远不会被标记为嵌套。
func NewGoAnalyzer() Analyzer {
	return &treeSitterAnalyzer{grammar: grammar{
		name:         "Go",
		extensions:   []string{".go"},
		language:     golang.GetLanguage,
		methodTypes:  typeSet("function_declaration", "method_declaration"),
		callTypes:    typeSet("call_expression"),
		commentTypes: typeSet("comment"),
	}}
}

func ecmaMethodTypes() map[string]bool {
	return typeSet("function_declaration", "generator_function_declaration", "method_definition")
}
