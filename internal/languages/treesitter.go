package languages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"methodstat/internal/model"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSyntax 表示源码无法被完整解析。
// 解析失败按文件粒度处理：失败文件不返回任何方法。
var ErrSyntax = errors.New("syntax error")

// grammar 描述一种语言在语法树中的节点类型约定。
type grammar struct {
	name         string
	extensions   []string
	language     func() *sitter.Language
	methodTypes  map[string]bool
	callTypes    map[string]bool
	commentTypes map[string]bool
}

// treeSitterAnalyzer 是基于 tree-sitter 的通用分析器。
// 不同语言只在 grammar 中区分，遍历和提取逻辑完全共享。
type treeSitterAnalyzer struct {
	grammar grammar
}

// Name 返回语言名称。
func (a *treeSitterAnalyzer) Name() string {
	return a.grammar.name
}

// Extensions 返回语言后缀。
func (a *treeSitterAnalyzer) Extensions() []string {
	return append([]string(nil), a.grammar.extensions...)
}

// Analyze 读取全部源码并提取方法声明。
func (a *treeSitterAnalyzer) Analyze(reader io.Reader) ([]model.Method, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return a.parse(source)
}

func (a *treeSitterAnalyzer) parse(source []byte) ([]model.Method, error) {
	// sitter.Parser 不是并发安全的，每次解析使用独立实例。
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(a.grammar.language())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", a.grammar.name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			return nil, fmt.Errorf("%w at line %d", ErrSyntax, int(bad.StartPoint().Row)+1)
		}
		return nil, ErrSyntax
	}

	extractor := &methodExtractor{grammar: &a.grammar, source: source}
	extractor.walk(root, 0)
	return extractor.methods, nil
}

// methodExtractor 深度优先遍历语法树，收集方法声明。
type methodExtractor struct {
	grammar *grammar
	source  []byte
	methods []model.Method
}

// walk 递归访问节点，depth 为当前节点之上的方法声明层数。
func (e *methodExtractor) walk(node *sitter.Node, depth int) {
	childDepth := depth
	if e.grammar.methodTypes[node.Type()] {
		e.methods = append(e.methods, e.buildMethod(node, depth > 0))
		childDepth++
	}

	// 即使当前方法是嵌套方法，也要继续下探，保证内部方法都被标记为 Nested。
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		if child := node.Child(i); child != nil {
			e.walk(child, childDepth)
		}
	}
}

func (e *methodExtractor) buildMethod(node *sitter.Node, nested bool) model.Method {
	method := model.Method{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Nested:    nested,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		method.Name = name.Content(e.source)
	}

	// 调用和注释的收集不受方法嵌套限制，覆盖整棵子树。
	e.collect(node, &method)
	return method
}

func (e *methodExtractor) collect(node *sitter.Node, method *model.Method) {
	switch {
	case e.grammar.callTypes[node.Type()]:
		method.Calls = append(method.Calls, renderCall(node.Content(e.source)))
	case e.grammar.commentTypes[node.Type()]:
		method.Comments = append(method.Comments, node.Content(e.source))
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		if child := node.Child(i); child != nil {
			e.collect(child, method)
		}
	}
}

// renderCall 规范化调用表达式文本。
// 空白序列折叠为单个空格，并去掉括号内侧及 '(' 之前的空格，
// 使 "addCallback( new  Callback" 与 "addCallback(new Callback" 等价。
func renderCall(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	pendingSpace := false
	var previous rune
	for _, current := range text {
		if unicode.IsSpace(current) {
			pendingSpace = true
			continue
		}
		if pendingSpace && builder.Len() > 0 && previous != '(' && current != '(' && current != ')' {
			builder.WriteRune(' ')
		}
		pendingSpace = false
		builder.WriteRune(current)
		previous = current
	}
	return builder.String()
}

// firstErrorNode 返回先序遍历中第一个 ERROR 或 MISSING 节点。
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}
	return nil
}

func typeSet(types ...string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, item := range types {
		set[item] = true
	}
	return set
}
