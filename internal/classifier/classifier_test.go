package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"methodstat/internal/model"
)

// repeat 构造 n 个相同字符串，用于模拟调用或注释列表。
func repeat(value string, n int) []string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, value)
	}
	return items
}

func TestIsAccessor(t *testing.T) {
	cases := map[string]bool{
		"getValue":  true,
		"setValue":  true,
		"isEmpty":   true,
		"isolate":   true,
		"get":       true,
		"GetValue":  false,
		"process":   false,
		"reset":     false,
		"":          false,
		"toString":  false,
		"settle":    true,
		"Isolation": false,
	}

	for name, want := range cases {
		require.Equal(t, want, IsAccessor(name), "name=%q", name)
	}
}

// TestLineBucketBoundaries 验证 50/51/150/151 边界。
func TestLineBucketBoundaries(t *testing.T) {
	require.Equal(t, model.LineUnder50, LineBucket(0))
	require.Equal(t, model.LineUnder50, LineBucket(50))
	require.Equal(t, model.LineBetween50And150, LineBucket(51))
	require.Equal(t, model.LineBetween50And150, LineBucket(150))
	require.Equal(t, model.LineOver150, LineBucket(151))
}

func TestCallbackBucket(t *testing.T) {
	require.Equal(t, model.CallbackNone, CallbackBucket(0))
	require.Equal(t, model.CallbackOne, CallbackBucket(1))
	require.Equal(t, model.CallbackTwo, CallbackBucket(2))
	require.Equal(t, model.CallbackThreeOrMore, CallbackBucket(3))
	require.Equal(t, model.CallbackThreeOrMore, CallbackBucket(4))
}

func TestTodoBucketBoundaries(t *testing.T) {
	require.Equal(t, model.TodoNone, TodoBucket(0))
	require.Equal(t, model.TodoLow, TodoBucket(1))
	require.Equal(t, model.TodoLow, TodoBucket(3))
	require.Equal(t, model.TodoMedium, TodoBucket(4))
	require.Equal(t, model.TodoMedium, TodoBucket(7))
	require.Equal(t, model.TodoHigh, TodoBucket(8))
}

// TestClassifyCallbackOccurrences 验证 1/2/4 次回调注册分别落入对应分桶。
func TestClassifyCallbackOccurrences(t *testing.T) {
	call := "service.addCallback(new Callback(){ public void run() {} })"

	for count, want := range map[int]model.CallbackBucket{
		0: model.CallbackNone,
		1: model.CallbackOne,
		2: model.CallbackTwo,
		4: model.CallbackThreeOrMore,
	} {
		method := model.Method{
			Name:      "register",
			StartLine: 1,
			EndLine:   10,
			Calls:     append(repeat(call, count), "log.info(\"x\")"),
		}
		require.Equal(t, want, Classify(method).Callback, "count=%d", count)
	}
}

func TestClassifyCallbackIsCaseSensitive(t *testing.T) {
	method := model.Method{
		Name:  "register",
		Calls: []string{"addcallback(new Callback()", "addCallback(new callback()", "addCallback(callback)"},
	}
	require.Equal(t, model.CallbackNone, Classify(method).Callback)
}

func TestClassifyTodoOccurrences(t *testing.T) {
	for count, want := range map[int]model.TodoBucket{
		0: model.TodoNone,
		3: model.TodoLow,
		4: model.TodoMedium,
		7: model.TodoMedium,
		8: model.TodoHigh,
	} {
		method := model.Method{
			Name:      "process",
			StartLine: 1,
			EndLine:   5,
			Comments:  append(repeat("// TODO: fix", count), "// todo lower case", "// plain"),
		}
		require.Equal(t, want, Classify(method).Todo, "count=%d", count)
	}
}

// TestClassifyAccessorExclusion 验证访问器只参与回调维度。
func TestClassifyAccessorExclusion(t *testing.T) {
	method := model.Method{
		Name:      "getValue",
		StartLine: 10,
		EndLine:   210,
		Calls:     []string{"bus.addCallback(new Callback() {})"},
		Comments:  repeat("// TODO", 10),
	}

	result := Classify(method)
	require.Equal(t, model.LineNone, result.Lines)
	require.Equal(t, model.TodoNone, result.Todo)
	require.Equal(t, model.CallbackOne, result.Callback)
}

func TestClassifyNestedMethodIgnored(t *testing.T) {
	method := model.Method{
		Name:      "onSuccess",
		StartLine: 1,
		EndLine:   300,
		Nested:    true,
		Calls:     repeat("addCallback(new Callback()", 3),
		Comments:  repeat("// TODO", 9),
	}
	require.Equal(t, model.Classification{}, Classify(method))

	totals := ClassifyFile([]model.Method{method})
	require.Equal(t, model.Totals{Skipped: 1}, totals)
}

// TestClassifyFileScenario 对应“30 行方法 + 1 次回调 + 2 个 TODO”的端到端场景。
func TestClassifyFileScenario(t *testing.T) {
	methods := []model.Method{
		{
			Name:      "handle",
			StartLine: 3,
			EndLine:   33,
			Calls:     []string{"client.addCallback(new Callback() {})", "System.out.println(\"x\")"},
			Comments:  []string{"// TODO one", "/* TODO two */", "// done"},
		},
		{
			Name:      "run",
			StartLine: 10,
			EndLine:   12,
			Nested:    true,
			Comments:  []string{"// TODO nested"},
		},
	}

	totals := ClassifyFile(methods)
	require.Equal(t, model.Totals{
		Methods:   1,
		Skipped:   1,
		Callbacks: model.CallbackTotals{One: 1},
		Lines:     model.LineTotals{Under50: 1},
		Todos:     model.TodoTotals{Low: 1},
	}, totals)
}

func TestClassifyFileIsDeterministic(t *testing.T) {
	methods := []model.Method{
		{Name: "a", StartLine: 1, EndLine: 100, Comments: repeat("TODO", 5)},
		{Name: "b", StartLine: 1, EndLine: 400, Calls: repeat(CallbackPattern+"()", 2)},
		{Name: "isReady", StartLine: 1, EndLine: 2},
	}

	first := ClassifyFile(methods)
	second := ClassifyFile(methods)
	require.Equal(t, first, second)
	require.Equal(t, int64(3), first.Methods)
	require.Equal(t, model.LineTotals{Under50: 0, Between50And150: 1, Over150: 1}, first.Lines)
	require.Equal(t, model.TodoTotals{Medium: 1}, first.Todos)
	require.Equal(t, model.CallbackTotals{Two: 1}, first.Callbacks)
}
