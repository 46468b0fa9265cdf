// Package classifier 实现方法分类规则。
// 分类是纯函数：输入一个 model.Method，输出三个维度的分桶结果，
// 计数的累加由调用方通过 model.Totals 完成。
package classifier

import (
	"strings"

	"methodstat/internal/model"
)

const (
	// CallbackPattern 是回调注册调用的特征子串（大小写敏感）。
	CallbackPattern = "addCallback(new Callback"
	// TodoMarker 是 TODO 注释的特征子串（大小写敏感）。
	TodoMarker = "TODO"
)

// accessorPrefixes 是 getter/setter/布尔访问器的方法名前缀。
var accessorPrefixes = []string{"get", "set", "is"}

// IsAccessor 判断方法名是否以访问器前缀开头。
// 只做前缀匹配，因此 isolate 之类的方法名同样会命中。
func IsAccessor(name string) bool {
	for _, prefix := range accessorPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Classify 计算单个方法的分类结果。
// 嵌套方法返回零值，三个维度都不计数。
func Classify(method model.Method) model.Classification {
	var result model.Classification
	if method.Nested {
		return result
	}

	result.Callback = CallbackBucket(countContaining(method.Calls, CallbackPattern))

	if !IsAccessor(method.Name) {
		result.Lines = LineBucket(method.Span())
		result.Todo = TodoBucket(countContaining(method.Comments, TodoMarker))
	}

	return result
}

// ClassifyFile 对一个文件中的全部方法分类并返回该文件的计数。
func ClassifyFile(methods []model.Method) model.Totals {
	var totals model.Totals
	for _, method := range methods {
		if method.Nested {
			totals.Skipped++
			continue
		}
		totals.Apply(Classify(method))
	}
	return totals
}

// LineBucket 根据行数差值选择分桶，区间为 [..50]、[51..150]、[151..]。
func LineBucket(span int) model.LineBucket {
	if span <= 50 {
		return model.LineUnder50
	} else if span <= 150 {
		return model.LineBetween50And150
	}
	return model.LineOver150
}

// CallbackBucket 根据匹配的调用次数选择分桶。
//
// 判定顺序固定为 ==1、>=3、其余，count==2 只能落入 Two。
func CallbackBucket(count int) model.CallbackBucket {
	if count == 0 {
		return model.CallbackNone
	}
	if count == 1 {
		return model.CallbackOne
	} else if count >= 3 {
		return model.CallbackThreeOrMore
	}
	return model.CallbackTwo
}

// TodoBucket 根据 TODO 注释数量选择分桶。
func TodoBucket(count int) model.TodoBucket {
	if count <= 0 {
		return model.TodoNone
	}
	if count <= 3 {
		return model.TodoLow
	} else if count > 7 {
		return model.TodoHigh
	}
	return model.TodoMedium
}

func countContaining(items []string, substr string) int {
	count := 0
	for _, item := range items {
		if strings.Contains(item, substr) {
			count++
		}
	}
	return count
}
