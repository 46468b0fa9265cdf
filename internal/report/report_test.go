package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"methodstat/internal/model"

	"github.com/stretchr/testify/require"
)

func sampleResult() model.ScanResult {
	return model.ScanResult{
		ScannedPath: "/src/project",
		Extensions:  []string{".java"},
		Files: []model.FileResult{
			{Path: "A.java", Language: "Java"},
		},
		Totals: model.Totals{
			Methods:   9,
			Callbacks: model.CallbackTotals{One: 1, Two: 2, ThreeOrMore: 3},
			Lines:     model.LineTotals{Under50: 4, Between50And150: 5, Over150: 6},
			Todos:     model.TodoTotals{Low: 7, Medium: 8, High: 9},
		},
		Errors: []model.ScanError{},
	}
}

// TestPrintTextLayout 验证三段式输出的标签、顺序与空行。
func TestPrintTextLayout(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintText(&buffer, sampleResult()))

	expected := "Total number of methods with:\n" +
		"=============================\n" +
		"One call to addCallback   ->            1\n" +
		"Two calls to addCallback  ->            2\n" +
		"Three or more calls to addCallback  ->  3\n" +
		"\n" +
		"Total number of methods with:\n" +
		"=============================\n" +
		"50 or less lines of code          ->            4\n" +
		"Between 50 and 150 lines of code  ->            5\n" +
		"Over 150 lines of code            ->            6\n" +
		"\n" +
		"Total number of methods with:\n" +
		"=============================\n" +
		"3 or less todo comments       ->            7\n" +
		"Between 4 and 7 todo comments ->            8\n" +
		"Over 7 lines of todo comments ->            9\n" +
		"\n"

	require.Equal(t, expected, buffer.String())
}

func TestPrintTextListsFailures(t *testing.T) {
	result := sampleResult()
	result.Errors = []model.ScanError{{Path: "Broken.java", Error: "syntax error at line 2"}}

	var buffer bytes.Buffer
	require.NoError(t, PrintText(&buffer, result))
	require.Contains(t, buffer.String(), "Files that could not be parsed: 1\n  Broken.java: syntax error at line 2\n")
}

func TestPrintJSON(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintJSON(&buffer, sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Equal(t, "/src/project", decoded["scanned_path"])

	totals := decoded["totals"].(map[string]any)
	require.Equal(t, float64(3), totals["callbacks"].(map[string]any)["three_or_more"])
	require.Equal(t, float64(5), totals["lines"].(map[string]any)["between_50_and_150"])
	require.Equal(t, float64(9), totals["todos"].(map[string]any)["high"])
}

// TestWriteJSONFileCreatesDirectory 验证导出时自动创建父目录。
func TestWriteJSONFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "result.json")
	require.NoError(t, WriteJSONFile(path, sampleResult()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.ScanResult
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Equal(t, sampleResult().Totals, decoded.Totals)
}
