// Package report 提供 methodstat 的输出能力。
// 当前实现支持纯文本汇总格式和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"methodstat/internal/model"
)

const sectionTitle = "Total number of methods with:"

// section 是文本报告中的一个分组，行的顺序即输出顺序。
type section struct {
	lines []sectionLine
}

type sectionLine struct {
	label string
	value int64
}

// sections 按 callback、行数、TODO 的固定顺序构造三个分组。
func sections(totals model.Totals) []section {
	return []section{
		{lines: []sectionLine{
			{"One call to addCallback   ->            ", totals.Callbacks.One},
			{"Two calls to addCallback  ->            ", totals.Callbacks.Two},
			{"Three or more calls to addCallback  ->  ", totals.Callbacks.ThreeOrMore},
		}},
		{lines: []sectionLine{
			{"50 or less lines of code          ->            ", totals.Lines.Under50},
			{"Between 50 and 150 lines of code  ->            ", totals.Lines.Between50And150},
			{"Over 150 lines of code            ->            ", totals.Lines.Over150},
		}},
		{lines: []sectionLine{
			{"3 or less todo comments       ->            ", totals.Todos.Low},
			{"Between 4 and 7 todo comments ->            ", totals.Todos.Medium},
			{"Over 7 lines of todo comments ->            ", totals.Todos.High},
		}},
	}
}

// PrintText 输出三段式文本汇总。
// 每段包含标题、等号分隔线、三行计数和一个空行；
// 存在解析失败的文件时，在末尾追加失败清单。
func PrintText(writer io.Writer, result model.ScanResult) error {
	separator := strings.Repeat("=", len(sectionTitle))

	for _, item := range sections(result.Totals) {
		if _, err := fmt.Fprintf(writer, "%s\n%s\n", sectionTitle, separator); err != nil {
			return err
		}
		for _, line := range item.lines {
			if _, err := fmt.Fprintf(writer, "%s%d\n", line.label, line.value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
	}

	if len(result.Errors) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(writer, "Files that could not be parsed: %d\n", len(result.Errors)); err != nil {
		return err
	}
	for _, item := range result.Errors {
		if _, err := fmt.Fprintf(writer, "  %s: %s\n", item.Path, item.Error); err != nil {
			return err
		}
	}
	return nil
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
