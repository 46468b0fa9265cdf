// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、任务分发、并发执行和结果聚合，不负责语法解析和分类细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"methodstat/internal/classifier"
	"methodstat/internal/languages"
	"methodstat/internal/model"

	"github.com/rs/zerolog/log"
)

// Options 是扫描服务的可配置项。
type Options struct {
	// Extensions 为空时使用 languages.DefaultExtensions。
	Extensions []string
	// ExcludeDirs 中的目录名在遍历时整体跳过。
	ExcludeDirs []string
	Workers     int
}

// Service 是扫描服务对象。
type Service struct {
	registry    *languages.Registry
	extensions  map[string]bool
	excludeDirs map[string]bool
	workers     int
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	analyzer     languages.Analyzer
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileResult *model.FileResult
	scanError  *model.ScanError
}

// NewService 创建扫描服务。
// 后缀过滤中出现未注册语言时返回错误。
func NewService(registry *languages.Registry, options Options) (*Service, error) {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rawExtensions := options.Extensions
	if len(rawExtensions) == 0 {
		rawExtensions = languages.DefaultExtensions
	}

	extensions := make(map[string]bool, len(rawExtensions))
	for _, raw := range rawExtensions {
		ext := languages.NormalizeExtension(raw)
		if ext == "" {
			continue
		}
		if !registry.Supports(ext) {
			return nil, fmt.Errorf("unsupported file extension: %s", raw)
		}
		extensions[ext] = true
	}
	if len(extensions) == 0 {
		return nil, errors.New("no file extensions to scan")
	}

	excludeDirs := make(map[string]bool, len(options.ExcludeDirs))
	for _, dir := range options.ExcludeDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			excludeDirs[dir] = true
		}
	}

	return &Service{
		registry:    registry,
		extensions:  extensions,
		excludeDirs: excludeDirs,
		workers:     workers,
	}, nil
}

// Extensions 返回生效的后缀列表（已排序）。
func (s *Service) Extensions() []string {
	result := make([]string, 0, len(s.extensions))
	for ext := range s.extensions {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// ScanPath 扫描目录或单文件并返回聚合后的分类计数。
// 单文件解析失败只记录到 Errors，不中断扫描；根路径不可用时直接返回错误。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget
	result.Extensions = s.Extensions()

	tasks := make(chan scanTask, s.workers*4)
	results := make(chan workerResult, s.workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		if info.IsDir() {
			walkErrChan <- s.enqueueDirectoryTasks(absoluteTarget, tasks)
			return
		}
		walkErrChan <- s.enqueueSingleFileTask(absoluteTarget, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileResult, 0)
	result.Errors = make([]model.ScanError, 0)

	// 计数只在当前 goroutine 中合并，worker 之间不共享可变状态。
	for item := range results {
		if item.fileResult != nil {
			result.Files = append(result.Files, *item.fileResult)
			result.Totals.Add(item.fileResult.Totals)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	log.Debug().
		Str("path", absoluteTarget).
		Int("files", len(result.Files)).
		Int("errors", len(result.Errors)).
		Int64("methods", result.Totals.Methods).
		Msg("scan finished")

	return result, nil
}

// enqueueDirectoryTasks 遍历目录并把启用后缀的文件推入任务队列。
func (s *Service) enqueueDirectoryTasks(root string, tasks chan<- scanTask) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %s: %w", path, walkErr)
		}

		if entry.IsDir() {
			if path != root && s.excludeDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		analyzer, ok := s.analyzerForFile(path)
		if !ok {
			return nil
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}

		tasks <- scanTask{
			absolutePath: path,
			displayPath:  filepath.ToSlash(relativePath),
			analyzer:     analyzer,
		}
		return nil
	})
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(filePath string, tasks chan<- scanTask) error {
	analyzer, ok := s.analyzerForFile(filePath)
	if !ok {
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}

	tasks <- scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		analyzer:     analyzer,
	}
	return nil
}

// analyzerForFile 只返回启用后缀对应的解析器。
func (s *Service) analyzerForFile(path string) (languages.Analyzer, bool) {
	if !s.extensions[strings.ToLower(filepath.Ext(path))] {
		return nil, false
	}
	return s.registry.AnalyzerForFile(path)
}

// runWorker 执行文件读取、语法解析和方法分类。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		totals, err := s.classifyFile(task)
		if err != nil {
			log.Warn().
				Str("path", task.displayPath).
				Str("language", task.analyzer.Name()).
				Err(err).
				Msg("skipping file that could not be parsed")
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: err.Error(),
				},
			}
			continue
		}

		log.Debug().
			Str("path", task.displayPath).
			Int64("methods", totals.Methods).
			Int64("skipped", totals.Skipped).
			Msg("file classified")

		results <- workerResult{
			fileResult: &model.FileResult{
				Path:     task.displayPath,
				Language: task.analyzer.Name(),
				Totals:   totals,
			},
		}
	}
}

// classifyFile 解析单个文件并返回该文件的分类计数。
// 解析失败时不返回任何部分计数。
func (s *Service) classifyFile(task scanTask) (model.Totals, error) {
	file, err := os.Open(task.absolutePath)
	if err != nil {
		return model.Totals{}, err
	}

	methods, analyzeErr := task.analyzer.Analyze(file)
	closeErr := file.Close()

	if analyzeErr != nil {
		return model.Totals{}, analyzeErr
	}
	if closeErr != nil {
		return model.Totals{}, closeErr
	}

	return classifier.ClassifyFile(methods), nil
}
