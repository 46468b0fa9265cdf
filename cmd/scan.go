package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"methodstat/internal/config"
	"methodstat/internal/languages"
	"methodstat/internal/report"
	"methodstat/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	configPath  string
	format      string
	output      string
	workers     int
	extensions  []string
	excludeDirs []string
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	methodstat scan ./project
//	methodstat scan ./project --ext .java --ext .ts
//	methodstat scan --config methodstat.toml --format json --output result.json
func newScanCmd(registry *languages.Registry) *cobra.Command {
	options := scanOptions{
		format:      "text",
		output:      "output.json",
		workers:     runtime.NumCPU(),
		extensions:  append([]string(nil), languages.DefaultExtensions...),
		excludeDirs: []string{".git"},
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出方法分类统计",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := options.resolve(cmd, args)
			if err != nil {
				return err
			}

			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "text" && format != "json" {
				return errors.New("unsupported format, allowed values: text, json")
			}

			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			service, err := scanner.NewService(registry, scanner.Options{
				Extensions:  options.extensions,
				ExcludeDirs: options.excludeDirs,
				Workers:     options.workers,
			})
			if err != nil {
				return err
			}

			result, err := service.ScanPath(root)
			if err != nil {
				return err
			}

			switch format {
			case "text":
				return report.PrintText(cmd.OutOrStdout(), result)
			case "json":
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath == "" {
					outputPath = "output.json"
				}
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
				return nil
			default:
				return errors.New("unsupported format")
			}
		},
	}

	scanCmd.Flags().StringVar(&options.configPath, "config", "", "TOML 配置文件路径")
	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: text 或 json")
	scanCmd.Flags().StringVar(&options.output, "output", options.output, "json 导出文件路径，默认 output.json")
	scanCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量")
	scanCmd.Flags().StringSliceVar(&options.extensions, "ext", options.extensions, "需要扫描的文件后缀，可重复指定")
	scanCmd.Flags().StringSliceVar(&options.excludeDirs, "exclude-dir", options.excludeDirs, "遍历时跳过的目录名，可重复指定")

	return scanCmd
}

// resolve 合并配置文件与命令行参数并返回扫描根路径。
// 命令行显式设置的参数优先；没有路径参数时必须由配置文件提供 root。
func (o *scanOptions) resolve(cmd *cobra.Command, args []string) (string, error) {
	root := ""
	if len(args) > 0 {
		root = args[0]
	}

	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return "", err
		}
		o.apply(cmd, cfg)
		if root == "" {
			root = cfg.Root
		}
	}

	if strings.TrimSpace(root) == "" {
		return "", errors.New("scan path is required: pass [path] or set root in --config")
	}
	return root, nil
}

// apply 用配置文件填充未在命令行中显式设置的参数。
func (o *scanOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if !flags.Changed("format") && cfg.Format != "" {
		o.format = cfg.Format
	}
	if !flags.Changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !flags.Changed("workers") && cfg.Workers > 0 {
		o.workers = cfg.Workers
	}
	if !flags.Changed("ext") && len(cfg.Extensions) > 0 {
		o.extensions = cfg.Extensions
	}
	if !flags.Changed("exclude-dir") && cfg.ExcludeDirs != nil {
		o.excludeDirs = cfg.ExcludeDirs
	}
}
