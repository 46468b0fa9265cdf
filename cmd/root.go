// Package cmd 提供 methodstat 的命令行入口与子命令编排。
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"methodstat/internal/languages"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	logLevel := "warn"

	rootCmd := &cobra.Command{
		Use:   "methodstat",
		Short: "按回调注册、行数和 TODO 注释对方法分类统计",
		Long: "methodstat 遍历源码目录，解析每个文件的语法树，\n" +
			"对顶层方法按 addCallback 调用次数、代码行数和 TODO 注释数量分桶统计。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger(cmd.ErrOrStderr(), logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "日志级别: debug, info, warn, error")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry))

	return rootCmd
}

// setupLogger 配置全局 zerolog 日志，输出到 stderr，终端下启用颜色。
func setupLogger(writer io.Writer, level string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	noColor := true
	if file, ok := writer.(*os.File); ok {
		noColor = !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd())
	}

	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: writer, NoColor: noColor}).
		With().
		Timestamp().
		Logger()
	return nil
}
