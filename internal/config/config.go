// Package config 负责从 TOML 文件加载扫描配置。
// 配置文件是可选的，命令行中显式设置的参数优先于文件内容。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config 是配置文件的根结构。
type Config struct {
	// Root 是默认扫描目录，命令行未给出路径时使用。
	Root string `toml:"root"`
	// Extensions 是需要扫描的文件后缀。
	Extensions []string `toml:"extensions"`
	// ExcludeDirs 是遍历时跳过的目录名。
	ExcludeDirs []string `toml:"exclude_dirs"`
	Workers     int      `toml:"workers"`
	Format      string   `toml:"format"`
	Output      string   `toml:"output"`
}

// Load 读取并解析 TOML 配置文件。
// 未知字段视为错误，避免拼写错误被静默忽略。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	return cfg, nil
}
