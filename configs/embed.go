// Package configs 内置的各环境示例配置
package configs

import (
	_ "embed"
	"fmt"
)

//go:embed development/config.json
var developmentConfig []byte

//go:embed testing/config.json
var testingConfig []byte

//go:embed production/config.json
var productionConfig []byte

// Environments 内置配置覆盖的运行环境
var Environments = []string{"dev", "test", "prod"}

// ForEnvironment 返回指定环境的内置配置（dev | test | prod）
func ForEnvironment(env string) ([]byte, error) {
	switch env {
	case "dev", "development":
		return developmentConfig, nil
	case "test", "testing":
		return testingConfig, nil
	case "prod", "production":
		return productionConfig, nil
	default:
		return nil, fmt.Errorf("没有 %s 环境的内置配置", env)
	}
}
