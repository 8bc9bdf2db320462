// Package utils provides path manipulation utility functions.
package utils

import (
	"os"
	"path/filepath"
)

// GetProjectRoot 获取项目根目录的绝对路径
// 优先读取环境变量，其次向上查找go.mod文件
func GetProjectRoot() string {
	if projectRoot := os.Getenv("CONTRIBUTOR_PROJECT_ROOT"); projectRoot != "" {
		return projectRoot
	}

	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	start := dir

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// 没找到go.mod（例如以二进制方式部署），使用当前工作目录
	return start
}

// ResolveDataPath 解析数据目录路径为绝对路径
// 如果path已经是绝对路径，直接返回
// 如果是相对路径，基于项目根目录解析
func ResolveDataPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(GetProjectRoot(), path)
}

// EnsureDir 确保目录存在，如果不存在则创建
func EnsureDir(path string) error {
	//nolint:gosec // G301: 目录需要用户可读权限，0755 是合理的
	return os.MkdirAll(path, 0755)
}
