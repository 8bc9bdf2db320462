// Package version 构建版本信息
package version

import (
	"fmt"
	"runtime"
)

// 构建时通过 -ldflags "-X" 注入
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown" // RFC3339
	BuildEnv  = "development"
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion 获取版本号
func GetVersion() string {
	return Version
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		BuildEnv:  BuildEnv,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersion 多行版本描述，供 version 子命令输出
func GetFullVersion() string {
	info := GetBuildInfo()
	return fmt.Sprintf("contributor %s\n提交: %s\n构建时间: %s\n构建环境: %s\nGo版本: %s\n平台: %s",
		info.Version, info.GitCommit, info.BuildTime, info.BuildEnv, info.GoVersion, info.Platform)
}
