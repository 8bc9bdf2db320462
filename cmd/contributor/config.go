package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weisyn/contributor/configs"
)

var configEnv string

// configCmd 输出内置示例配置
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "输出内置的示例配置（可重定向为配置文件）",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd.OutOrStdout(), configEnv)
	},
}

func init() {
	configCmd.Flags().StringVar(&configEnv, "env", "dev", "运行环境：dev | test | prod")
}

func runConfig(w io.Writer, env string) error {
	raw, err := configs.ForEnvironment(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(raw))
	return err
}
