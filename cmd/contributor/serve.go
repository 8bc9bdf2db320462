package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/contributor/internal/app"
)

var serveFlags struct {
	noAPI bool
}

// serveCmd 启动节点
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动出资方节点",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []app.Option{app.WithConfigFile(globalFlags.ConfigPath)}
		if serveFlags.noAPI {
			opts = append(opts, app.WithoutAPI())
		}

		running, err := app.Start(opts...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "出资方节点已启动，按 Ctrl+C 停止")
		running.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.noAPI, "no-api", false, "不启动HTTP接口")
}
