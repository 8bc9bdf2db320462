// Package contributor 出资方（托管方）核心配置
//
// 指挥链身份与本链ID只在这里读取，然后显式传给校验器与构建器，
// 核心组件不读取任何全局状态。
package contributor

import (
	"errors"
	"fmt"

	configtypes "github.com/weisyn/contributor/pkg/types"
)

// ErrConductorNotConfigured 未配置指挥合约地址
var ErrConductorNotConfigured = errors.New("未配置指挥合约地址")

// ContributorOptions 出资方配置选项
type ContributorOptions struct {
	ChainID          configtypes.ChainID   `json:"chain_id"`           // 本链ID
	ConductorChainID configtypes.ChainID   `json:"conductor_chain_id"` // 指挥链ID
	ConductorAddress configtypes.Address32 `json:"conductor_address"`  // 指挥合约地址
	VaultOverdraft   bool                  `json:"vault_overdraft"`    // 开发金库允许透支
}

// Config 出资方配置实现
type Config struct {
	options *ContributorOptions
	err     error
}

// New 创建出资方配置实现
func New(userConfig interface{}) *Config {
	options := &ContributorOptions{
		ChainID:          defaultChainID,
		ConductorChainID: defaultConductorChainID,
	}
	cfg := &Config{options: options}

	if user, ok := userConfig.(*configtypes.UserContributorConfig); ok && user != nil {
		if user.ChainID != nil {
			options.ChainID = configtypes.ChainID(*user.ChainID)
		}
		if user.ConductorChainID != nil {
			options.ConductorChainID = configtypes.ChainID(*user.ConductorChainID)
		}
		if user.ConductorAddress != nil {
			addr, err := configtypes.ParseAddress32(*user.ConductorAddress)
			if err != nil {
				cfg.err = fmt.Errorf("解析指挥合约地址失败: %w", err)
			} else {
				options.ConductorAddress = addr
			}
		}
		if user.VaultOverdraft != nil {
			options.VaultOverdraft = *user.VaultOverdraft
		}
	}

	return cfg
}

// NewFromOptions 从ContributorOptions创建配置实现
func NewFromOptions(options *ContributorOptions) *Config {
	return &Config{options: options}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *ContributorOptions {
	return c.options
}

// Validate 校验配置是否可用于启动
func (c *Config) Validate() error {
	if c.err != nil {
		return c.err
	}
	if c.options.ConductorAddress.IsZero() {
		return ErrConductorNotConfigured
	}
	return nil
}
