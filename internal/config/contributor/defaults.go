package contributor

import configtypes "github.com/weisyn/contributor/pkg/types"

const (
	// defaultChainID 本链默认ID（开发网）
	defaultChainID configtypes.ChainID = 2

	// defaultConductorChainID 指挥链默认ID（开发网）
	defaultConductorChainID configtypes.ChainID = 1
)
