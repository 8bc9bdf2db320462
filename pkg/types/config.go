// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径
	Version *string `json:"version,omitempty"`  // 应用版本

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty"`

	// 出资方（托管方）配置 - 对应配置文件中的 contributor 字段
	Contributor *UserContributorConfig `json:"contributor,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// 存储配置
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// 缓存配置
	Cache *UserCacheConfig `json:"cache,omitempty"`

	// 事件总线配置
	Event *UserEventConfig `json:"event,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 出站消息Redis中继配置
	Relay *UserRelayConfig `json:"relay,omitempty"`
}

// UserContributorConfig 用户出资方配置
// 对应配置文件中的 contributor 字段
type UserContributorConfig struct {
	ChainID          *uint16 `json:"chain_id,omitempty"`           // 本链ID
	ConductorChainID *uint16 `json:"conductor_chain_id,omitempty"` // 指挥链ID
	ConductorAddress *string `json:"conductor_address,omitempty"`  // 指挥合约地址（32字节十六进制）
	VaultOverdraft   *bool   `json:"vault_overdraft,omitempty"`    // 开发金库：是否允许任意地址透支（仅dev）
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用HTTP服务（默认true）
	HTTPHost    *string `json:"http_host,omitempty"`    // HTTP监听地址
	HTTPPort    *int    `json:"http_port,omitempty"`    // HTTP监听端口
	EnableDebug *bool   `json:"enable_debug,omitempty"` // gin调试模式
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot   *string `json:"data_root,omitempty"`   // 数据根目录（data_root）
	InMemory   *bool   `json:"in_memory,omitempty"`   // 纯内存模式（测试/演示）
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 同步写入
}

// UserCacheConfig 用户缓存配置
type UserCacheConfig struct {
	Enabled    *bool   `json:"enabled,omitempty"`     // 是否启用销售视图缓存
	LifeWindow *string `json:"life_window,omitempty"` // 缓存条目存活时间（如 "10m"）
	MaxSizeMB  *int    `json:"max_size_mb,omitempty"` // 缓存上限（MB）
}

// UserEventConfig 用户事件配置
type UserEventConfig struct {
	Enabled    *bool `json:"enabled,omitempty"`     // 是否启用事件总线
	BufferSize *int  `json:"buffer_size,omitempty"` // 出站消息缓冲区大小
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
	Console  *bool   `json:"console,omitempty"`   // 写文件时是否同时输出到控制台
	Format   *string `json:"format,omitempty"`    // 输出格式：console | json
}

// UserRelayConfig 用户出站中继配置
type UserRelayConfig struct {
	Enabled  *bool   `json:"enabled,omitempty"`   // 是否启用Redis中继
	Addr     *string `json:"addr,omitempty"`      // Redis地址
	Password *string `json:"password,omitempty"`  // Redis密码
	DB       *int    `json:"db,omitempty"`        // 数据库编号
	Stream   *string `json:"stream,omitempty"`    // Stream键
	MaxLen   *int64  `json:"max_len,omitempty"`   // Stream长度上限
	PoolSize *int    `json:"pool_size,omitempty"` // 连接池大小
	Timeout  *string `json:"timeout,omitempty"`   // 写入超时（如 "5s"）
}
