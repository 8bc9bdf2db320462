package relay

import "time"

const (
	// defaultEnabled 默认不启用Redis中继，出站消息只留在进程内事件总线
	defaultEnabled = false

	defaultAddr     = "127.0.0.1:6379"
	defaultStream   = "contributor:outbound"
	defaultMaxLen   = 100000
	defaultPoolSize = 10
	defaultTimeout  = 5 * time.Second
)
