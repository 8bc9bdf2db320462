package event

const (
	// defaultEnabled 默认启用事件系统，出站消息依赖事件总线投递
	defaultEnabled = true

	// defaultBufferSize 出站消息缓冲区大小
	defaultBufferSize = 256
)
