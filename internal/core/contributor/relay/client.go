package relay

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	relayconfig "github.com/weisyn/contributor/internal/config/relay"
)

// streamClient 中继所需的最小Redis能力，便于测试替换
type streamClient interface {
	Ping(ctx context.Context) error
	XAdd(ctx context.Context, stream string, maxLen int64, values map[string]interface{}) (string, error)
	Close() error
}

// goRedisClient 基于 go-redis 的 streamClient 实现
type goRedisClient struct {
	client *redis.Client
}

var _ streamClient = (*goRedisClient)(nil)

// newGoRedisClient 按配置创建 go-redis 客户端（不做连通性检查）
func newGoRedisClient(opts *relayconfig.RelayOptions) (*goRedisClient, error) {
	if opts == nil {
		return nil, fmt.Errorf("relay config cannot be nil")
	}
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})
	return &goRedisClient{client: client}, nil
}

func (c *goRedisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// XAdd 追加一条Stream记录；maxLen>0 时按近似长度裁剪
func (c *goRedisClient) XAdd(ctx context.Context, stream string, maxLen int64, values map[string]interface{}) (string, error) {
	args := &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}
	if maxLen > 0 {
		args.MaxLen = maxLen
		args.Approx = true
	}
	return c.client.XAdd(ctx, args).Result()
}

func (c *goRedisClient) Close() error {
	return c.client.Close()
}
