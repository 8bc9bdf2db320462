package cache

import "time"

const (
	defaultEnabled    = true
	defaultLifeWindow = 10 * time.Minute
	defaultMaxSizeMB  = 64
	defaultShards     = 64
)
