package params

import "time"

const (
	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	SessionKeyPrefix = "s:" // issued auth sessions, keyed by session id

	RecordTokenExpiration = 7 * 24 * time.Hour // default lifetime of record auth tokens
	AdminTokenExpiration  = 24 * time.Hour     // default lifetime of admin tokens

	HealthCheckServerAddr = ":3001" // health check server address
)
