package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Payroll   PayrollConfig   `yaml:"payroll"`
	Tasks     TasksConfig     `yaml:"tasks"`
	Inventory InventoryConfig `yaml:"inventory"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	LoginRateLimit  int           `yaml:"login_rate_limit" env:"SERVER_LOGIN_RATE_LIMIT" env-default:"30"`
}

// StorageConfig holds flat-file store settings. Every collection lives in
// its own JSON document under DataDir; LockWait bounds how long a writer
// waits for the per-file advisory lock before failing the request.
type StorageConfig struct {
	DataDir  string        `yaml:"data_dir"  env:"STORAGE_DATA_DIR"  env-default:"./data"`
	LockWait time.Duration `yaml:"lock_wait" env:"STORAGE_LOCK_WAIT" env-default:"5s"`
}

// AuthConfig holds session settings.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"  env:"AUTH_JWT_SECRET"  env-required:"true"`
	JWTIssuer  string        `yaml:"jwt_issuer"  env:"AUTH_JWT_ISSUER"  env-default:"storetrack"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"AUTH_SESSION_TTL" env-default:"0"`
	CookieName string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"session"`
}

// PayrollConfig holds pay derivation settings.
type PayrollConfig struct {
	HourlyRate float64 `yaml:"hourly_rate" env:"PAYROLL_HOURLY_RATE" env-default:"15.0"`
}

// TasksConfig holds task scheduling settings.
type TasksConfig struct {
	OverdueAfter time.Duration `yaml:"overdue_after" env:"TASKS_OVERDUE_AFTER" env-default:"24h"`
}

// InventoryConfig holds inventory and borrow workflow settings.
type InventoryConfig struct {
	LowStockThreshold int           `yaml:"low_stock_threshold" env:"INVENTORY_LOW_STOCK_THRESHOLD" env-default:"5"`
	BorrowOverdue     time.Duration `yaml:"borrow_overdue"      env:"INVENTORY_BORROW_OVERDUE"      env-default:"168h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
