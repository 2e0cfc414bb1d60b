package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/takoapp/tako/params"
)

const (
	DefaultListenAddr    = ":3000"
	DefaultIdentityField = "email"
	DefaultIPsField      = "ips"
)

type MySQLConfig struct {
	Dsn             string `mapstructure:"dsn"`
	TablePrefix     string `mapstructure:"tablePrefix"`
	MaxIdleConns    int    `mapstructure:"maxIdleConns"`
	MaxOpenConns    int    `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime int    `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime int    `mapstructure:"connMaxLifetime"`
}

type RedisConfig struct {
	URL         string `mapstructure:"url"`
	PoolSize    int    `mapstructure:"poolSize"`
	ClusterMode bool   `mapstructure:"clusterMode"`
}

type ClientIPConfig struct {
	ProxyHeader    string   `mapstructure:"proxyHeader"`
	TrustedProxies []string `mapstructure:"trustedProxies"`
}

type TokenConfig struct {
	RecordTokenMaxAge time.Duration `mapstructure:"recordTokenMaxAge"`
	AdminTokenMaxAge  time.Duration `mapstructure:"adminTokenMaxAge"`
}

type BootstrapConfig struct {
	AdminEmail    string `mapstructure:"adminEmail"`
	AdminPassword string `mapstructure:"adminPassword"`
}

type Config struct {
	Debug        bool            `mapstructure:"debug"`
	ListenAddr   string          `mapstructure:"listenAddr"`
	MasterKey    string          `mapstructure:"masterKey"`
	AllowOrigins []string        `mapstructure:"allowOrigins"`
	MySQL        MySQLConfig     `mapstructure:"mysql"`
	Redis        RedisConfig     `mapstructure:"redis"`
	ClientIP     ClientIPConfig  `mapstructure:"clientIP"`
	Token        TokenConfig     `mapstructure:"token"`
	Bootstrap    BootstrapConfig `mapstructure:"bootstrap"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.ClientIP.ProxyHeader == "" {
		c.ClientIP.ProxyHeader = "X-Forwarded-For"
	}
	if c.Token.RecordTokenMaxAge == 0 {
		c.Token.RecordTokenMaxAge = params.RecordTokenExpiration
	}
	if c.Token.AdminTokenMaxAge == 0 {
		c.Token.AdminTokenMaxAge = params.AdminTokenExpiration
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
