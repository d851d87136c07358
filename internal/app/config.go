package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort      = ":8080"
	defaultSessionDuration = 30 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultRedisAddr       = "redis:6379"
	defaultKafkaTopic      = "console-events"
)

type Config struct {
	Backend         ConfigBackend    `yaml:"backend"`
	Redis           ConfigRedis      `yaml:"redis"`
	Kafka           ConfigKafka      `yaml:"kafka"`
	Pagination      ConfigPagination `yaml:"pagination"`
	ServerPort      string           `yaml:"srv_port"`
	SessionDuration time.Duration    `yaml:"session_duration"`
	SweepInterval   time.Duration    `yaml:"sweep_interval"`
}

type ConfigBackend struct {
	BaseURL string `yaml:"base_url"`
	// 0 - без таймаута
	Timeout time.Duration `yaml:"timeout"`
}

type ConfigRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ConfigKafka - пустой список брокеров выключает публикацию событий
type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type ConfigPagination struct {
	ListingsPageSize      int `yaml:"listings_page_size"`
	ListingsEmptyFallback int `yaml:"listings_empty_fallback"`
	OrdersPageSize        int `yaml:"orders_page_size"`
	OrdersEmptyFallback   int `yaml:"orders_empty_fallback"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	c.setDefaults()
	return &c, nil
}

func (c *Config) setDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = defaultServerPort
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = defaultSessionDuration
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = defaultKafkaTopic
	}

	p := &c.Pagination
	if p.ListingsPageSize <= 0 {
		p.ListingsPageSize = 10
	}
	if p.ListingsEmptyFallback <= 0 {
		p.ListingsEmptyFallback = 10
	}
	if p.OrdersPageSize <= 0 {
		p.OrdersPageSize = 5
	}
	if p.OrdersEmptyFallback <= 0 {
		p.OrdersEmptyFallback = 1
	}
}
