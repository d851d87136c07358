package activity

import (
	"os"

	"gopkg.in/yaml.v3"

	"storefront-console/internal/app"
)

type Config struct {
	CfgDB        app.ConfigDB `yaml:"db"`
	MaxOpenConns int          `yaml:"max_open_conns"`
	Kafka        ConfigKafka  `yaml:"kafka"`
	ServerPort   string       `yaml:"srv_port"`
}

type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

func NewConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8082"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "console-events"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "activity-group"
	}

	return &cfg, nil
}
