package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB         ConfigDB      `yaml:"db"`
	CfgES         ConfigES      `yaml:"es"`
	CfgKafka      ConfigKafka   `yaml:"kafka"`
	ETLInterval   time.Duration `yaml:"etl_index_interval"`
	MaxOpenConns  int           `yaml:"max_open_conns"`
	RedisAddr     string        `yaml:"redis_addr"`
	CartKeyPrefix string        `yaml:"cart_key_prefix"`
	ServerPort    string        `yaml:"srv_port"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

type ConfigES struct {
	Index string `yaml:"index"`
}

type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
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

	return &c, nil
}
