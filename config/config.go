package config

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 서버 설정
	ServerPort  string `env:"SERVER_PORT" envDefault:"8090"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"geultto-challenge-bot"`

	// 데이터 디렉토리: JSON 문서 3개 (checkins / reset_hours / pending_resets)
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// 보류중인 초기화 시간 변경을 승격하는 스윕 주기
	ResetSweepInterval time.Duration `env:"RESET_SWEEP_INTERVAL" envDefault:"10m"`

	// Snowflake ID 생성기 설정
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 로그 설정
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
}

func init() {

	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.DataDir == "" {
		log.Fatal("DATA_DIR must not be empty")
	}

	if Cfg.ResetSweepInterval < time.Minute {
		log.Printf("WARN: RESET_SWEEP_INTERVAL %s is below 1m, clamping", Cfg.ResetSweepInterval)
		Cfg.ResetSweepInterval = time.Minute
	}
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
