package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" required:"true"`
	Port            string `envconfig:"CLICKHOUSE_PORT" required:"true"`
	Database        string `envconfig:"CLICKHOUSE_DB" required:"true"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"CONSUMER_BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"CONSUMER_BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

// Attribution controls the sampling and iteration limits of the
// attribution engine.
type Attribution struct {
	SampleUsers       int `envconfig:"ATTRIBUTION_SAMPLE_USERS" default:"1000"`
	ShapleyJourneys   int `envconfig:"ATTRIBUTION_SHAPLEY_JOURNEYS" default:"100"`
	MaxTouchpoints    int `envconfig:"ATTRIBUTION_MAX_TOUCHPOINTS" default:"12"`
	MarkovSampleUsers int `envconfig:"ATTRIBUTION_MARKOV_SAMPLE_USERS" default:"5000"`
	MarkovMaxSteps    int `envconfig:"ATTRIBUTION_MARKOV_MAX_STEPS" default:"10"`
	BotEventThreshold int `envconfig:"ATTRIBUTION_BOT_EVENT_THRESHOLD" default:"1000"`
}

type Config struct {
	Service     Service
	SQS         SQS
	ClickHouse  ClickHouse
	Consumer    Consumer
	Attribution Attribution
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
