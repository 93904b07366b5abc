// this package provides a centralized loader for runtime configuration
// used by the coordinator. It reads values from environment variables
// via struct tags, applies defaults inline, and validates the result.
// Kubernetes controller values can override these values.

package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the coordinator process.
type Config struct {
	// Kafka connection settings for the event mirror - list of broker connections
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaClientID string `env:"KAFKA_CLIENT_ID" envDefault:"mafia-room"`

	// RoomEventsTopic is validated and logged at startup. The event
	// mirror does not read it: it always writes to kafka.RoomEventsTopic
	// ("room.events").
	RoomEventsTopic string `env:"ROOM_EVENTS_TOPIC" envDefault:"room.events"`

	KafkaProducerTimeout time.Duration `env:"KAFKA_PRODUCER_TIMEOUT" envDefault:"2s"`

	// Room sizing rules (GameRules)
	ActivePlayersNumber int `env:"ACTIVE_PLAYERS_NUMBER" envDefault:"6"`
	MafiaNumber         int `env:"MAFIA_NUMBER" envDefault:"2"`
	SheriffNumber       int `env:"SHERIFF_NUMBER" envDefault:"1"`

	// VotePhaseTimeout and NightPhaseTimeout bound how long a timed
	// phase runs before the Room auto-advances.
	VotePhaseTimeout  time.Duration `env:"VOTE_PHASE_TIMEOUT" envDefault:"60s"`
	NightPhaseTimeout time.Duration `env:"NIGHT_PHASE_TIMEOUT" envDefault:"60s"`

	// ViewPollInterval is how often a subscription recomputes Room.View.
	ViewPollInterval time.Duration `env:"VIEW_POLL_INTERVAL" envDefault:"500ms"`

	// ListenHost / ListenPort serve the Prometheus /metrics endpoint.
	ListenHost string `env:"LISTEN_HOST" envDefault:"0.0.0.0"`
	ListenPort int    `env:"LISTEN_PORT" envDefault:"8080"`

	// Logging / environment
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"dev"`
}

// LoadConfig reads environment variables into a Config, applying
// defaults declared in the struct tags, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config sanity and returns an error for invalid settings.
func (c *Config) Validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("no kafka brokers configured (KAFKA_BROKERS)")
	}
	if c.KafkaProducerTimeout <= 0 {
		return errors.New("KAFKA_PRODUCER_TIMEOUT must be > 0")
	}
	if c.RoomEventsTopic == "" {
		return errors.New("ROOM_EVENTS_TOPIC must not be empty")
	}
	if c.ActivePlayersNumber <= 2*c.MafiaNumber {
		return errors.New("ACTIVE_PLAYERS_NUMBER must exceed 2x MAFIA_NUMBER")
	}
	if c.SheriffNumber < 0 {
		return errors.New("SHERIFF_NUMBER must be >= 0")
	}
	if c.MafiaNumber+c.SheriffNumber >= c.ActivePlayersNumber {
		return errors.New("MAFIA_NUMBER + SHERIFF_NUMBER must be less than ACTIVE_PLAYERS_NUMBER")
	}
	if c.VotePhaseTimeout <= 0 {
		return errors.New("VOTE_PHASE_TIMEOUT must be > 0")
	}
	if c.NightPhaseTimeout <= 0 {
		return errors.New("NIGHT_PHASE_TIMEOUT must be > 0")
	}
	if c.ViewPollInterval <= 0 {
		return errors.New("VIEW_POLL_INTERVAL must be > 0")
	}
	return nil
}
