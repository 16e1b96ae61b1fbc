package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// configName is a variable so tests can point LoadConfig at a fixture.
var configName = "server"

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("dcops_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName(configName)
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = AppConfig{
			General: GeneralConfig{
				LogLevel: viper.GetString("general.log_level"),
			},
			Postgresql: PostgresqlConfig{
				URL:                   viper.GetString("database.url"),
				DSN:                   viper.GetString("database.dsn"),
				MigrationReplacements: viper.GetStringMapString("database.migration_replacements"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("kafka.brokers"),
				Group:   viper.GetString("kafka.group"),
			},
			WorkOrder: WorkOrderConfig{
				SLA:                  viper.GetStringMapString("work_order.sla"),
				OverdueSweepInterval: viper.GetDuration("work_order.overdue_sweep_interval"),
			},
			Ticket: TicketConfig{
				BaseURL:    viper.GetString("ticket.base_url"),
				AppID:      viper.GetString("ticket.app_id"),
				Username:   viper.GetString("ticket.username"),
				Timeout:    viper.GetDuration("ticket.timeout"),
				ProcessIDs: viper.GetStringMapString("ticket.process_ids"),
			},
		}
	})

	return configInstance
}

type AppConfig struct {
	General    GeneralConfig
	Kafka      KafkaConfig
	Postgresql PostgresqlConfig
	WorkOrder  WorkOrderConfig
	Ticket     TicketConfig
}

type GeneralConfig struct {
	LogLevel string
}

type KafkaConfig struct {
	Brokers []string
	Group   string
}

type PostgresqlConfig struct {
	URL                   string
	DSN                   string
	MigrationReplacements map[string]string
}

// WorkOrderConfig tunes the lifecycle engine. SLA maps an operation type to a
// duration string understood by time.ParseDuration, e.g. "24h".
type WorkOrderConfig struct {
	SLA                  map[string]string
	OverdueSweepInterval time.Duration
}

type TicketConfig struct {
	BaseURL    string
	AppID      string
	Username   string
	Timeout    time.Duration
	ProcessIDs map[string]string
}
