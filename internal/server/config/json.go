package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/eventportal/internal/flagx"
	"github.com/dmitrijs2005/eventportal/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted. Keys
// that are absent keep the value from the previous layer.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	CORSOrigins     *string         `json:"cors_origins"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	LogLevel        *string         `json:"log_level"`

	StoreDriver   *string `json:"store_driver"`
	DatabaseDSN   *string `json:"database_dsn"`
	MongoURI      *string `json:"mongo_uri"`
	MongoDatabase *string `json:"mongo_database"`

	BcryptCost *int `json:"bcrypt_cost"`

	Notifier      *string         `json:"notifier"`
	NotifyTimeout *timex.Duration `json:"notify_timeout"`
	SMTPHost      *string         `json:"smtp_host"`
	SMTPPort      *int            `json:"smtp_port"`
	SMTPUsername  *string         `json:"smtp_username"`
	SMTPPassword  *string         `json:"smtp_password"`
	SMTPFrom      *string         `json:"smtp_from"`
	SMTPInsecure  *bool           `json:"smtp_insecure"`

	AMQPURL      *string `json:"amqp_url"`
	AMQPExchange *string `json:"amqp_exchange"`
	AMQPQueue    *string `json:"amqp_queue"`

	S3RootUser      *string `json:"s3_root_user"`
	S3RootPassword  *string `json:"s3_root_password"`
	S3Bucket        *string `json:"s3_bucket"`
	S3Region        *string `json:"s3_region"`
	S3BaseEndpoint  *string `json:"s3_base_endpoint"`
	S3PublicBaseURL *string `json:"s3_public_base_url"`
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.CORSOrigins, c.CORSOrigins)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setIf(&config.LogLevel, c.LogLevel)

	setIf(&config.StoreDriver, c.StoreDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.MongoURI, c.MongoURI)
	setIf(&config.MongoDatabase, c.MongoDatabase)

	setIf(&config.BcryptCost, c.BcryptCost)

	setIf(&config.Notifier, c.Notifier)
	if c.NotifyTimeout != nil {
		config.NotifyTimeout = c.NotifyTimeout.Duration
	}
	setIf(&config.SMTPHost, c.SMTPHost)
	setIf(&config.SMTPPort, c.SMTPPort)
	setIf(&config.SMTPUsername, c.SMTPUsername)
	setIf(&config.SMTPPassword, c.SMTPPassword)
	setIf(&config.SMTPFrom, c.SMTPFrom)
	setIf(&config.SMTPInsecure, c.SMTPInsecure)

	setIf(&config.AMQPURL, c.AMQPURL)
	setIf(&config.AMQPExchange, c.AMQPExchange)
	setIf(&config.AMQPQueue, c.AMQPQueue)

	setIf(&config.S3RootUser, c.S3RootUser)
	setIf(&config.S3RootPassword, c.S3RootPassword)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIf(&config.S3PublicBaseURL, c.S3PublicBaseURL)
}
