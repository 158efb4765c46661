package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.HTTPAddr)
	assert.Equal(t, "*", c.CORSOrigins)
	assert.Equal(t, StorePostgres, c.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "topluluk_event", c.MongoDatabase)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, NotifierSMTP, c.Notifier)
	assert.Equal(t, "smtp.gmail.com", c.SMTPHost)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Empty(t, c.SMTPUsername, "no mail credentials are baked in")
	assert.Empty(t, c.SMTPPassword, "no mail credentials are baked in")
	assert.Equal(t, 10*time.Second, c.NotifyTimeout)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "event-images", c.S3Bucket)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestSender(t *testing.T) {
	c := Config{SMTPUsername: "portal@example.com"}
	assert.Equal(t, "portal@example.com", c.Sender())

	c.SMTPFrom = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", c.Sender())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "mongo ok", mutate: func(c *Config) { c.StoreDriver = StoreMongo }},
		{name: "queue ok", mutate: func(c *Config) { c.Notifier = NotifierQueue }},
		{name: "unknown store", mutate: func(c *Config) { c.StoreDriver = "mysql" }, wantErr: "unknown store driver"},
		{name: "unknown notifier", mutate: func(c *Config) { c.Notifier = "sms" }, wantErr: "unknown notifier"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "bcrypt cost"},
		{name: "cost too high", mutate: func(c *Config) { c.BcryptCost = 40 }, wantErr: "bcrypt cost"},
		{name: "empty addr", mutate: func(c *Config) { c.HTTPAddr = "" }, wantErr: "http address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
