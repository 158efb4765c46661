package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server/config"
	"github.com/dmitrijs2005/eventportal/internal/server/notify"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	migrateErr error
	migrated   bool
	closed     bool
}

func (f *fakeStore) RunMigrations(context.Context) error {
	f.migrated = true
	return f.migrateErr
}
func (f *fakeStore) Accounts() accounts.Repository { return nil }
func (f *fakeStore) Events() events.Repository     { return nil }
func (f *fakeStore) Ping(context.Context) error    { return nil }
func (f *fakeStore) Close(context.Context) error {
	f.closed = true
	return nil
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.Notifier = config.NotifierLog
	c.LogLevel = "error"
	return c
}

func stubStore(t *testing.T, store *fakeStore, err error) {
	t.Helper()
	orig := openStore
	t.Cleanup(func() { openStore = orig })
	openStore = func(context.Context, *config.Config) (repomanager.RepositoryManager, error) {
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func TestNewApp_Success(t *testing.T) {
	store := &fakeStore{}
	stubStore(t, store, nil)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.True(t, store.migrated)
	assert.IsType(t, &notify.LogSender{}, app.sender)
	assert.NotNil(t, app.accountService)
	assert.NotNil(t, app.eventService)
}

func TestNewApp_Errors(t *testing.T) {
	bad := testConfig()
	bad.StoreDriver = "sqlite"
	_, err := NewApp(context.Background(), bad)
	assert.ErrorContains(t, err, "config")

	stubStore(t, nil, errors.New("refused"))
	_, err = NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "db init error")

	store := &fakeStore{migrateErr: errors.New("dirty")}
	stubStore(t, store, nil)
	_, err = NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "migrations")
	assert.True(t, store.closed)
}

func TestNewSender(t *testing.T) {
	c := testConfig()

	s, err := newSender(c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.LogSender{}, s)

	c.Notifier = config.NotifierSMTP
	s, err = newSender(c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.SMTPSender{}, s)

	orig := dialQueueSender
	t.Cleanup(func() { dialQueueSender = orig })
	var gotURL, gotExchange string
	dialQueueSender = func(url, exchange string) (notify.Sender, error) {
		gotURL, gotExchange = url, exchange
		return nil, errors.New("no broker")
	}
	c.Notifier = config.NotifierQueue
	_, err = newSender(c, logging.Nop{})
	assert.Error(t, err)
	assert.Equal(t, c.AMQPURL, gotURL)
	assert.Equal(t, "portal.events", gotExchange)
}

func TestSMTPConfig_FromFallsBackToUsername(t *testing.T) {
	c := testConfig()
	c.SMTPUsername = "club@example.com"
	c.SMTPPassword = "app-pass"

	sc := SMTPConfig(c)
	assert.False(t, sc.Insecure)
	assert.Equal(t, "smtp.gmail.com", sc.Host)
	assert.Equal(t, 587, sc.Port)
	assert.Equal(t, "club@example.com", sc.From)
	assert.Equal(t, "app-pass", sc.Password)

	c.SMTPFrom = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", SMTPConfig(c).From)
}

func TestSMTPConfig_Insecure(t *testing.T) {
	c := testConfig()
	c.SMTPHost, c.SMTPPort, c.SMTPInsecure = "localhost", 1025, true

	sc := SMTPConfig(c)
	assert.True(t, sc.Insecure)
	assert.Equal(t, 1025, sc.Port)
}

func TestRun_StopsAndClosesStore(t *testing.T) {
	store := &fakeStore{}
	stubStore(t, store, nil)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
	assert.True(t, store.closed)
}
