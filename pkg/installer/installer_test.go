package installer

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/telekom/logmail/pkg/config"
	"github.com/telekom/logmail/pkg/logsink"
	"github.com/telekom/logmail/pkg/mailhandler"
)

type sentMail struct {
	Subject string
	Body    string
	To      []string
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeTransport) Send(_ string, to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Subject: subject, Body: body, To: to})
	return f.err
}

func (f *fakeTransport) GetHost() string { return "fake" }
func (f *fakeTransport) GetPort() int    { return 0 }

func (f *fakeTransport) Sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

func ordersParams() config.MapParams {
	return config.MapParams{
		config.ParamApplicationName: "Orders",
		config.ParamSender:          "noreply@orders.example",
		config.ParamRecipient:       "ops@orders.example oncall@orders.example",
		config.ParamMinLevel:        "WARNING",
	}
}

func TestOnStartInstallsHandlerAndAnnouncesIt(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	inst := New(ordersParams(), hub, transport)

	require.NoError(t, inst.OnStart())
	assert.True(t, inst.Started())
	assert.Equal(t, 1, hub.Len())
	require.NotNil(t, inst.Handler())

	sent := transport.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "[Orders] Logger handler registering event", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "MailHandler registered")
	assert.Equal(t, []string{"ops@orders.example", "oncall@orders.example"}, sent[0].To)
}

func TestInstalledHandlerForwardsProcessLogs(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	inst := New(ordersParams(), hub, transport)
	require.NoError(t, inst.OnStart())

	logger := zap.New(hub).Named("com.orders.Worker")
	logger.Error("disk full")
	logger.Info("order accepted")

	sent := transport.Sent()
	require.Len(t, sent, 2, "registration notice plus one alert")
	assert.Equal(t, "[Orders] Error event logged", sent[1].Subject)
	assert.Contains(t, sent[1].Body, "Message: disk full")
}

func TestOnStopAnnouncesAndDetaches(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	inst := New(ordersParams(), hub, transport)
	require.NoError(t, inst.OnStart())

	inst.OnStop()
	assert.False(t, inst.Started())
	assert.Nil(t, inst.Handler())
	assert.Equal(t, 0, hub.Len())

	sent := transport.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "[Orders] Logger handler registering event", sent[1].Subject)
	assert.Contains(t, sent[1].Body, "MailHandler unregistered")

	zap.New(hub).Error("after shutdown")
	assert.Len(t, transport.Sent(), 2, "detached handler receives nothing")

	inst.OnStop()
	assert.Len(t, transport.Sent(), 2, "second OnStop is a no-op")
}

func TestOnStopBeforeStartIsNoOp(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	New(ordersParams(), hub, transport).OnStop()
	assert.Empty(t, transport.Sent())
}

func TestOnStartTwice(t *testing.T) {
	hub := logsink.NewHub()
	inst := New(ordersParams(), hub, &fakeTransport{})
	require.NoError(t, inst.OnStart())
	assert.ErrorIs(t, inst.OnStart(), ErrAlreadyStarted)
	assert.Equal(t, 1, hub.Len())
}

func TestOnStartConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p config.MapParams)
	}{
		{name: "empty recipient list", mutate: func(p config.MapParams) { p[config.ParamRecipient] = "" }},
		{name: "missing application name", mutate: func(p config.MapParams) { delete(p, config.ParamApplicationName) }},
		{name: "missing sender", mutate: func(p config.MapParams) { delete(p, config.ParamSender) }},
		{name: "malformed recipient", mutate: func(p config.MapParams) { p[config.ParamRecipient] = "ops@orders.example not-an-address" }},
		{name: "unknown severity", mutate: func(p config.MapParams) { p[config.ParamMinLevel] = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ordersParams()
			tt.mutate(params)
			hub := logsink.NewHub()
			transport := &fakeTransport{}
			inst := New(params, hub, transport)

			err := inst.OnStart()
			var cerr *mailhandler.ConfigurationError
			require.True(t, errors.As(err, &cerr), "expected *ConfigurationError, got %T: %v", err, err)
			assert.False(t, inst.Started())
			assert.Nil(t, inst.Handler())
			assert.Equal(t, 0, hub.Len())
			assert.Empty(t, transport.Sent())
		})
	}
}

func TestDeliveryFailureGoesToFallbackOnly(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{err: errors.New("connection refused")}

	fallbackCore, fallbackLogs := observer.New(zap.DebugLevel)
	inst := New(ordersParams(), hub, transport,
		WithFallbackLogger(zap.New(fallbackCore).Sugar()))

	require.NoError(t, inst.OnStart())
	zap.New(hub).Error("disk full")

	assert.Len(t, transport.Sent(), 2, "no notification about the failed notification")
	assert.Equal(t, 2, fallbackLogs.FilterMessage("Can't forward log record to recipients").Len())
}

func TestDeliveryFailureDefaultsToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = stderr })

	hub := logsink.NewHub()
	transport := &fakeTransport{err: errors.New("connection refused")}
	inst := New(ordersParams(), hub, transport)
	os.Stderr = stderr

	require.NoError(t, inst.OnStart())
	zap.New(hub).Error("disk full")
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, transport.Sent(), 2)
	assert.Contains(t, string(out), "Can't forward log record to recipients")
	assert.Contains(t, string(out), `"logger":"fallback"`)
	assert.Contains(t, string(out), "connection refused")
}

// blockingTransport holds every Send until release is closed.
type blockingTransport struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingTransport) Send(string, []string, string, string) error {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return nil
}

func (b *blockingTransport) GetHost() string { return "blocking" }
func (b *blockingTransport) GetPort() int    { return 0 }

func TestStartedDoesNotWaitForDelivery(t *testing.T) {
	transport := &blockingTransport{entered: make(chan struct{}), release: make(chan struct{})}
	inst := New(ordersParams(), logsink.NewHub(), transport)

	startErr := make(chan error, 1)
	go func() { startErr <- inst.OnStart() }()
	<-transport.entered

	started := make(chan bool, 1)
	go func() { started <- inst.Started() }()
	select {
	case ok := <-started:
		assert.True(t, ok, "handler is installed before the registration notice goes out")
	case <-time.After(2 * time.Second):
		t.Fatal("Started blocked while the registration notice was being delivered")
	}

	close(transport.release)
	require.NoError(t, <-startErr)
	inst.OnStop()
	assert.False(t, inst.Started())
}

func TestInstallerLoggerTeedWithHub(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	params := ordersParams()
	params[config.ParamMinLevel] = "FINEST"

	inst := New(params, hub, transport, WithLogger(zap.New(hub).Sugar()))
	require.NoError(t, inst.OnStart())

	// the registration notice takes the alert path at this threshold, and the
	// installer's info line follows; its debug line precedes the subscription
	sent := transport.Sent()
	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.Equal(t, "[Orders] Error event logged", m.Subject)
	}
}

func TestWithClock(t *testing.T) {
	hub := logsink.NewHub()
	capture := &captureHandler{}
	hub.Subscribe(capture)

	at := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	inst := New(ordersParams(), hub, &fakeTransport{}, WithClock(func() time.Time { return at }))
	require.NoError(t, inst.OnStart())

	require.NotEmpty(t, capture.events)
	assert.Equal(t, at, capture.events[0].Time)
	assert.Equal(t, RegisteredMessage, capture.events[0].Message)
}

func TestLogr(t *testing.T) {
	hub := logsink.NewHub()
	transport := &fakeTransport{}
	inst := New(ordersParams(), hub, transport)
	require.NoError(t, inst.OnStart())

	Logr(zap.New(hub).Named("controller")).Error(errors.New("reconcile failed"), "cannot sync")

	sent := transport.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Body, "Message: cannot sync")
	assert.Contains(t, sent[1].Body, "Stacktrace:\nreconcile failed")
}
