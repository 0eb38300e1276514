package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/worker"
)

func TestNotificationService_UnhandledError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		AdminEmail: "ops@example.com",
	})
	worker.StartNotificationWorker(svc)

	event := events.NewEvent(events.EventUnhandledError, "", events.UnhandledErrorPayload{
		RequestID: "req-1",
		Path:      "/api/authentication/login",
		Method:    "POST",
		Error:     "connection reset",
	})
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	alerts := logs.FilterMessage("UnhandledError").All()
	require.Len(t, alerts, 1)
	fields := alerts[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "connection reset", fields["error"])

	require.Eventually(t, func() bool {
		return logs.FilterMessage("sendAdminEmailStub").Len() == 1
	}, time.Second, 10*time.Millisecond)
	mails := logs.FilterMessage("sendAdminEmailStub").All()
	assert.Equal(t, "ops@example.com", mails[0].ContextMap()["to"])
}

func TestNotificationService_NoAdminAddress(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.NewEvent(events.EventUnhandledError, "", events.UnhandledErrorPayload{Error: "boom"})))

	assert.Equal(t, 1, logs.FilterMessage("UnhandledError").Len())
	assert.Zero(t, logs.FilterMessage("sendAdminEmailStub").Len())
}

func TestNotificationService_UserRegistered(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.NewEvent(events.EventUserRegistered, "bob", events.UserRegisteredPayload{UserID: 7, Username: "bob"})))

	entries := logs.FilterMessage("UserRegistered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].ContextMap()["actor"])
}

func TestNotificationService_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNotificationService(nil, nil, config.NotificationConfig{}).RegisterHandlers()
	})
}
