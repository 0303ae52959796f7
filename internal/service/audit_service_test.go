package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/signin-labs/account-service/internal/events"
	"github.com/signin-labs/account-service/internal/observability"
)

func TestAuditService_RecordsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	dispatcher := events.NewInMemoryDispatcher()

	NewAuditService(dispatcher, zap.New(core), metrics).RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, "sub-1", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserLoggedIn, "sub-1", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserLoggedOut, "sub-1", nil)))

	entries := logs.FilterMessage("auth event").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "user_registered", entries[0].ContextMap()["event_type"])
	assert.Equal(t, "sub-1", entries[2].ContextMap()["subject_id"])

	count, err := testutil.GatherAndCount(reg, "account_auth_events_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
