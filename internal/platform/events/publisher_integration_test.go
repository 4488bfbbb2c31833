//go:build integration

package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"ixcbridge/internal/platform/config"
	"ixcbridge/pkg/testutil/containers"
)

func TestPublisher_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.GetManager().GetKafka(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.Kafka{
		Brokers:    []string{broker.Broker},
		AlertTopic: "ixcbridge.test-alerts",
		ClientID:   "ixcbridge-test",
	}
	pub, err := New(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, pub)
	defer pub.Close()

	require.NoError(t, pub.EnsureTopic(ctx, 1, 1))
	// second call hits TopicAlreadyExists and stays quiet
	require.NoError(t, pub.EnsureTopic(ctx, 1, 1))
	require.NoError(t, pub.Publish(ctx, "tenant-1", []byte(`{"alerts":2}`)))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(cfg.AlertTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.NotEmpty(t, records)
	assert.Equal(t, "tenant-1", string(records[0].Key))
	assert.JSONEq(t, `{"alerts":2}`, string(records[0].Value))
}
