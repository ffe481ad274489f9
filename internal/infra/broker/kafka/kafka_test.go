package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerConfigIsValid(t *testing.T) {
	cfg := producerConfig(nil)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Idempotent)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
}

func TestProducerConfigKeepsCallerSettings(t *testing.T) {
	in := sarama.NewConfig()
	in.ClientID = "ecolodge"
	cfg := producerConfig(in)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ecolodge", cfg.ClientID)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
}

func TestConsumerConfigIsValid(t *testing.T) {
	cfg := consumerConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
}
