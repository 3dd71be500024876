package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresBrokers(t *testing.T) {
	_, err := NewClient(nil, "provider-registry.audit")
	assert.Error(t, err)
}

func TestPublishEmptyBatchIsNoop(t *testing.T) {
	client, err := NewClient([]string{"127.0.0.1:1"}, "provider-registry.audit")
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, NewProducer(client, "provider-registry.audit").Publish(context.Background(), nil))
}
