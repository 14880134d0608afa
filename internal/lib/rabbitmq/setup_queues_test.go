package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAlertQueues(t *testing.T) {
	queues := GetAlertQueues()

	assert.Len(t, queues, 1)
	assert.Equal(t, "alert.negative-review", queues[0].QueueName)
	assert.Equal(t, NegativeReviewKey, queues[0].RoutingKey)
}
