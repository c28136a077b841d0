package natsbroker_test

import (
	"testing"

	natsbroker "github.com/Egor213/CallTrack/internal/broker/nats"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "calltrack.logs", natsbroker.Subject("calltrack.logs", ""))
	assert.Equal(t, "calltrack.logs.billing", natsbroker.Subject("calltrack.logs", "billing"))
	assert.Equal(t, "calltrack.logs.api_v1_orders_", natsbroker.Subject("calltrack.logs", "api.v1 orders*"))
}
