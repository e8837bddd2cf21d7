package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRecordsOutcome(t *testing.T) {
	c := &Client{metrics: true}

	c.observe("find")(nil)
	c.observe("find")(errors.New("boom"))

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "docstore_operations_total" {
			found = true
		}
	}
	assert.True(t, found, "operation counter should be registered and populated")
}

func TestObserveDisabledIsNoOp(t *testing.T) {
	c := &Client{metrics: false}

	done := c.observe("count")
	assert.NotPanics(t, func() { done(nil) })
}

func TestMetricsRegistry(t *testing.T) {
	assert.NotNil(t, MetricsRegistry())
}
