package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

type fakeSource struct {
	name    string
	records []types.Procurement
	err     error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Collect(context.Context, int) ([]types.Procurement, error) {
	return f.records, f.err
}

func TestCollectorFansInSourcesInOrder(t *testing.T) {
	c := New(monitoring.NewLogger(),
		fakeSource{name: "first", records: []types.Procurement{{ID: "PT-2024-101"}}},
		fakeSource{name: "second", records: []types.Procurement{{ID: "PT-2024-102"}, {ID: "PT-2024-103"}}},
	)

	records, err := c.Collect(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "PT-2024-101", records[0].ID)
	assert.Equal(t, "PT-2024-102", records[1].ID)
	assert.Equal(t, "PT-2024-103", records[2].ID)
}

func TestCollectorDegradesOnPartialFailure(t *testing.T) {
	c := New(monitoring.NewLogger(),
		fakeSource{name: "broken", err: errors.New("upstream offline")},
		fakeSource{name: "working", records: []types.Procurement{{ID: "PT-2024-101"}}},
	)

	records, err := c.Collect(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCollectorFailsWhenAllSourcesFail(t *testing.T) {
	c := New(monitoring.NewLogger(),
		fakeSource{name: "a", err: errors.New("offline")},
		fakeSource{name: "b", err: errors.New("offline")},
	)

	_, err := c.Collect(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 collection sources failed")
}
