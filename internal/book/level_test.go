package book

import (
	"testing"

	"auction/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestLevel_AppendTracksTotalQty(t *testing.T) {
	lvl := NewLevel(100.0)
	lvl.Append(&common.Order{ID: 1, RemainingQty: 10})
	lvl.Append(&common.Order{ID: 2, RemainingQty: 5})

	assert.Equal(t, uint32(15), lvl.TotalQty)
	assert.Equal(t, uint64(1), lvl.Head().ID)
}

func TestLevel_HeadConsumePartialLeavesHeadResting(t *testing.T) {
	lvl := NewLevel(100.0)
	lvl.Append(&common.Order{ID: 1, RemainingQty: 10})

	consumed := lvl.HeadConsume(4)
	assert.Equal(t, uint64(1), consumed.ID)
	assert.Equal(t, uint32(6), consumed.RemainingQty)
	assert.Equal(t, uint32(6), lvl.TotalQty)
	assert.False(t, lvl.IsEmpty())
}

func TestLevel_HeadConsumeFullPopsHead(t *testing.T) {
	lvl := NewLevel(100.0)
	lvl.Append(&common.Order{ID: 1, RemainingQty: 10})
	lvl.Append(&common.Order{ID: 2, RemainingQty: 5})

	lvl.HeadConsume(10)
	assert.Equal(t, uint64(2), lvl.Head().ID)
	assert.Equal(t, uint32(5), lvl.TotalQty)
}

func TestLevel_RemoveByIDMiddleOfQueue(t *testing.T) {
	lvl := NewLevel(100.0)
	lvl.Append(&common.Order{ID: 1, RemainingQty: 10})
	lvl.Append(&common.Order{ID: 2, RemainingQty: 5})
	lvl.Append(&common.Order{ID: 3, RemainingQty: 7})

	ok := lvl.RemoveByID(2)
	assert.True(t, ok)
	assert.Equal(t, uint32(17), lvl.TotalQty)
	assert.Equal(t, []uint64{1, 3}, orderIDs(lvl))
}

func TestLevel_RemoveByIDNotFound(t *testing.T) {
	lvl := NewLevel(100.0)
	lvl.Append(&common.Order{ID: 1, RemainingQty: 10})

	assert.False(t, lvl.RemoveByID(99))
	assert.Equal(t, uint32(10), lvl.TotalQty)
}

func orderIDs(lvl *Level) []uint64 {
	ids := make([]uint64, len(lvl.Orders))
	for i, o := range lvl.Orders {
		ids[i] = o.ID
	}
	return ids
}
