package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

func TestClassifyDonor(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.Mode
		rec      domain.InventoryRecord
		maxSales int
		wantOK   bool
		wantQty  int
		wantType string
	}{
		{
			name:     "ND with stock donates everything",
			mode:     domain.ModeConservative,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeND, NetStock: 7, SafetyStock: 100}),
			wantOK:   true,
			wantQty:  7,
			wantType: domain.TransferTypeND,
		},
		{
			name:   "ND without stock is skipped",
			mode:   domain.ModeConservative,
			rec:    mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeND}),
			wantOK: false,
		},
		{
			name:     "mode A caps RF at half of available",
			mode:     domain.ModeConservative,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, NetStock: 20, SafetyStock: 8, LastMonthSold: 3}),
			maxSales: 9,
			wantOK:   true,
			wantQty:  10,
			wantType: domain.TransferTypeRFA,
		},
		{
			name:     "mode A rejects RF at or below safety stock",
			mode:     domain.ModeConservative,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, NetStock: 8, SafetyStock: 8}),
			maxSales: 9,
			wantOK:   false,
		},
		{
			name:     "mode A rejects the article's best seller",
			mode:     domain.ModeConservative,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, NetStock: 20, SafetyStock: 8, LastMonthSold: 9}),
			maxSales: 9,
			wantOK:   false,
		},
		{
			name:     "mode B gates on MOQ and caps at nine tenths",
			mode:     domain.ModeEnhanced,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, NetStock: 20, MOQ: 3, SafetyStock: 15, LastMonthSold: 3}),
			maxSales: 9,
			wantOK:   true,
			wantQty:  17,
			wantType: domain.TransferTypeRFB,
		},
		{
			name: "pending stock widens eligibility but net stock bounds the qty",
			mode: domain.ModeEnhanced,
			rec: mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF,
				NetStock: 5, PendingReceived: 15, MOQ: 8, LastMonthSold: 3}),
			maxSales: 9,
			wantOK:   true,
			wantQty:  5,
			wantType: domain.TransferTypeRFB,
		},
		{
			name:     "mode C waives the gate and the sales check",
			mode:     domain.ModeSuper,
			rec:      mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, NetStock: 20, SafetyStock: 50, LastMonthSold: 9}),
			maxSales: 9,
			wantOK:   true,
			wantQty:  20,
			wantType: domain.TransferTypeRFSuper,
		},
		{
			name:   "mode C still needs net stock on hand",
			mode:   domain.ModeSuper,
			rec:    mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, PendingReceived: 30}),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			cand, ok := classifyDonor(&rec, rulesByMode[tt.mode], tt.maxSales)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantQty, cand.remaining)
			assert.Equal(t, tt.wantType, cand.transferType)
		})
	}
}

func TestClassifyReceiver(t *testing.T) {
	rec := mk(domain.InventoryRecord{Site: "S1", Target: 5})
	rs, ok := classifyReceiver(&rec)
	require.True(t, ok)
	assert.Equal(t, 5, rs.need)

	noTarget := mk(domain.InventoryRecord{Site: "S2"})
	_, ok = classifyReceiver(&noTarget)
	assert.False(t, ok)
}

func TestOrderDonors(t *testing.T) {
	recA := mk(domain.InventoryRecord{Site: "S4", LastMonthSold: 9})
	recB := mk(domain.InventoryRecord{Site: "S2", LastMonthSold: 1})
	recC := mk(domain.InventoryRecord{Site: "S3", LastMonthSold: 1})
	recD := mk(domain.InventoryRecord{Site: "S1", LastMonthSold: 50})

	donors := []transferCandidate{
		{rec: &recA, priority: priorityRF},
		{rec: &recB, priority: priorityRF},
		{rec: &recC, priority: priorityRF},
		{rec: &recD, priority: priorityND},
	}
	orderDonors(donors)

	var sites []string
	for _, d := range donors {
		sites = append(sites, d.rec.Site)
	}
	// ND tier first regardless of sales, then RF by ascending sales with
	// the site code breaking ties.
	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, sites)
}

func TestOrderReceivers(t *testing.T) {
	recA := mk(domain.InventoryRecord{Site: "S3", Target: 1})
	recB := mk(domain.InventoryRecord{Site: "S1", Target: 2})
	recC := mk(domain.InventoryRecord{Site: "S2", Target: 3})

	receivers := []receiverState{
		{rec: &recA, need: 1},
		{rec: &recB, need: 2},
		{rec: &recC, need: 3},
	}
	orderReceivers(receivers)

	var sites []string
	for _, r := range receivers {
		sites = append(sites, r.rec.Site)
	}
	assert.Equal(t, []string{"S1", "S2", "S3"}, sites)
}

func TestTotalDemand(t *testing.T) {
	recA := mk(domain.InventoryRecord{Site: "S1", Target: 4})
	recB := mk(domain.InventoryRecord{Site: "S2", Target: 8})
	receivers := []receiverState{{rec: &recA, need: 4}, {rec: &recB, need: 8}}
	assert.Equal(t, 12, totalDemand(receivers))
}
