package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name       string
		mode       domain.Mode
		records    []domain.InventoryRecord
		wantReason string
	}{
		{
			name:       "nothing qualifies",
			mode:       domain.ModeConservative,
			records:    []domain.InventoryRecord{mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF})},
			wantReason: "no_eligible_candidates",
		},
		{
			name: "targets but no donors",
			mode: domain.ModeConservative,
			records: []domain.InventoryRecord{
				mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeRF, Target: 5}),
			},
			wantReason: "no_donors",
		},
		{
			name: "donors but no targets",
			mode: domain.ModeConservative,
			records: []domain.InventoryRecord{
				mk(domain.InventoryRecord{Site: "S1", RPType: domain.RPTypeND, NetStock: 5}),
			},
			wantReason: "no_targets",
		},
		{
			name: "donor and receiver articles never overlap",
			mode: domain.ModeConservative,
			records: []domain.InventoryRecord{
				mk(domain.InventoryRecord{Article: "A1", Site: "S1", RPType: domain.RPTypeND, NetStock: 5}),
				mk(domain.InventoryRecord{Article: "A2", Site: "S2", RPType: domain.RPTypeRF, Target: 5}),
			},
			wantReason: "no_common_articles",
		},
		{
			name: "pairs exist but group rules exclude them all",
			mode: domain.ModeConservative,
			records: []domain.InventoryRecord{
				mk(domain.InventoryRecord{Site: "S1", OM: "G1", RPType: domain.RPTypeND, NetStock: 5}),
				mk(domain.InventoryRecord{Site: "S2", OM: "G2", RPType: domain.RPTypeRF, Target: 5}),
			},
			wantReason: "group_restriction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := Diagnose(tt.records, tt.mode)
			require.NotNil(t, diag)
			assert.Equal(t, tt.wantReason, diag.Reason)
			assert.NotEmpty(t, diag.Message)
			assert.NotEmpty(t, diag.Suggestions)
		})
	}
}

func TestDiagnoseUnknownMode(t *testing.T) {
	assert.Nil(t, Diagnose(nil, domain.Mode("Z")))
}
