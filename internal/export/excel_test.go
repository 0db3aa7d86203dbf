package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/engine"
)

func reportFixture() *domain.AnalysisResult {
	recs := []domain.TransferRecommendation{
		{
			Article:      "100001",
			Description:  "Hand Cream 30ml",
			OM:           "G1",
			DonorSite:    "S001",
			ReceiverSite: "S002",
			Qty:          5,
			TransferType: domain.TransferTypeND,
			Donor: domain.SiteSnapshot{
				Site: "S001", OM: "G1", RPType: domain.RPTypeND,
				NetStock: 10, SafetyStock: 3, MOQ: 2, LastMonthSold: 6, MTDSold: 4,
			},
			Receiver: domain.SiteSnapshot{
				Site: "S002", OM: "G1", RPType: domain.RPTypeRF,
				Target: 5, LastMonthSold: 8, MTDSold: 2,
			},
			Notes: "Transfer from S001 to S002",
		},
	}
	return &domain.AnalysisResult{
		Mode:            domain.ModeConservative,
		Recommendations: recs,
		Summary:         engine.Summarize(recs),
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(reportFixture())
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{suggestionSheet, summarySheet}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Article", cell(suggestionSheet, "A1"))
	assert.Equal(t, "Notes", cell(suggestionSheet, "T1"))

	assert.Equal(t, "100001", cell(suggestionSheet, "A2"))
	assert.Equal(t, "S001", cell(suggestionSheet, "D2"))
	assert.Equal(t, "5", cell(suggestionSheet, "E2"))
	assert.Equal(t, "10", cell(suggestionSheet, "F2"))
	// After-transfer stock is derived from the pre-transfer snapshot.
	assert.Equal(t, "5", cell(suggestionSheet, "G2"))
	assert.Equal(t, "ND", cell(suggestionSheet, "J2"))
	assert.Equal(t, "S002", cell(suggestionSheet, "M2"))
	assert.Equal(t, domain.TransferTypeND, cell(suggestionSheet, "R2"))

	assert.Equal(t, "KPI Overview", cell(summarySheet, "A1"))
	assert.Equal(t, "Conservative Transfer", cell(summarySheet, "C1"))
	assert.Equal(t, "Total Transfer Qty", cell(summarySheet, "B2"))
	assert.Equal(t, "5", cell(summarySheet, "C2"))
}

func TestWriteReportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, reportFixture()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(suggestionSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100001", rows[1][0])
}

func TestWriteReportEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	result := &domain.AnalysisResult{Mode: domain.ModeSuper, Summary: engine.Summarize(nil)}
	require.NoError(t, WriteReport(&buf, result))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(suggestionSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header is written")
}
