// Package export renders an analysis result into the XLSX report consumed by
// the merchandising team: one sheet with the suggestion lines and one with
// the summary blocks. Every cell comes from the snapshots captured at match
// time; nothing is recomputed here.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

const (
	suggestionSheet = "Transfer Suggestions"
	summarySheet    = "Summary"

	// blockGap is the number of blank rows between summary blocks.
	blockGap = 3
)

var suggestionHeader = []interface{}{
	"Article",
	"Article Description",
	"OM",
	"Transfer Site",
	"Transfer Qty",
	"Transfer Site Original Stock",
	"Transfer Site After Transfer Stock",
	"Transfer Site Safety Stock",
	"Transfer Site MOQ",
	"Transfer Site RP Type",
	"Transfer Site Last Month Sold Qty",
	"Transfer Site MTD Sold Qty",
	"Receive Site",
	"Receive Site Target Qty",
	"Receive Site RP Type",
	"Receive Site Last Month Sold Qty",
	"Receive Site MTD Sold Qty",
	"Transfer Type",
	"Receive Qty",
	"Notes",
}

// WriteReport renders the result as an XLSX workbook onto w.
func WriteReport(w io.Writer, result *domain.AnalysisResult) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook builds the report workbook in memory. The caller owns the
// returned file and must Close it.
func BuildWorkbook(result *domain.AnalysisResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", suggestionSheet); err != nil {
		return nil, err
	}
	if err := writeSuggestions(f, result.Recommendations); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, result); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeSuggestions(f *excelize.File, recs []domain.TransferRecommendation) error {
	if err := setRow(f, suggestionSheet, 1, suggestionHeader); err != nil {
		return err
	}
	for i, rec := range recs {
		row := []interface{}{
			rec.Article,
			rec.Description,
			rec.OM,
			rec.DonorSite,
			rec.Qty,
			rec.Donor.NetStock,
			rec.Donor.NetStock - rec.Qty,
			rec.Donor.SafetyStock,
			rec.Donor.MOQ,
			string(rec.Donor.RPType),
			rec.Donor.LastMonthSold,
			rec.Donor.MTDSold,
			rec.ReceiverSite,
			rec.Receiver.Target,
			string(rec.Receiver.RPType),
			rec.Receiver.LastMonthSold,
			rec.Receiver.MTDSold,
			rec.TransferType,
			rec.Qty,
			rec.Notes,
		}
		if err := setRow(f, suggestionSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, result *domain.AnalysisResult) error {
	s := result.Summary
	row := 1

	kpi := [][]interface{}{
		{"KPI Overview", "Mode", result.Mode.Name()},
		{"", "Total Transfer Qty", s.TotalTransferQty},
		{"", "Total Transfer Lines", s.TotalLines},
		{"", "Articles Involved", s.UniqueArticles},
		{"", "OMs Involved", s.UniqueOMs},
	}
	for _, r := range kpi {
		if err := setRow(f, summarySheet, row, r); err != nil {
			return err
		}
		row++
	}
	row += blockGap

	if len(s.ByArticle) > 0 {
		if err := setRow(f, summarySheet, row, []interface{}{"Statistics by Article"}); err != nil {
			return err
		}
		row++
		if err := setRow(f, summarySheet, row, []interface{}{
			"Article", "Total Demand", "Transferred Qty", "OM Count", "Lines", "Fulfillment Rate",
		}); err != nil {
			return err
		}
		row++
		for _, a := range s.ByArticle {
			if err := setRow(f, summarySheet, row, []interface{}{
				a.Article, a.TotalDemand, a.TransferredQty, a.OMCount, a.Lines, ratePercent(a.FulfillmentRate),
			}); err != nil {
				return err
			}
			row++
		}
		row += blockGap
	}

	if len(s.ByOM) > 0 {
		if err := setRow(f, summarySheet, row, []interface{}{"Statistics by OM"}); err != nil {
			return err
		}
		row++
		if err := setRow(f, summarySheet, row, []interface{}{
			"OM", "Transferred Qty", "Article Count", "Lines",
		}); err != nil {
			return err
		}
		row++
		for _, om := range s.ByOM {
			if err := setRow(f, summarySheet, row, []interface{}{
				om.OM, om.TransferredQty, om.ArticleCount, om.Lines,
			}); err != nil {
				return err
			}
			row++
		}
		row += blockGap
	}

	if len(s.ByTransferType) > 0 {
		if err := setRow(f, summarySheet, row, []interface{}{"Transfer Type Distribution"}); err != nil {
			return err
		}
		row++
		if err := setRow(f, summarySheet, row, []interface{}{
			"Transfer Type", "Transferred Qty", "Lines",
		}); err != nil {
			return err
		}
		row++
		for _, tt := range s.ByTransferType {
			if err := setRow(f, summarySheet, row, []interface{}{
				tt.TransferType, tt.TransferredQty, tt.Lines,
			}); err != nil {
				return err
			}
			row++
		}
		row += blockGap
	}

	if len(s.ByReceiveSite) > 0 {
		if err := setRow(f, summarySheet, row, []interface{}{"Receive Site Results"}); err != nil {
			return err
		}
		row++
		if err := setRow(f, summarySheet, row, []interface{}{
			"Receive Site", "Received Qty", "Target Qty", "Fulfillment Rate",
		}); err != nil {
			return err
		}
		row++
		for _, site := range s.ByReceiveSite {
			if err := setRow(f, summarySheet, row, []interface{}{
				site.Site, site.ReceivedQty, site.TargetQty, ratePercent(site.FulfillmentRate),
			}); err != nil {
				return err
			}
			row++
		}
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func ratePercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
