package engine

import (
	"strconv"
	"strings"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// salesOutlierCeiling caps obviously corrupt sales figures instead of letting
// them dominate donor ordering. Clamped rows are annotated, not dropped.
const salesOutlierCeiling = 100000

// NormalizeRows validates raw dataset rows and produces one InventoryRecord
// per row with the derived fields populated. The whole dataset is rejected on
// the first uncoercible cell so demand and supply totals are never silently
// skewed by dropped rows.
func NormalizeRows(rows []domain.RawRow) ([]domain.InventoryRecord, error) {
	if len(rows) > 0 {
		if err := checkColumns(rows[0]); err != nil {
			return nil, err
		}
	}

	records := make([]domain.InventoryRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := normalizeRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func checkColumns(row domain.RawRow) error {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := row.Fields[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.SchemaError{MissingColumns: missing}
	}
	return nil
}

func normalizeRow(row domain.RawRow) (domain.InventoryRecord, error) {
	var notes []string

	rec := domain.InventoryRecord{
		Article:     strings.TrimSpace(row.Fields[domain.ColArticle]),
		Description: strings.TrimSpace(row.Fields[domain.ColArticleDescription]),
		Site:        strings.TrimSpace(row.Fields[domain.ColSite]),
		OM:          strings.TrimSpace(row.Fields[domain.ColOM]),
	}

	switch rp := strings.ToUpper(strings.TrimSpace(row.Fields[domain.ColRPType])); rp {
	case string(domain.RPTypeND), string(domain.RPTypeRF):
		rec.RPType = domain.RPType(rp)
	default:
		// The original data feed occasionally carries stray RP codes;
		// they behave like non-replenished sites.
		rec.RPType = domain.RPTypeND
		notes = append(notes, "invalid RP Type, defaulted to ND")
	}

	var err error
	if rec.MOQ, err = parseQty(row, domain.ColMOQ); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.NetStock, err = parseQty(row, domain.ColNetStock); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.Target, err = parseQty(row, domain.ColTarget); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.PendingReceived, err = parseQty(row, domain.ColPendingReceived); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.SafetyStock, err = parseQty(row, domain.ColSafetyStock); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.LastMonthSold, err = parseQty(row, domain.ColLastMonthSold); err != nil {
		return domain.InventoryRecord{}, err
	}
	if rec.MTDSold, err = parseQty(row, domain.ColMTDSold); err != nil {
		return domain.InventoryRecord{}, err
	}

	if rec.LastMonthSold > salesOutlierCeiling || rec.MTDSold > salesOutlierCeiling {
		notes = append(notes, "sales outlier clamped to 100000")
		rec.LastMonthSold = min(rec.LastMonthSold, salesOutlierCeiling)
		rec.MTDSold = min(rec.MTDSold, salesOutlierCeiling)
	}

	rec.AvailableStock = rec.NetStock + rec.PendingReceived
	if rec.LastMonthSold > 0 {
		rec.EffectiveSales = rec.LastMonthSold
	} else {
		rec.EffectiveSales = rec.MTDSold
	}
	rec.Notes = strings.Join(notes, "; ")

	return rec, nil
}

// parseQty coerces a quantity cell to a non-negative integer. Blank cells
// count as zero; thousands separators are tolerated; integral floats such as
// "12.0" are accepted because spreadsheet tools emit them freely.
func parseQty(row domain.RawRow, col string) (int, error) {
	raw := strings.TrimSpace(row.Fields[col])
	if raw == "" {
		return 0, nil
	}

	cleaned := strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &domain.DataTypeError{Line: row.Line, Column: col, Value: raw, Reason: "not a number"}
	}
	if f != float64(int64(f)) {
		return 0, &domain.DataTypeError{Line: row.Line, Column: col, Value: raw, Reason: "not a whole quantity"}
	}
	if f < 0 {
		return 0, &domain.DataTypeError{Line: row.Line, Column: col, Value: raw, Reason: "negative quantity"}
	}
	return int(f), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
