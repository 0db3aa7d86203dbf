package engine

import "github.com/rickyckwong/transfer-suggest/internal/domain"

// Diagnose explains an empty recommendation list in operator terms: no
// eligible donors, no targets, no overlap between the two, or the mode's
// group restriction filtering every pair out.
func Diagnose(records []domain.InventoryRecord, mode domain.Mode) *domain.Diagnostic {
	rules, ok := rulesByMode[mode]
	if !ok {
		return nil
	}

	maxSalesByArticle := make(map[string]int)
	for _, rec := range records {
		if rec.EffectiveSales > maxSalesByArticle[rec.Article] {
			maxSalesByArticle[rec.Article] = rec.EffectiveSales
		}
	}

	donorArticles := make(map[string]struct{})
	receiverArticles := make(map[string]struct{})
	donorCount, targetCount := 0, 0
	for i := range records {
		rec := &records[i]
		if _, ok := classifyDonor(rec, rules, maxSalesByArticle[rec.Article]); ok {
			donorCount++
			donorArticles[rec.Article] = struct{}{}
		}
		if _, ok := classifyReceiver(rec); ok {
			targetCount++
			receiverArticles[rec.Article] = struct{}{}
		}
	}

	diag := &domain.Diagnostic{
		DonorCount:  donorCount,
		TargetCount: targetCount,
		Suggestions: []string{
			"check that the workbook carries all required columns",
			"check for ND sites holding stock, or RF sites above their mode threshold",
			"check that at least one site has Target > 0",
			"check that donor and receiver articles overlap within the mode's group rules",
		},
	}

	common := 0
	for article := range donorArticles {
		if _, ok := receiverArticles[article]; ok {
			common++
		}
	}

	switch {
	case donorCount == 0 && targetCount == 0:
		diag.Reason = "no_eligible_candidates"
		diag.Message = "no sites qualify as donors and no sites carry a target quantity"
	case donorCount == 0:
		diag.Reason = "no_donors"
		diag.Message = "no sites qualify as donors under mode " + string(mode)
	case targetCount == 0:
		diag.Reason = "no_targets"
		diag.Message = "no sites carry a target quantity"
	case common == 0:
		diag.Reason = "no_common_articles"
		diag.Message = "donor and receiver articles do not overlap"
	default:
		diag.Reason = "group_restriction"
		diag.Message = "every donor/receiver pair is excluded by self-transfer or group rules"
	}

	return diag
}
