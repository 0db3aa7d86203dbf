package engine

import (
	"fmt"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// matchArticle runs one article's full allocation pass: classify donors and
// receivers, order both sides, then greedily pair them under the article's
// demand cap and the mode's grouping rules. Records are never mutated; all
// remaining-quantity state lives in the candidates built here.
func matchArticle(records []*domain.InventoryRecord, rules modeRules) ([]domain.TransferRecommendation, error) {
	maxSales := 0
	for _, rec := range records {
		if rec.EffectiveSales > maxSales {
			maxSales = rec.EffectiveSales
		}
	}

	var donors []transferCandidate
	var receivers []receiverState
	for _, rec := range records {
		if cand, ok := classifyDonor(rec, rules, maxSales); ok {
			donors = append(donors, cand)
		}
		if rs, ok := classifyReceiver(rec); ok {
			receivers = append(receivers, rs)
		}
	}
	if len(donors) == 0 || len(receivers) == 0 {
		return nil, nil
	}

	orderDonors(donors)
	orderReceivers(receivers)

	demandCap := totalDemand(receivers)
	allocated := 0
	donatedBySite := make(map[string]int, len(donors))

	var recs []domain.TransferRecommendation
	for di := range donors {
		donor := &donors[di]
		if allocated >= demandCap {
			break
		}
		for ri := range receivers {
			if donor.remaining <= 0 || allocated >= demandCap {
				break
			}
			recv := &receivers[ri]
			if recv.need <= 0 {
				continue
			}
			if recv.rec.Site == donor.rec.Site {
				continue
			}
			if !rules.omAllowed(donor.rec.OM, recv.rec.OM) {
				continue
			}

			qty := donor.remaining
			if recv.need < qty {
				qty = recv.need
			}
			if headroom := demandCap - allocated; headroom < qty {
				qty = headroom
			}
			// Should be unreachable given classification caps; clamp
			// anyway so a defect can never suggest moving stock a site
			// does not hold.
			if headroom := donor.rec.NetStock - donatedBySite[donor.rec.Site]; headroom < qty {
				qty = headroom
			}
			if qty <= 0 {
				break
			}

			recs = append(recs, domain.TransferRecommendation{
				Article:      donor.rec.Article,
				Description:  donor.rec.Description,
				OM:           donor.rec.OM,
				DonorSite:    donor.rec.Site,
				ReceiverSite: recv.rec.Site,
				Qty:          qty,
				TransferType: donor.transferType,
				Donor:        snapshot(donor.rec),
				Receiver:     snapshot(recv.rec),
				Notes:        fmt.Sprintf("Transfer from %s to %s", donor.rec.Site, recv.rec.Site),
			})

			donor.remaining -= qty
			recv.need -= qty
			allocated += qty
			donatedBySite[donor.rec.Site] += qty
		}
	}

	if allocated > demandCap {
		return nil, &domain.ConstraintViolation{
			Article: records[0].Article,
			Detail:  fmt.Sprintf("allocated %d exceeds total demand %d", allocated, demandCap),
		}
	}
	for _, rec := range records {
		if donated := donatedBySite[rec.Site]; donated > rec.NetStock {
			return nil, &domain.ConstraintViolation{
				Article: rec.Article,
				Detail:  fmt.Sprintf("site %s donated %d with only %d net stock", rec.Site, donated, rec.NetStock),
			}
		}
	}

	return recs, nil
}

func snapshot(rec *domain.InventoryRecord) domain.SiteSnapshot {
	return domain.SiteSnapshot{
		Site:            rec.Site,
		OM:              rec.OM,
		RPType:          rec.RPType,
		NetStock:        rec.NetStock,
		PendingReceived: rec.PendingReceived,
		AvailableStock:  rec.AvailableStock,
		SafetyStock:     rec.SafetyStock,
		MOQ:             rec.MOQ,
		Target:          rec.Target,
		LastMonthSold:   rec.LastMonthSold,
		MTDSold:         rec.MTDSold,
		EffectiveSales:  rec.EffectiveSales,
	}
}
