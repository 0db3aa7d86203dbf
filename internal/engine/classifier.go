package engine

import "github.com/rickyckwong/transfer-suggest/internal/domain"

// donorPriority orders donor tiers: ND sites always drain before RF sites.
type donorPriority int

const (
	priorityND donorPriority = iota + 1
	priorityRF
)

// transferCandidate is a donor with its remaining donate capacity. It lives
// only for one article's matching pass; consumption mutates the candidate,
// never the underlying record.
type transferCandidate struct {
	rec          *domain.InventoryRecord
	remaining    int
	transferType string
	priority     donorPriority
}

// receiverState tracks a receiver's outstanding need during matching.
type receiverState struct {
	rec  *domain.InventoryRecord
	need int
}

// minStockGate selects which field gates RF donation in a mode.
type minStockGate int

const (
	gateSafetyStock minStockGate = iota
	gateMOQ
	gateNone
)

// modeRules is the declarative per-mode rule table: one generic classifier
// and matcher consume it, so the three modes cannot drift apart.
type modeRules struct {
	rfTransferType string
	gate           minStockGate
	// capNum/capDen bound RF donation to a fraction of available stock.
	capNum, capDen int
	// belowMaxSalesOnly keeps the article's best seller from donating.
	belowMaxSalesOnly bool
	// sameOMOnly restricts matching to the donor's operations group.
	sameOMOnly bool
}

var rulesByMode = map[domain.Mode]modeRules{
	domain.ModeConservative: {
		rfTransferType:    domain.TransferTypeRFA,
		gate:              gateSafetyStock,
		capNum:            1,
		capDen:            2,
		belowMaxSalesOnly: true,
		sameOMOnly:        true,
	},
	domain.ModeEnhanced: {
		rfTransferType:    domain.TransferTypeRFB,
		gate:              gateMOQ,
		capNum:            9,
		capDen:            10,
		belowMaxSalesOnly: true,
		sameOMOnly:        true,
	},
	domain.ModeSuper: {
		rfTransferType: domain.TransferTypeRFSuper,
		gate:           gateNone,
		capNum:         1,
		capDen:         1,
	},
}

// omAllowed reports whether a donor in donorOM may feed a receiver in
// receiverOM under these rules. Cross-OM modes still forbid the HD group
// from feeding the HA/HB/HC groups.
func (r modeRules) omAllowed(donorOM, receiverOM string) bool {
	if r.sameOMOnly {
		return donorOM == receiverOM
	}
	if donorOM == "HD" {
		switch receiverOM {
		case "HA", "HB", "HC":
			return false
		}
	}
	return true
}

func (r modeRules) gateQty(rec *domain.InventoryRecord) (int, bool) {
	switch r.gate {
	case gateSafetyStock:
		return rec.SafetyStock, true
	case gateMOQ:
		return rec.MOQ, true
	default:
		return 0, false
	}
}

// classifyDonor decides whether a record may donate under the given rules
// and, if so, how much. ND sites transfer their full net stock; RF sites are
// threshold-gated and fraction-capped, and the donated amount is always
// physically capped by net stock on hand (available stock only widens the
// eligibility threshold).
func classifyDonor(rec *domain.InventoryRecord, rules modeRules, maxEffectiveSales int) (transferCandidate, bool) {
	if rec.RPType == domain.RPTypeND {
		if rec.NetStock <= 0 {
			return transferCandidate{}, false
		}
		return transferCandidate{
			rec:          rec,
			remaining:    rec.NetStock,
			transferType: domain.TransferTypeND,
			priority:     priorityND,
		}, true
	}

	gate, gated := rules.gateQty(rec)
	if gated {
		if rec.AvailableStock <= gate {
			return transferCandidate{}, false
		}
		if rules.belowMaxSalesOnly && rec.EffectiveSales >= maxEffectiveSales {
			return transferCandidate{}, false
		}
		qty := rec.AvailableStock - gate
		if ratioCap := rec.AvailableStock * rules.capNum / rules.capDen; ratioCap < qty {
			qty = ratioCap
		}
		if rec.NetStock < qty {
			qty = rec.NetStock
		}
		if qty <= 0 {
			return transferCandidate{}, false
		}
		return transferCandidate{
			rec:          rec,
			remaining:    qty,
			transferType: rules.rfTransferType,
			priority:     priorityRF,
		}, true
	}

	// Gate waived: any RF site holding stock donates all of it.
	if rec.NetStock <= 0 {
		return transferCandidate{}, false
	}
	return transferCandidate{
		rec:          rec,
		remaining:    rec.NetStock,
		transferType: rules.rfTransferType,
		priority:     priorityRF,
	}, true
}

// classifyReceiver returns the record's receiver descriptor, if any. Target
// is an absolute outstanding quantity per the source data contract; it is
// not reduced by the site's own stock.
func classifyReceiver(rec *domain.InventoryRecord) (receiverState, bool) {
	if rec.Target <= 0 {
		return receiverState{}, false
	}
	return receiverState{rec: rec, need: rec.Target}, true
}
