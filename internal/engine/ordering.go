package engine

import "sort"

// orderDonors sorts donors into their processing order: ND tier before RF
// tier, then ascending effective sales so the weakest sellers drain first,
// with site code as the deterministic tie-break. Ascending sales also means
// an article's strongest seller is the last RF site to be touched.
func orderDonors(donors []transferCandidate) {
	sort.SliceStable(donors, func(i, j int) bool {
		if donors[i].priority != donors[j].priority {
			return donors[i].priority < donors[j].priority
		}
		if donors[i].rec.EffectiveSales != donors[j].rec.EffectiveSales {
			return donors[i].rec.EffectiveSales < donors[j].rec.EffectiveSales
		}
		return donors[i].rec.Site < donors[j].rec.Site
	})
}

// orderReceivers sorts receivers ascending by site code so allocation order
// is stable across runs.
func orderReceivers(receivers []receiverState) {
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].rec.Site < receivers[j].rec.Site
	})
}
