package engine

import (
	"sort"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// Summarize folds a recommendation list into per-article, per-OM,
// per-transfer-type and per-receiving-site totals. It is a pure fold: the
// same list always yields the same summary, and the input is not touched.
func Summarize(recs []domain.TransferRecommendation) domain.Summary {
	summary := domain.Summary{
		TotalLines: len(recs),
	}

	type articleAcc struct {
		qty     int
		lines   int
		oms     map[string]struct{}
		targets map[string]int // receiving site -> target, first snapshot wins
	}
	type omAcc struct {
		qty      int
		lines    int
		articles map[string]struct{}
	}
	type typeAcc struct {
		qty   int
		lines int
	}
	type siteAcc struct {
		target   int
		received int
	}

	byArticle := make(map[string]*articleAcc)
	byOM := make(map[string]*omAcc)
	byType := make(map[string]*typeAcc)
	bySite := make(map[string]*siteAcc)

	for _, rec := range recs {
		summary.TotalTransferQty += rec.Qty

		art := byArticle[rec.Article]
		if art == nil {
			art = &articleAcc{oms: make(map[string]struct{}), targets: make(map[string]int)}
			byArticle[rec.Article] = art
		}
		art.qty += rec.Qty
		art.lines++
		art.oms[rec.OM] = struct{}{}
		if _, seen := art.targets[rec.ReceiverSite]; !seen {
			art.targets[rec.ReceiverSite] = rec.Receiver.Target
		}

		om := byOM[rec.OM]
		if om == nil {
			om = &omAcc{articles: make(map[string]struct{})}
			byOM[rec.OM] = om
		}
		om.qty += rec.Qty
		om.lines++
		om.articles[rec.Article] = struct{}{}

		tt := byType[rec.TransferType]
		if tt == nil {
			tt = &typeAcc{}
			byType[rec.TransferType] = tt
		}
		tt.qty += rec.Qty
		tt.lines++

		site := bySite[rec.ReceiverSite]
		if site == nil {
			site = &siteAcc{target: rec.Receiver.Target}
			bySite[rec.ReceiverSite] = site
		}
		site.received += rec.Qty
	}

	summary.UniqueArticles = len(byArticle)
	summary.UniqueOMs = len(byOM)

	for article, acc := range byArticle {
		demand := 0
		for _, target := range acc.targets {
			demand += target
		}
		summary.ByArticle = append(summary.ByArticle, domain.ArticleStats{
			Article:         article,
			TotalDemand:     demand,
			TransferredQty:  acc.qty,
			Lines:           acc.lines,
			OMCount:         len(acc.oms),
			FulfillmentRate: rate(acc.qty, demand),
		})
	}
	sort.Slice(summary.ByArticle, func(i, j int) bool {
		return summary.ByArticle[i].Article < summary.ByArticle[j].Article
	})

	for om, acc := range byOM {
		summary.ByOM = append(summary.ByOM, domain.OMStats{
			OM:             om,
			TransferredQty: acc.qty,
			Lines:          acc.lines,
			ArticleCount:   len(acc.articles),
		})
	}
	sort.Slice(summary.ByOM, func(i, j int) bool {
		return summary.ByOM[i].OM < summary.ByOM[j].OM
	})

	for transferType, acc := range byType {
		summary.ByTransferType = append(summary.ByTransferType, domain.TransferTypeStats{
			TransferType:   transferType,
			TransferredQty: acc.qty,
			Lines:          acc.lines,
		})
	}
	sort.Slice(summary.ByTransferType, func(i, j int) bool {
		return summary.ByTransferType[i].TransferType < summary.ByTransferType[j].TransferType
	})

	for site, acc := range bySite {
		summary.ByReceiveSite = append(summary.ByReceiveSite, domain.ReceiveSiteStats{
			Site:            site,
			TargetQty:       acc.target,
			ReceivedQty:     acc.received,
			FulfillmentRate: rate(acc.received, acc.target),
		})
	}
	sort.Slice(summary.ByReceiveSite, func(i, j int) bool {
		return summary.ByReceiveSite[i].Site < summary.ByReceiveSite[j].Site
	})

	return summary
}

func rate(actual, wanted int) float64 {
	if wanted <= 0 {
		return 0
	}
	return float64(actual) / float64(wanted)
}
