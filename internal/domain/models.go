// internal/domain/models.go
package domain

import "time"

// Column names of the inventory workbook contract. Every uploaded dataset
// must carry all of them; ingestion fails with a SchemaError otherwise.
const (
	ColArticle            = "Article"
	ColArticleDescription = "Article Description"
	ColRPType             = "RP Type"
	ColSite               = "Site"
	ColOM                 = "OM"
	ColMOQ                = "MOQ"
	ColNetStock           = "SaSa Net Stock"
	ColTarget             = "Target"
	ColPendingReceived    = "Pending Received"
	ColSafetyStock        = "Safety Stock"
	ColLastMonthSold      = "Last Month Sold Qty"
	ColMTDSold            = "MTD Sold Qty"
)

// RequiredColumns lists the columns a dataset must provide, in contract order.
var RequiredColumns = []string{
	ColArticle, ColArticleDescription, ColRPType, ColSite, ColOM, ColMOQ,
	ColNetStock, ColTarget, ColPendingReceived, ColSafetyStock,
	ColLastMonthSold, ColMTDSold,
}

// RPType is the replenishment policy of a site for an article.
type RPType string

const (
	// RPTypeND marks sites that are not actively restocked; they donate
	// their full stock whenever it is positive.
	RPTypeND RPType = "ND"
	// RPTypeRF marks sites gated by a minimum-stock threshold before
	// they may donate.
	RPTypeRF RPType = "RF"
)

// RawRow is one uncooked row of the uploaded dataset: cell text keyed by
// column name, plus its 1-based position in the source sheet for error
// reporting.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// InventoryRecord is one Article x Site row after normalization. It is
// immutable input to the engine; matching never writes back into it.
type InventoryRecord struct {
	Article     string `json:"article"`
	Description string `json:"description"`
	RPType      RPType `json:"rp_type"`
	Site        string `json:"site"`
	OM          string `json:"om"`

	MOQ             int `json:"moq"`
	SafetyStock     int `json:"safety_stock"`
	NetStock        int `json:"net_stock"`
	PendingReceived int `json:"pending_received"`
	Target          int `json:"target"`
	LastMonthSold   int `json:"last_month_sold"`
	MTDSold         int `json:"mtd_sold"`

	// Derived once by the normalizer.
	AvailableStock int `json:"available_stock"`
	EffectiveSales int `json:"effective_sales"`

	// Notes accumulates data-cleaning remarks (outlier clamping, RP type
	// fallback) so they survive into the exported report.
	Notes string `json:"notes,omitempty"`
}

// SiteSnapshot freezes a site's figures at match time. Recommendations carry
// one for each side so export and audit never have to recompute anything.
type SiteSnapshot struct {
	Site            string `json:"site"`
	OM              string `json:"om"`
	RPType          RPType `json:"rp_type"`
	NetStock        int    `json:"net_stock"`
	PendingReceived int    `json:"pending_received"`
	AvailableStock  int    `json:"available_stock"`
	SafetyStock     int    `json:"safety_stock"`
	MOQ             int    `json:"moq"`
	Target          int    `json:"target"`
	LastMonthSold   int    `json:"last_month_sold"`
	MTDSold         int    `json:"mtd_sold"`
	EffectiveSales  int    `json:"effective_sales"`
}

// TransferRecommendation is one suggested donor-to-receiver movement.
type TransferRecommendation struct {
	Article      string       `json:"article"`
	Description  string       `json:"description"`
	OM           string       `json:"om"`
	DonorSite    string       `json:"donor_site"`
	ReceiverSite string       `json:"receiver_site"`
	Qty          int          `json:"qty"`
	TransferType string       `json:"transfer_type"`
	Donor        SiteSnapshot `json:"donor"`
	Receiver     SiteSnapshot `json:"receiver"`
	Notes        string       `json:"notes,omitempty"`
}

// ArticleStats summarizes one article's allocation outcome.
type ArticleStats struct {
	Article         string  `json:"article"`
	TotalDemand     int     `json:"total_demand"`
	TransferredQty  int     `json:"transferred_qty"`
	Lines           int     `json:"lines"`
	OMCount         int     `json:"om_count"`
	FulfillmentRate float64 `json:"fulfillment_rate"`
}

// OMStats summarizes transfers per operations group.
type OMStats struct {
	OM             string `json:"om"`
	TransferredQty int    `json:"transferred_qty"`
	Lines          int    `json:"lines"`
	ArticleCount   int    `json:"article_count"`
}

// TransferTypeStats summarizes transfers per transfer type tag.
type TransferTypeStats struct {
	TransferType   string `json:"transfer_type"`
	TransferredQty int    `json:"transferred_qty"`
	Lines          int    `json:"lines"`
}

// ReceiveSiteStats compares what a receiving site asked for with what the
// matcher actually routed to it.
type ReceiveSiteStats struct {
	Site            string  `json:"site"`
	TargetQty       int     `json:"target_qty"`
	ReceivedQty     int     `json:"received_qty"`
	FulfillmentRate float64 `json:"fulfillment_rate"`
}

// Summary is the aggregated view over a full recommendation list. All
// slices are sorted by their key so repeated folds are byte-identical.
type Summary struct {
	TotalTransferQty int                 `json:"total_transfer_qty"`
	TotalLines       int                 `json:"total_lines"`
	UniqueArticles   int                 `json:"unique_articles"`
	UniqueOMs        int                 `json:"unique_oms"`
	ByArticle        []ArticleStats      `json:"by_article"`
	ByOM             []OMStats           `json:"by_om"`
	ByTransferType   []TransferTypeStats `json:"by_transfer_type"`
	ByReceiveSite    []ReceiveSiteStats  `json:"by_receive_site"`
}

// Diagnostic explains why a run produced no recommendations.
type Diagnostic struct {
	Reason      string   `json:"reason"`
	Message     string   `json:"message"`
	DonorCount  int      `json:"donor_count"`
	TargetCount int      `json:"target_count"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// AnalysisResult bundles everything one run produces.
type AnalysisResult struct {
	Mode            Mode                     `json:"mode"`
	Recommendations []TransferRecommendation `json:"recommendations"`
	Summary         Summary                  `json:"summary"`
	Diagnostic      *Diagnostic              `json:"diagnostic,omitempty"`
}

// AnalysisRun is the persisted record of one analysis, when run history is
// enabled.
type AnalysisRun struct {
	ID               int64      `json:"id" db:"id"`
	Filename         string     `json:"filename" db:"filename"`
	Mode             string     `json:"mode" db:"mode"`
	Status           string     `json:"status" db:"status"`
	RecordCount      int        `json:"record_count" db:"record_count"`
	TotalLines       int        `json:"total_lines" db:"total_lines"`
	TotalTransferQty int        `json:"total_transfer_qty" db:"total_transfer_qty"`
	ErrorMessage     string     `json:"error_message,omitempty" db:"error_message"`
	StartedAt        time.Time  `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// AnalysisRun statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
