package ads

// LineItem represents an ad group within a campaign.
type LineItem struct {
	Resource               `yaml:",inline"`
	AccountID              string       `json:"account_id"                      yaml:"account_id"`
	CampaignID             string       `json:"campaign_id"                     yaml:"campaign_id"`
	Name                   string       `json:"name"                            yaml:"name"`
	ProductType            ProductType  `json:"product_type"                    yaml:"product_type"`
	Placements             []Placement  `json:"placements"                      yaml:"placements"`
	Objective              Objective    `json:"objective"                       yaml:"objective"`
	EntityStatus           EntityStatus `json:"entity_status"                   yaml:"entity_status"`
	Paused                 bool         `json:"paused"                          yaml:"paused"`
	Currency               string       `json:"currency"                        yaml:"currency"`
	BidAmount              *Money       `json:"bid_amount_local_micro"          yaml:"bid_amount_local_micro"`
	TotalBudget            *Money       `json:"total_budget_amount_local_micro" yaml:"total_budget_amount_local_micro"`
	AutomaticallySelectBid bool         `json:"automatically_select_bid"        yaml:"automatically_select_bid"`
	StartTime              Timestamp    `json:"start_time"                      yaml:"start_time"`
	EndTime                Timestamp    `json:"end_time"                        yaml:"end_time"`
}

// LineItemQuery filters the line item list.
type LineItemQuery struct {
	ListOptions

	LineItemIDs          Opt[[]string]
	CampaignIDs          Opt[[]string]
	FundingInstrumentIDs Opt[[]string]
	Query                Opt[string]
}

var (
	lineItemIDsField        = FieldDescriptor{Order: 1, Name: "LineItemIDs", Wire: "line_item_ids", Kind: KindStringList}
	lineItemCampaignsField  = FieldDescriptor{Order: 2, Name: "CampaignIDs", Wire: "campaign_ids", Kind: KindStringList}
	lineItemFundingIDsField = FieldDescriptor{Order: 3, Name: "FundingInstrumentIDs", Wire: "funding_instrument_ids", Kind: KindStringList}
	lineItemQueryField      = FieldDescriptor{Order: 4, Name: "Query", Wire: "q", Kind: KindString}
)

// NewLineItemQuery returns an empty query.
func NewLineItemQuery() *LineItemQuery {
	return &LineItemQuery{}
}

// WithLineItemIDs restricts the list to the given line items.
func (q *LineItemQuery) WithLineItemIDs(ids ...string) *LineItemQuery {
	q.LineItemIDs.Set(ids)

	return q
}

// WithCampaignIDs restricts the list to line items of the given campaigns.
func (q *LineItemQuery) WithCampaignIDs(ids ...string) *LineItemQuery {
	q.CampaignIDs.Set(ids)

	return q
}

// WithCount sets the page size.
func (q *LineItemQuery) WithCount(n int) *LineItemQuery {
	q.Count.Set(n)

	return q
}

// Fields implements Fielder.
func (q LineItemQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(lineItemIDsField, q.LineItemIDs),
		Field(lineItemCampaignsField, q.CampaignIDs),
		Field(lineItemFundingIDsField, q.FundingInstrumentIDs),
		Field(lineItemQueryField, q.Query),
	}, q.ListOptions.Fields()...)
}

// LineItemForm is the body of a line item create or update.
type LineItemForm struct {
	CampaignID             Opt[string]
	Name                   Opt[string]
	ProductType            Opt[ProductType]
	Placements             Opt[[]Placement]
	Objective              Opt[Objective]
	BidAmount              Opt[Money]
	TotalBudget            Opt[Money]
	AutomaticallySelectBid Opt[bool]
	ActiveWindow           Opt[TimeRange]
	Paused                 Opt[bool]
	Deleted                Opt[bool]
}

var (
	lineItemCampaignField    = FieldDescriptor{Order: 1, Name: "CampaignID", Wire: "campaign_id", Kind: KindString}
	lineItemNameField        = FieldDescriptor{Order: 2, Name: "Name", Wire: "name", Kind: KindString}
	lineItemProductField     = FieldDescriptor{Order: 3, Name: "ProductType", Wire: "product_type", Kind: KindEnum}
	lineItemPlacementsField  = FieldDescriptor{Order: 4, Name: "Placements", Wire: "placements", Kind: KindEnumList}
	lineItemObjectiveField   = FieldDescriptor{Order: 5, Name: "Objective", Wire: "objective", Kind: KindEnum}
	lineItemBidField         = FieldDescriptor{Order: 6, Name: "BidAmount", Wire: "bid_amount_local_micro", Kind: KindDecimal}
	lineItemTotalBudgetField = FieldDescriptor{Order: 7, Name: "TotalBudget", Wire: "total_budget_amount_local_micro", Kind: KindDecimal}
	lineItemAutoBidField     = FieldDescriptor{Order: 8, Name: "AutomaticallySelectBid", Wire: "automatically_select_bid", Kind: KindBoolean}
	lineItemWindowField      = FieldDescriptor{
		Order: 9, Name: "ActiveWindow", Kind: KindTimestampRange,
		RangeWire: [2]string{"start_time", "end_time"},
	}
	lineItemPausedField  = FieldDescriptor{Order: 10, Name: "Paused", Wire: "paused", Kind: KindBoolean}
	lineItemDeletedField = FieldDescriptor{Order: 11, Name: "Deleted", Wire: "deleted", Kind: KindBoolean}
)

// NewLineItemForm returns an empty form.
func NewLineItemForm() *LineItemForm {
	return &LineItemForm{}
}

// WithCampaign sets the owning campaign.
func (f *LineItemForm) WithCampaign(id string) *LineItemForm {
	f.CampaignID.Set(id)

	return f
}

// WithName sets the line item name.
func (f *LineItemForm) WithName(name string) *LineItemForm {
	f.Name.Set(name)

	return f
}

// WithProductType sets the ad product.
func (f *LineItemForm) WithProductType(p ProductType) *LineItemForm {
	f.ProductType.Set(p)

	return f
}

// WithPlacements sets where the line item serves.
func (f *LineItemForm) WithPlacements(p ...Placement) *LineItemForm {
	f.Placements.Set(p)

	return f
}

// WithObjective sets the optimization goal.
func (f *LineItemForm) WithObjective(o Objective) *LineItemForm {
	f.Objective.Set(o)

	return f
}

// WithBidAmount sets the bid.
func (f *LineItemForm) WithBidAmount(m Money) *LineItemForm {
	f.BidAmount.Set(m)

	return f
}

// WithPaused sets the paused flag.
func (f *LineItemForm) WithPaused(paused bool) *LineItemForm {
	f.Paused.Set(paused)

	return f
}

// Fields implements Fielder.
func (f LineItemForm) Fields() []FieldValue {
	return []FieldValue{
		Field(lineItemCampaignField, f.CampaignID),
		Field(lineItemNameField, f.Name),
		Field(lineItemProductField, f.ProductType),
		Field(lineItemPlacementsField, f.Placements),
		Field(lineItemObjectiveField, f.Objective),
		Field(lineItemBidField, f.BidAmount),
		Field(lineItemTotalBudgetField, f.TotalBudget),
		Field(lineItemAutoBidField, f.AutomaticallySelectBid),
		Field(lineItemWindowField, f.ActiveWindow),
		Field(lineItemPausedField, f.Paused),
		Field(lineItemDeletedField, f.Deleted),
	}
}
