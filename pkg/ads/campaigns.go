package ads

// Campaign represents an advertising campaign.
type Campaign struct {
	Resource            `yaml:",inline"`
	AccountID           string         `json:"account_id"                      yaml:"account_id"`
	Name                string         `json:"name"                            yaml:"name"`
	FundingInstrumentID string         `json:"funding_instrument_id"           yaml:"funding_instrument_id"`
	Currency            string         `json:"currency"                        yaml:"currency"`
	EntityStatus        EntityStatus   `json:"entity_status"                   yaml:"entity_status"`
	Paused              bool           `json:"paused"                          yaml:"paused"`
	Servable            bool           `json:"servable"                        yaml:"servable"`
	StandardDelivery    bool           `json:"standard_delivery"               yaml:"standard_delivery"`
	StartTime           Timestamp      `json:"start_time"                      yaml:"start_time"`
	EndTime             Timestamp      `json:"end_time"                        yaml:"end_time"`
	TotalBudget         *Money         `json:"total_budget_amount_local_micro" yaml:"total_budget_amount_local_micro"`
	DailyBudget         *Money         `json:"daily_budget_amount_local_micro" yaml:"daily_budget_amount_local_micro"`
	FrequencyCap        *int64         `json:"frequency_cap"                   yaml:"frequency_cap"`
	DurationInDays      *int64         `json:"duration_in_days"                yaml:"duration_in_days"`
	ReasonsNotServable  []string       `json:"reasons_not_servable"            yaml:"reasons_not_servable"`
	ApprovalStatus      ApprovalStatus `json:"approval_status,omitempty"       yaml:"approval_status,omitempty"`
}

// CampaignQuery filters the campaign list.
type CampaignQuery struct {
	ListOptions

	CampaignIDs          Opt[[]string]
	FundingInstrumentIDs Opt[[]string]
	Query                Opt[string]
	WithDraft            Opt[bool]
}

var (
	campaignIDsField        = FieldDescriptor{Order: 1, Name: "CampaignIDs", Wire: "campaign_ids", Kind: KindStringList}
	campaignFundingIDsField = FieldDescriptor{Order: 2, Name: "FundingInstrumentIDs", Wire: "funding_instrument_ids", Kind: KindStringList}
	campaignQueryField      = FieldDescriptor{Order: 3, Name: "Query", Wire: "q", Kind: KindString}
	campaignWithDraftField  = FieldDescriptor{Order: 4, Name: "WithDraft", Wire: "with_draft", Kind: KindBoolean}
)

// NewCampaignQuery returns an empty query.
func NewCampaignQuery() *CampaignQuery {
	return &CampaignQuery{}
}

// WithCampaignIDs restricts the list to the given campaigns.
func (q *CampaignQuery) WithCampaignIDs(ids ...string) *CampaignQuery {
	q.CampaignIDs.Set(ids)

	return q
}

// WithFundingInstrumentIDs restricts the list to campaigns funded by the given instruments.
func (q *CampaignQuery) WithFundingInstrumentIDs(ids ...string) *CampaignQuery {
	q.FundingInstrumentIDs.Set(ids)

	return q
}

// WithQuery filters by campaign name.
func (q *CampaignQuery) WithQuery(s string) *CampaignQuery {
	q.Query.Set(s)

	return q
}

// WithDraftCampaigns includes draft campaigns.
func (q *CampaignQuery) WithDraftCampaigns(include bool) *CampaignQuery {
	q.WithDraft.Set(include)

	return q
}

// WithCount sets the page size.
func (q *CampaignQuery) WithCount(n int) *CampaignQuery {
	q.Count.Set(n)

	return q
}

// IncludeDeleted includes deleted campaigns.
func (q *CampaignQuery) IncludeDeleted(include bool) *CampaignQuery {
	q.WithDeleted.Set(include)

	return q
}

// Fields implements Fielder.
func (q CampaignQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(campaignIDsField, q.CampaignIDs),
		Field(campaignFundingIDsField, q.FundingInstrumentIDs),
		Field(campaignQueryField, q.Query),
		Field(campaignWithDraftField, q.WithDraft),
	}, q.ListOptions.Fields()...)
}

// CampaignForm is the body of a campaign create or update. Only touched
// fields are sent, so an update form carries just the changes.
type CampaignForm struct {
	Name                Opt[string]
	Currency            Opt[string]
	FundingInstrumentID Opt[string]
	TotalBudget         Opt[Money]
	DailyBudget         Opt[Money]
	ActiveWindow        Opt[TimeRange]
	StandardDelivery    Opt[bool]
	Paused              Opt[bool]
	Deleted             Opt[bool]
	FrequencyCap        Opt[int]
	DurationInDays      Opt[int]
}

var (
	campaignNameField         = FieldDescriptor{Order: 1, Name: "Name", Wire: "name", Kind: KindString}
	campaignCurrencyField     = FieldDescriptor{Order: 2, Name: "Currency", Wire: "currency", Kind: KindString}
	campaignFundingField      = FieldDescriptor{Order: 3, Name: "FundingInstrumentID", Wire: "funding_instrument_id", Kind: KindString}
	campaignTotalBudgetField  = FieldDescriptor{Order: 4, Name: "TotalBudget", Wire: "total_budget_amount_local_micro", Kind: KindDecimal}
	campaignDailyBudgetField  = FieldDescriptor{Order: 5, Name: "DailyBudget", Wire: "daily_budget_amount_local_micro", Kind: KindDecimal}
	campaignActiveWindowField = FieldDescriptor{
		Order: 6, Name: "ActiveWindow", Kind: KindTimestampRange,
		RangeWire: [2]string{"start_time", "end_time"},
	}
	campaignStandardDeliveryField = FieldDescriptor{Order: 7, Name: "StandardDelivery", Wire: "standard_delivery", Kind: KindBoolean}
	campaignPausedField           = FieldDescriptor{Order: 8, Name: "Paused", Wire: "paused", Kind: KindBoolean}
	campaignDeletedField          = FieldDescriptor{Order: 9, Name: "Deleted", Wire: "deleted", Kind: KindBoolean}
	campaignFrequencyCapField     = FieldDescriptor{Order: 10, Name: "FrequencyCap", Wire: "frequency_cap", Kind: KindInteger}
	campaignDurationField         = FieldDescriptor{Order: 11, Name: "DurationInDays", Wire: "duration_in_days", Kind: KindInteger}
)

// NewCampaignForm returns an empty form.
func NewCampaignForm() *CampaignForm {
	return &CampaignForm{}
}

// WithName sets the campaign name.
func (f *CampaignForm) WithName(name string) *CampaignForm {
	f.Name.Set(name)

	return f
}

// WithCurrency sets the ISO 4217 currency code.
func (f *CampaignForm) WithCurrency(code string) *CampaignForm {
	f.Currency.Set(code)

	return f
}

// WithFundingInstrument sets the funding instrument.
func (f *CampaignForm) WithFundingInstrument(id string) *CampaignForm {
	f.FundingInstrumentID.Set(id)

	return f
}

// WithTotalBudget sets the lifetime budget.
func (f *CampaignForm) WithTotalBudget(m Money) *CampaignForm {
	f.TotalBudget.Set(m)

	return f
}

// WithDailyBudget sets the daily budget.
func (f *CampaignForm) WithDailyBudget(m Money) *CampaignForm {
	f.DailyBudget.Set(m)

	return f
}

// WithActiveWindow sets the flight dates.
func (f *CampaignForm) WithActiveWindow(r TimeRange) *CampaignForm {
	f.ActiveWindow.Set(r)

	return f
}

// WithStandardDelivery toggles even pacing.
func (f *CampaignForm) WithStandardDelivery(on bool) *CampaignForm {
	f.StandardDelivery.Set(on)

	return f
}

// WithPaused sets the paused flag.
func (f *CampaignForm) WithPaused(paused bool) *CampaignForm {
	f.Paused.Set(paused)

	return f
}

// WithDeleted sets the deleted flag.
func (f *CampaignForm) WithDeleted(deleted bool) *CampaignForm {
	f.Deleted.Set(deleted)

	return f
}

// Fields implements Fielder.
func (f CampaignForm) Fields() []FieldValue {
	return []FieldValue{
		Field(campaignNameField, f.Name),
		Field(campaignCurrencyField, f.Currency),
		Field(campaignFundingField, f.FundingInstrumentID),
		Field(campaignTotalBudgetField, f.TotalBudget),
		Field(campaignDailyBudgetField, f.DailyBudget),
		Field(campaignActiveWindowField, f.ActiveWindow),
		Field(campaignStandardDeliveryField, f.StandardDelivery),
		Field(campaignPausedField, f.Paused),
		Field(campaignDeletedField, f.Deleted),
		Field(campaignFrequencyCapField, f.FrequencyCap),
		Field(campaignDurationField, f.DurationInDays),
	}
}
