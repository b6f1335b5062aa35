package ads

// Resource holds the attributes every ads entity carries.
type Resource struct {
	ID        string    `json:"id"         yaml:"id"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt Timestamp `json:"updated_at" yaml:"updated_at"`
	Deleted   bool      `json:"deleted"    yaml:"deleted"`
}

// Account represents an advertising account.
type Account struct {
	Resource       `yaml:",inline"`
	Name           string         `json:"name"                      yaml:"name"`
	BusinessName   string         `json:"business_name,omitempty"   yaml:"business_name,omitempty"`
	Timezone       string         `json:"timezone"                  yaml:"timezone"`
	TimezoneSwitch Timestamp      `json:"timezone_switch_at"        yaml:"timezone_switch_at"`
	ApprovalStatus ApprovalStatus `json:"approval_status"           yaml:"approval_status"`
	Industry       string         `json:"industry_type,omitempty"   yaml:"industry_type,omitempty"`
	Salt           string         `json:"salt,omitempty"            yaml:"salt,omitempty"`
}

// AccountQuery filters the account list.
type AccountQuery struct {
	ListOptions

	AccountIDs Opt[[]string]
	Query      Opt[string]
}

var (
	accountIDsField   = FieldDescriptor{Order: 1, Name: "AccountIDs", Wire: "account_ids", Kind: KindStringList}
	accountQueryField = FieldDescriptor{Order: 2, Name: "Query", Wire: "q", Kind: KindString}
)

// NewAccountQuery returns an empty query.
func NewAccountQuery() *AccountQuery {
	return &AccountQuery{}
}

// WithAccountIDs restricts the list to the given accounts.
func (q *AccountQuery) WithAccountIDs(ids ...string) *AccountQuery {
	q.AccountIDs.Set(ids)

	return q
}

// WithQuery filters by account name prefix.
func (q *AccountQuery) WithQuery(s string) *AccountQuery {
	q.Query.Set(s)

	return q
}

// Fields implements Fielder.
func (q AccountQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(accountIDsField, q.AccountIDs),
		Field(accountQueryField, q.Query),
	}, q.ListOptions.Fields()...)
}

// FundingInstrument represents a payment source campaigns draw from.
type FundingInstrument struct {
	Resource              `yaml:",inline"`
	AccountID             string                `json:"account_id"                       yaml:"account_id"`
	Type                  FundingInstrumentType `json:"type"                             yaml:"type"`
	Description           string                `json:"description"                      yaml:"description"`
	Currency              string                `json:"currency"                         yaml:"currency"`
	EntityStatus          EntityStatus          `json:"entity_status"                    yaml:"entity_status"`
	Cancelled             bool                  `json:"cancelled"                        yaml:"cancelled"`
	StartTime             Timestamp             `json:"start_time"                       yaml:"start_time"`
	EndTime               Timestamp             `json:"end_time"                         yaml:"end_time"`
	CreditLimit           *Money                `json:"credit_limit_local_micro"         yaml:"credit_limit_local_micro"`
	CreditRemaining       *Money                `json:"credit_remaining_local_micro"     yaml:"credit_remaining_local_micro"`
	FundedAmount          *Money                `json:"funded_amount_local_micro"        yaml:"funded_amount_local_micro"`
	TotalBudget           *Money                `json:"total_budget_amount_local_micro"  yaml:"total_budget_amount_local_micro"`
	ReasonsNotServable    []string              `json:"reasons_not_able_to_fund"         yaml:"reasons_not_able_to_fund"`
	IOHeader              string                `json:"io_header,omitempty"              yaml:"io_header,omitempty"`
	PlatformCreditCardRef string                `json:"credit_card_reference,omitempty"  yaml:"credit_card_reference,omitempty"`
}

// FundingInstrumentQuery filters the funding instrument list.
type FundingInstrumentQuery struct {
	ListOptions

	FundingInstrumentIDs Opt[[]string]
}

var fundingInstrumentIDsField = FieldDescriptor{Order: 1, Name: "FundingInstrumentIDs", Wire: "funding_instrument_ids", Kind: KindStringList}

// Fields implements Fielder.
func (q FundingInstrumentQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(fundingInstrumentIDsField, q.FundingInstrumentIDs),
	}, q.ListOptions.Fields()...)
}
