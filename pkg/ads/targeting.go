package ads

// TargetingCriterion restricts which users a line item reaches.
type TargetingCriterion struct {
	Resource       `yaml:",inline"`
	AccountID      string        `json:"account_id"      yaml:"account_id"`
	LineItemID     string        `json:"line_item_id"    yaml:"line_item_id"`
	Name           string        `json:"name"            yaml:"name"`
	TargetingType  TargetingType `json:"targeting_type"  yaml:"targeting_type"`
	TargetingValue string        `json:"targeting_value" yaml:"targeting_value"`
	Operator       string        `json:"operator_type"   yaml:"operator_type"`
}

// TargetingCriteriaQuery filters the targeting criteria of one or more line items.
type TargetingCriteriaQuery struct {
	ListOptions

	LineItemIDs           Opt[[]string]
	TargetingCriterionIDs Opt[[]string]
}

var (
	targetingLineItemsField = FieldDescriptor{Order: 1, Name: "LineItemIDs", Wire: "line_item_ids", Kind: KindStringList}
	targetingIDsField       = FieldDescriptor{Order: 2, Name: "TargetingCriterionIDs", Wire: "targeting_criterion_ids", Kind: KindStringList}
)

// NewTargetingCriteriaQuery returns a query for the given line items.
func NewTargetingCriteriaQuery(lineItemIDs ...string) *TargetingCriteriaQuery {
	q := &TargetingCriteriaQuery{}
	q.LineItemIDs.Set(lineItemIDs)

	return q
}

// Fields implements Fielder.
func (q TargetingCriteriaQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(targetingLineItemsField, q.LineItemIDs),
		Field(targetingIDsField, q.TargetingCriterionIDs),
	}, q.ListOptions.Fields()...)
}

// TargetingCriterionForm is the body of a targeting criterion create.
type TargetingCriterionForm struct {
	LineItemID     Opt[string]
	TargetingType  Opt[TargetingType]
	TargetingValue Opt[string]
	Operator       Opt[string]
}

var (
	targetingLineItemField = FieldDescriptor{Order: 1, Name: "LineItemID", Wire: "line_item_id", Kind: KindString}
	targetingTypeField     = FieldDescriptor{Order: 2, Name: "TargetingType", Wire: "targeting_type", Kind: KindEnum}
	targetingValueField    = FieldDescriptor{Order: 3, Name: "TargetingValue", Wire: "targeting_value", Kind: KindString}
	targetingOperatorField = FieldDescriptor{Order: 4, Name: "Operator", Wire: "operator_type", Kind: KindString}
)

// NewTargetingCriterionForm returns a form targeting value by kind on a line item.
func NewTargetingCriterionForm(lineItemID string, kind TargetingType, value string) *TargetingCriterionForm {
	f := &TargetingCriterionForm{}
	f.LineItemID.Set(lineItemID)
	f.TargetingType.Set(kind)
	f.TargetingValue.Set(value)

	return f
}

// Fields implements Fielder.
func (f TargetingCriterionForm) Fields() []FieldValue {
	return []FieldValue{
		Field(targetingLineItemField, f.LineItemID),
		Field(targetingTypeField, f.TargetingType),
		Field(targetingValueField, f.TargetingValue),
		Field(targetingOperatorField, f.Operator),
	}
}

// TargetingLocation is one targetable place.
type TargetingLocation struct {
	Name           string       `json:"name"            yaml:"name"`
	CountryCode    string       `json:"country_code"    yaml:"country_code"`
	LocationType   LocationType `json:"location_type"   yaml:"location_type"`
	TargetingValue string       `json:"targeting_value" yaml:"targeting_value"`
	TargetingType  string       `json:"targeting_type"  yaml:"targeting_type"`
}

// TargetingLocationQuery searches targetable locations.
type TargetingLocationQuery struct {
	ListOptions

	Query        Opt[string]
	CountryCode  Opt[string]
	LocationType Opt[LocationType]
}

var (
	locationQueryField   = FieldDescriptor{Order: 1, Name: "Query", Wire: "q", Kind: KindString}
	locationCountryField = FieldDescriptor{Order: 2, Name: "CountryCode", Wire: "country_code", Kind: KindString}
	locationTypeField    = FieldDescriptor{Order: 3, Name: "LocationType", Wire: "location_type", Kind: KindEnum}
)

// Fields implements Fielder.
func (q TargetingLocationQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(locationQueryField, q.Query),
		Field(locationCountryField, q.CountryCode),
		Field(locationTypeField, q.LocationType),
	}, q.ListOptions.Fields()...)
}
