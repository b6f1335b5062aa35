package ads

// TailoredAudience is an advertiser-supplied user list.
type TailoredAudience struct {
	Resource           `yaml:",inline"`
	Name               string           `json:"name"                   yaml:"name"`
	ListType           AudienceListType `json:"list_type"              yaml:"list_type"`
	AudienceSize       *int64           `json:"audience_size"          yaml:"audience_size"`
	AudienceType       string           `json:"audience_type"          yaml:"audience_type"`
	Targetable         bool             `json:"targetable"             yaml:"targetable"`
	TargetableTypes    []string         `json:"targetable_types"       yaml:"targetable_types"`
	ReasonsNotTargeted []string         `json:"reasons_not_targetable" yaml:"reasons_not_targetable"`
}

// TailoredAudienceQuery filters the tailored audience list.
type TailoredAudienceQuery struct {
	ListOptions

	TailoredAudienceIDs Opt[[]string]
}

var tailoredAudienceIDsField = FieldDescriptor{Order: 1, Name: "TailoredAudienceIDs", Wire: "tailored_audience_ids", Kind: KindStringList}

// Fields implements Fielder.
func (q TailoredAudienceQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(tailoredAudienceIDsField, q.TailoredAudienceIDs),
	}, q.ListOptions.Fields()...)
}

// TailoredAudienceForm is the body of a tailored audience create.
type TailoredAudienceForm struct {
	Name     Opt[string]
	ListType Opt[AudienceListType]
}

var (
	audienceNameField     = FieldDescriptor{Order: 1, Name: "Name", Wire: "name", Kind: KindString}
	audienceListTypeField = FieldDescriptor{Order: 2, Name: "ListType", Wire: "list_type", Kind: KindEnum}
)

// NewTailoredAudienceForm returns a form for a named audience of the given list type.
func NewTailoredAudienceForm(name string, listType AudienceListType) *TailoredAudienceForm {
	f := &TailoredAudienceForm{}
	f.Name.Set(name)
	f.ListType.Set(listType)

	return f
}

// Fields implements Fielder.
func (f TailoredAudienceForm) Fields() []FieldValue {
	return []FieldValue{
		Field(audienceNameField, f.Name),
		Field(audienceListTypeField, f.ListType),
	}
}
