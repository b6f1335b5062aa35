package ads

import (
	"encoding/json"
)

// Enum is implemented by every enumerated wire type.
type Enum interface {
	WireName() string
}

// enumSet is the closed set of wire names an enum accepts.
type enumSet[E ~string] struct {
	name   string
	values map[string]E
	order  []E
}

func newEnumSet[E ~string](name string, values ...E) enumSet[E] {
	set := enumSet[E]{
		name:   name,
		values: make(map[string]E, len(values)),
		order:  values,
	}

	for _, v := range values {
		set.values[string(v)] = v
	}

	return set
}

func (s enumSet[E]) parse(raw string) (E, error) {
	v, ok := s.values[raw]
	if !ok {
		var zero E

		return zero, &UnrecognizedEnumValueError{Enum: s.name, Value: raw}
	}

	return v, nil
}

func (s enumSet[E]) all() []E {
	out := make([]E, len(s.order))
	copy(out, s.order)

	return out
}

func unmarshalEnum[E ~string](data []byte, dst *E, set enumSet[E]) error {
	if string(data) == "null" {
		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return &MalformedValueError{Field: set.name, Raw: string(data), Err: err}
	}

	v, err := set.parse(raw)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}

// EntityStatus is the serving status of an entity.
type EntityStatus string

const (
	EntityStatusActive  EntityStatus = "ACTIVE"
	EntityStatusPaused  EntityStatus = "PAUSED"
	EntityStatusDraft   EntityStatus = "DRAFT"
	EntityStatusDeleted EntityStatus = "DELETED"
)

var entityStatuses = newEnumSet("entity_status",
	EntityStatusActive, EntityStatusPaused, EntityStatusDraft, EntityStatusDeleted)

func (e EntityStatus) WireName() string { return string(e) }

// ParseEntityStatus decodes a wire token.
func ParseEntityStatus(raw string) (EntityStatus, error) { return entityStatuses.parse(raw) }

func (e *EntityStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, e, entityStatuses)
}

// ApprovalStatus is the review state of an account or promoted tweet.
type ApprovalStatus string

const (
	ApprovalStatusAccepted    ApprovalStatus = "ACCEPTED"
	ApprovalStatusUnderReview ApprovalStatus = "UNDER_REVIEW"
	ApprovalStatusRejected    ApprovalStatus = "REJECTED"
)

var approvalStatuses = newEnumSet("approval_status",
	ApprovalStatusAccepted, ApprovalStatusUnderReview, ApprovalStatusRejected)

func (a ApprovalStatus) WireName() string { return string(a) }

// ParseApprovalStatus decodes a wire token.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) { return approvalStatuses.parse(raw) }

func (a *ApprovalStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, a, approvalStatuses)
}

// FundingInstrumentType identifies how a funding instrument is paid.
type FundingInstrumentType string

const (
	FundingInstrumentCreditCard       FundingInstrumentType = "CREDIT_CARD"
	FundingInstrumentInsertionOrder   FundingInstrumentType = "INSERTION_ORDER"
	FundingInstrumentAgencyCreditLine FundingInstrumentType = "AGENCY_CREDIT_LINE"
	FundingInstrumentCreditLine       FundingInstrumentType = "CREDIT_LINE"
)

var fundingInstrumentTypes = newEnumSet("funding_instrument_type",
	FundingInstrumentCreditCard, FundingInstrumentInsertionOrder,
	FundingInstrumentAgencyCreditLine, FundingInstrumentCreditLine)

func (f FundingInstrumentType) WireName() string { return string(f) }

// ParseFundingInstrumentType decodes a wire token.
func ParseFundingInstrumentType(raw string) (FundingInstrumentType, error) {
	return fundingInstrumentTypes.parse(raw)
}

func (f *FundingInstrumentType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, f, fundingInstrumentTypes)
}

// ProductType is the ad product a line item buys.
type ProductType string

const (
	ProductPromotedTweets   ProductType = "PROMOTED_TWEETS"
	ProductPromotedAccounts ProductType = "PROMOTED_ACCOUNT"
	ProductPromotedTrends   ProductType = "PROMOTED_TREND"
)

var productTypes = newEnumSet("product_type",
	ProductPromotedTweets, ProductPromotedAccounts, ProductPromotedTrends)

func (p ProductType) WireName() string { return string(p) }

// ParseProductType decodes a wire token.
func ParseProductType(raw string) (ProductType, error) { return productTypes.parse(raw) }

func (p *ProductType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, p, productTypes)
}

// Placement is where a line item may serve. The wire names keep the
// platform's historical spelling.
type Placement string

const (
	PlacementAllOnPlatform    Placement = "ALL_ON_TWITTER"
	PlacementPublisherNetwork Placement = "PUBLISHER_NETWORK"
	PlacementTimelines        Placement = "TWITTER_TIMELINE"
	PlacementProfiles         Placement = "TWITTER_PROFILE"
	PlacementSearch           Placement = "TWITTER_SEARCH"
	PlacementSpotlight        Placement = "SPOTLIGHT"
	PlacementTrend            Placement = "TREND"
)

var placements = newEnumSet("placement",
	PlacementAllOnPlatform, PlacementPublisherNetwork, PlacementTimelines,
	PlacementProfiles, PlacementSearch, PlacementSpotlight, PlacementTrend)

func (p Placement) WireName() string { return string(p) }

// ParsePlacement decodes a wire token.
func ParsePlacement(raw string) (Placement, error) { return placements.parse(raw) }

func (p *Placement) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, p, placements)
}

// Objective is the campaign goal a line item optimizes for.
type Objective string

const (
	ObjectiveAwareness       Objective = "AWARENESS"
	ObjectiveEngagements     Objective = "TWEET_ENGAGEMENTS"
	ObjectiveVideoViews      Objective = "VIDEO_VIEWS"
	ObjectiveWebsiteClicks   Objective = "WEBSITE_CLICKS"
	ObjectiveWebsiteConvert  Objective = "WEBSITE_CONVERSIONS"
	ObjectiveAppInstalls     Objective = "APP_INSTALLS"
	ObjectiveAppEngagements  Objective = "APP_ENGAGEMENTS"
	ObjectiveFollowers       Objective = "FOLLOWERS"
	ObjectivePreRollViews    Objective = "PREROLL_VIEWS"
	ObjectiveReach           Objective = "REACH"
	ObjectiveEngagementsLead Objective = "LEAD_GENERATION"
)

var objectives = newEnumSet("objective",
	ObjectiveAwareness, ObjectiveEngagements, ObjectiveVideoViews, ObjectiveWebsiteClicks,
	ObjectiveWebsiteConvert, ObjectiveAppInstalls, ObjectiveAppEngagements, ObjectiveFollowers,
	ObjectivePreRollViews, ObjectiveReach, ObjectiveEngagementsLead)

func (o Objective) WireName() string { return string(o) }

// ParseObjective decodes a wire token.
func ParseObjective(raw string) (Objective, error) { return objectives.parse(raw) }

func (o *Objective) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, o, objectives)
}

// TargetingType names the dimension a targeting criterion restricts.
type TargetingType string

const (
	TargetingTypeLocation         TargetingType = "LOCATION"
	TargetingTypeGender           TargetingType = "GENDER"
	TargetingTypeAge              TargetingType = "AGE"
	TargetingTypePlatform         TargetingType = "PLATFORM"
	TargetingTypeDevice           TargetingType = "DEVICE"
	TargetingTypeLanguage         TargetingType = "LANGUAGE"
	TargetingTypeInterest         TargetingType = "INTEREST"
	TargetingTypeFollowersOfUser  TargetingType = "FOLLOWERS_OF_USER"
	TargetingTypeSimilarFollowers TargetingType = "SIMILAR_TO_FOLLOWERS_OF_USER"
	TargetingTypeBroadKeyword     TargetingType = "BROAD_KEYWORD"
	TargetingTypePhraseKeyword    TargetingType = "PHRASE_KEYWORD"
	TargetingTypeTailoredAudience TargetingType = "TAILORED_AUDIENCE"
	TargetingTypeNetworkOperator  TargetingType = "NETWORK_OPERATOR"
)

var targetingTypes = newEnumSet("targeting_type",
	TargetingTypeLocation, TargetingTypeGender, TargetingTypeAge, TargetingTypePlatform, TargetingTypeDevice,
	TargetingTypeLanguage, TargetingTypeInterest, TargetingTypeFollowersOfUser, TargetingTypeSimilarFollowers,
	TargetingTypeBroadKeyword, TargetingTypePhraseKeyword, TargetingTypeTailoredAudience, TargetingTypeNetworkOperator)

func (t TargetingType) WireName() string { return string(t) }

// ParseTargetingType decodes a wire token.
func ParseTargetingType(raw string) (TargetingType, error) { return targetingTypes.parse(raw) }

func (t *TargetingType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, t, targetingTypes)
}

// LocationType is the granularity of a targetable location.
type LocationType string

const (
	LocationCountries   LocationType = "COUNTRIES"
	LocationRegions     LocationType = "REGIONS"
	LocationMetros      LocationType = "METROS"
	LocationCities      LocationType = "CITIES"
	LocationPostalCodes LocationType = "POSTAL_CODES"
)

var locationTypes = newEnumSet("location_type",
	LocationCountries, LocationRegions, LocationMetros, LocationCities, LocationPostalCodes)

func (l LocationType) WireName() string { return string(l) }

// ParseLocationType decodes a wire token.
func ParseLocationType(raw string) (LocationType, error) { return locationTypes.parse(raw) }

func (l *LocationType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, l, locationTypes)
}

// AudienceListType is the identifier kind a tailored audience was built from.
type AudienceListType string

const (
	AudienceListEmail       AudienceListType = "EMAIL"
	AudienceListDeviceID    AudienceListType = "DEVICE_ID"
	AudienceListAccountID   AudienceListType = "TWITTER_ID"
	AudienceListHandle      AudienceListType = "HANDLE"
	AudienceListPhoneNumber AudienceListType = "PHONE_NUMBER"
)

var audienceListTypes = newEnumSet("list_type",
	AudienceListEmail, AudienceListDeviceID, AudienceListAccountID,
	AudienceListHandle, AudienceListPhoneNumber)

func (a AudienceListType) WireName() string { return string(a) }

// ParseAudienceListType decodes a wire token.
func ParseAudienceListType(raw string) (AudienceListType, error) {
	return audienceListTypes.parse(raw)
}

func (a *AudienceListType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, a, audienceListTypes)
}

// Entity is the kind of object a statistics request reports on.
type Entity string

const (
	EntityAccount           Entity = "ACCOUNT"
	EntityFundingInstrument Entity = "FUNDING_INSTRUMENT"
	EntityCampaign          Entity = "CAMPAIGN"
	EntityLineItem          Entity = "LINE_ITEM"
	EntityPromotedTweet     Entity = "PROMOTED_TWEET"
	EntityPromotedAccount   Entity = "PROMOTED_ACCOUNT"
	EntityMediaCreative     Entity = "MEDIA_CREATIVE"
	EntityOrganicTweet      Entity = "ORGANIC_TWEET"
)

var entities = newEnumSet("entity",
	EntityAccount, EntityFundingInstrument, EntityCampaign, EntityLineItem,
	EntityPromotedTweet, EntityPromotedAccount, EntityMediaCreative, EntityOrganicTweet)

func (e Entity) WireName() string { return string(e) }

// ParseEntity decodes a wire token.
func ParseEntity(raw string) (Entity, error) { return entities.parse(raw) }

func (e *Entity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, e, entities)
}

// Granularity is the width of one statistics time bucket.
type Granularity string

const (
	GranularityHour  Granularity = "HOUR"
	GranularityDay   Granularity = "DAY"
	GranularityTotal Granularity = "TOTAL"
)

var granularities = newEnumSet("granularity", GranularityHour, GranularityDay, GranularityTotal)

func (g Granularity) WireName() string { return string(g) }

// ParseGranularity decodes a wire token.
func ParseGranularity(raw string) (Granularity, error) { return granularities.parse(raw) }

func (g *Granularity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, g, granularities)
}

// MetricFamily groups related statistics metrics. Families double as the
// metric_groups request parameter.
type MetricFamily string

const (
	FamilyEngagement              MetricFamily = "ENGAGEMENT"
	FamilyBilling                 MetricFamily = "BILLING"
	FamilyVideo                   MetricFamily = "VIDEO"
	FamilyMedia                   MetricFamily = "MEDIA"
	FamilyWebConversion           MetricFamily = "WEB_CONVERSION"
	FamilyMobileConversion        MetricFamily = "MOBILE_CONVERSION"
	FamilyLifetimeValueConversion MetricFamily = "LIFE_TIME_VALUE_MOBILE_CONVERSION"
)

var metricFamilies = newEnumSet("metric_group",
	FamilyEngagement, FamilyBilling, FamilyVideo, FamilyMedia,
	FamilyWebConversion, FamilyMobileConversion, FamilyLifetimeValueConversion)

func (m MetricFamily) WireName() string { return string(m) }

// ParseMetricFamily decodes a wire token.
func ParseMetricFamily(raw string) (MetricFamily, error) { return metricFamilies.parse(raw) }

func (m *MetricFamily) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, m, metricFamilies)
}

// MetricFamilies lists every family in declaration order.
func MetricFamilies() []MetricFamily { return metricFamilies.all() }

// SegmentationType is a dimension statistics can be partitioned along.
type SegmentationType string

const (
	SegmentAge              SegmentationType = "AGE"
	SegmentAppStoreCategory SegmentationType = "APP_STORE_CATEGORY"
	SegmentAudiences        SegmentationType = "AUDIENCES"
	SegmentConversionTags   SegmentationType = "CONVERSION_TAGS"
	SegmentDevices          SegmentationType = "DEVICES"
	SegmentGender           SegmentationType = "GENDER"
	SegmentInterests        SegmentationType = "INTERESTS"
	SegmentKeywords         SegmentationType = "KEYWORDS"
	SegmentLanguages        SegmentationType = "LANGUAGES"
	SegmentLocations        SegmentationType = "LOCATIONS"
	SegmentMetros           SegmentationType = "METROS"
	SegmentPlatforms        SegmentationType = "PLATFORMS"
	SegmentPlatformVersions SegmentationType = "PLATFORM_VERSIONS"
	SegmentPostalCodes      SegmentationType = "POSTAL_CODES"
	SegmentRegions          SegmentationType = "REGIONS"
)

var segmentationTypes = newEnumSet("segmentation_type",
	SegmentAge, SegmentAppStoreCategory, SegmentAudiences, SegmentConversionTags, SegmentDevices,
	SegmentGender, SegmentInterests, SegmentKeywords, SegmentLanguages, SegmentLocations,
	SegmentMetros, SegmentPlatforms, SegmentPlatformVersions, SegmentPostalCodes, SegmentRegions)

func (s SegmentationType) WireName() string { return string(s) }

// ParseSegmentationType decodes a wire token.
func ParseSegmentationType(raw string) (SegmentationType, error) {
	return segmentationTypes.parse(raw)
}

func (s *SegmentationType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, segmentationTypes)
}
