package ads

import (
	"context"
	"time"
)

// AccountsClient reads advertising accounts.
type AccountsClient interface {
	List(ctx context.Context, query *AccountQuery) (*ListResponse[Account], error)
	ListAll(ctx context.Context, query *AccountQuery) ([]Account, error)
	Get(ctx context.Context, accountID string) (*Account, error)
}

// CampaignsClient manages campaigns of one account.
type CampaignsClient interface {
	List(ctx context.Context, accountID string, query *CampaignQuery) (*ListResponse[Campaign], error)
	ListAll(ctx context.Context, accountID string, query *CampaignQuery) ([]Campaign, error)
	Get(ctx context.Context, accountID, campaignID string) (*Campaign, error)
	Create(ctx context.Context, accountID string, form *CampaignForm) (*Campaign, error)
	Update(ctx context.Context, accountID, campaignID string, form *CampaignForm) (*Campaign, error)
	Delete(ctx context.Context, accountID, campaignID string) (*Campaign, error)
}

// LineItemsClient manages line items of one account.
type LineItemsClient interface {
	List(ctx context.Context, accountID string, query *LineItemQuery) (*ListResponse[LineItem], error)
	ListAll(ctx context.Context, accountID string, query *LineItemQuery) ([]LineItem, error)
	Get(ctx context.Context, accountID, lineItemID string) (*LineItem, error)
	Create(ctx context.Context, accountID string, form *LineItemForm) (*LineItem, error)
	Update(ctx context.Context, accountID, lineItemID string, form *LineItemForm) (*LineItem, error)
	Delete(ctx context.Context, accountID, lineItemID string) (*LineItem, error)
}

// FundingInstrumentsClient reads funding instruments.
type FundingInstrumentsClient interface {
	List(ctx context.Context, accountID string, query *FundingInstrumentQuery) (*ListResponse[FundingInstrument], error)
	Get(ctx context.Context, accountID, fundingInstrumentID string) (*FundingInstrument, error)
}

// TargetingCriteriaClient manages line item targeting.
type TargetingCriteriaClient interface {
	List(ctx context.Context, accountID string, query *TargetingCriteriaQuery) (*ListResponse[TargetingCriterion], error)
	Get(ctx context.Context, accountID, criterionID string) (*TargetingCriterion, error)
	Create(ctx context.Context, accountID string, form *TargetingCriterionForm) (*TargetingCriterion, error)
	Delete(ctx context.Context, accountID, criterionID string) (*TargetingCriterion, error)
	Locations(ctx context.Context, query *TargetingLocationQuery) (*ListResponse[TargetingLocation], error)
}

// TailoredAudiencesClient manages tailored audiences.
type TailoredAudiencesClient interface {
	List(ctx context.Context, accountID string, query *TailoredAudienceQuery) (*ListResponse[TailoredAudience], error)
	Get(ctx context.Context, accountID, audienceID string) (*TailoredAudience, error)
	Create(ctx context.Context, accountID string, form *TailoredAudienceForm) (*TailoredAudience, error)
	Delete(ctx context.Context, accountID, audienceID string) (*TailoredAudience, error)
}

// PromotedTweetsClient manages promoted tweets.
type PromotedTweetsClient interface {
	List(ctx context.Context, accountID string, query *PromotedTweetQuery) (*ListResponse[PromotedTweet], error)
	Get(ctx context.Context, accountID, promotedTweetID string) (*PromotedTweet, error)
	Create(ctx context.Context, accountID string, form *PromotedTweetForm) ([]PromotedTweet, error)
	Delete(ctx context.Context, accountID, promotedTweetID string) (*PromotedTweet, error)
}

// StatsClient fetches synchronous analytics.
type StatsClient interface {
	Fetch(ctx context.Context, accountID string, query *StatsQuery) ([]StatisticsSnapshot, error)
}

// CampaignManagementClients groups the entity hierarchy clients.
type CampaignManagementClients interface {
	Accounts() AccountsClient
	FundingInstruments() FundingInstrumentsClient
	Campaigns() CampaignsClient
	LineItems() LineItemsClient
	PromotedTweets() PromotedTweetsClient
}

// AudienceClients groups the targeting clients.
type AudienceClients interface {
	TargetingCriteria() TargetingCriteriaClient
	TailoredAudiences() TailoredAudiencesClient
}

// Client is the main interface for interacting with the Ads API.
type Client interface {
	CampaignManagementClients
	AudienceClients
	Stats() StatsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the configuration for the Ads API client.
type Config struct {
	// APIEndpoint is the base URL of the API (e.g. "https://ads-api.example.com").
	// adsclient.New trims a trailing slash and adds "https://" when no scheme
	// is present.
	APIEndpoint string
	// APIVersion is the path prefix of every request; defaults to the
	// current major version.
	APIVersion string

	// Authentication options (provide one)
	// AccessToken is a pre-issued bearer token.
	AccessToken string
	// ClientID and ClientSecret select the OAuth2 client_credentials grant
	// against TokenURL.
	ClientID     string
	ClientSecret string
	TokenURL     string
	// RefreshToken switches the OAuth2 flow to the refresh_token grant.
	RefreshToken string

	HTTPTimeout time.Duration
	Debug       bool
	Logger      Logger
	UserAgent   string

	// Retry options. Retries apply to GET, PUT and DELETE only and are off
	// when RetryMax is zero.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Interceptors, when set, run around every HTTP call the client makes.
	Interceptors *InterceptorChain
}
