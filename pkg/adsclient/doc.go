// Package adsclient provides the entry point for constructing an Ads API
// client that implements the ads.Client interface.
//
// It layers configuration, HTTP transport and OAuth2 authentication on top of
// the resource interfaces and types defined in the ads package.
//
// Quick start
//
//	client, err := adsclient.NewWithToken(ctx, "https://ads-api.example.com", token)
//	if err != nil {
//		return err
//	}
//
//	campaigns, err := client.Campaigns().List(ctx, accountID,
//		ads.NewCampaignQuery().WithCount(50))
//
// Creating a campaign
//
//	form := ads.NewCampaignForm().
//		WithName("Spring launch").
//		WithCurrency("USD").
//		WithFundingInstrument(fundingInstrumentID).
//		WithTotalBudget(ads.MustMoney("10.00")).
//		WithDailyBudget(ads.MustMoney("1.00"))
//
//	campaign, err := client.Campaigns().Create(ctx, accountID, form)
//
// Only fields set through the form's setters are sent; an explicit false is
// sent as "false".
//
// Statistics
//
//	query := ads.NewStatsQuery(ads.EntityCampaign, campaign.ID).
//		Between(start, end).
//		WithGranularity(ads.GranularityDay).
//		WithMetricGroups(ads.FamilyEngagement, ads.FamilyBilling)
//
//	snapshots, err := client.Stats().Fetch(ctx, accountID, query)
//
// Authentication
//
// Provide one of AccessToken, ClientID plus ClientSecret, or RefreshToken in
// ads.Config. Without TokenURL the token endpoint is APIEndpoint + "/oauth2/token".
// A 401 response triggers one token refresh and one retry of the request.
package adsclient
