// Package ads provides types, interfaces, and helpers for working with an
// advertising management REST API.
//
// # Overview
//
// The ads package defines the domain types (Account, Campaign, LineItem,
// FundingInstrument, TargetingCriterion, TailoredAudience, PromotedTweet,
// StatisticsSnapshot) and the interfaces of the resource clients. The
// adsclient package provides the concrete implementation; most consumers
// import adsclient to construct a client and then use the interfaces here.
//
//	cli, err := adsclient.New(ctx, &ads.Config{
//	  APIEndpoint: "https://ads-api.example.com",
//	  AccessToken: token,
//	})
//	if err != nil { log.Fatal(err) }
//
//	page, err := cli.Campaigns().List(ctx, accountID, ads.NewCampaignQuery().WithCount(50))
//
// # Queries and forms
//
// Every query and form is a plain struct of Opt fields backed by a
// declarative FieldDescriptor table. EncodeQuery and EncodeForm emit set
// fields only, in declared order, so the encoded output is independent of the
// order setters were called in. Opt distinguishes "not set" from "set to the
// zero value": a form with Paused explicitly set to false sends paused=false,
// while a form that never touched Paused sends nothing and leaves the server
// value unchanged.
//
// Money amounts are carried in micro-units. Conversion truncates digits past
// the sixth decimal place. Timestamps are sent in UTC at second precision.
//
// # Pagination
//
// List endpoints return a ListResponse holding the page data plus the
// optional next_cursor and total_count. PaginationIterator and FetchAllPages
// follow cursors sequentially:
//
//	all, err := ads.FetchAllPages(ctx, ads.PageFunc[ads.Campaign](
//	  func(ctx context.Context, cursor string) (*ads.ListResponse[ads.Campaign], error) {
//	    q := ads.NewCampaignQuery()
//	    if cursor != "" { q.Cursor.Set(cursor) }
//	    return cli.Campaigns().List(ctx, accountID, q)
//	  }), nil)
//
// # Statistics
//
// StatsQuery is validated against a static metric catalogue before it is
// sent. Responses decode into one StatisticsSnapshot per entity and segment.
// Scalar metrics are per-bucket series; breakdown metrics expose their
// post_view, post_engagement and assisted components as sent, without
// checking them against the total.
//
// # Errors
//
// Remote failures surface as ResponseError with the API's error list.
// Encode and decode failures are typed (UnsupportedValueKindError,
// MalformedValueError, UnrecognizedEnumValueError, UnknownMetricError,
// PartialDecodeError) and match their sentinels with errors.Is.
package ads
