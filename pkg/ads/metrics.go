package ads

import (
	"maps"
	"slices"
)

// MetricShape is the wire shape of a metric's value.
type MetricShape int

const (
	// ShapeScalar values are one number per time bucket.
	ShapeScalar MetricShape = iota + 1
	// ShapeBreakdown values map sub-keys such as post_view to per-bucket numbers.
	ShapeBreakdown
)

func (s MetricShape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeBreakdown:
		return "breakdown"
	default:
		return "unknown"
	}
}

// Breakdown sub-keys.
const (
	BreakdownPostView       = "post_view"
	BreakdownPostEngagement = "post_engagement"
	BreakdownAssisted       = "assisted"
	BreakdownTotal          = "total"
	BreakdownOrderQuantity  = "order_quantity"
	BreakdownSaleAmount     = "sale_amount"
)

// MetricDescriptor is a catalogue entry.
type MetricDescriptor struct {
	Name   string
	Family MetricFamily
	// Segmentation, when non-empty, is the segmentation type a request for
	// this metric must carry.
	Segmentation SegmentationType
	Shape        MetricShape
	// PromotedAccounts reports whether the metric is reported for promoted
	// account entities.
	PromotedAccounts bool
}

func scalar(name string, family MetricFamily, promotedAccounts bool) MetricDescriptor {
	return MetricDescriptor{Name: name, Family: family, Shape: ShapeScalar, PromotedAccounts: promotedAccounts}
}

func breakdown(name string, family MetricFamily, seg SegmentationType) MetricDescriptor {
	return MetricDescriptor{Name: name, Family: family, Segmentation: seg, Shape: ShapeBreakdown}
}

var metricCatalog = func() map[string]MetricDescriptor {
	entries := []MetricDescriptor{
		scalar("impressions", FamilyEngagement, true),
		scalar("engagements", FamilyEngagement, true),
		scalar("clicks", FamilyEngagement, true),
		scalar("retweets", FamilyEngagement, false),
		scalar("replies", FamilyEngagement, false),
		scalar("likes", FamilyEngagement, false),
		scalar("follows", FamilyEngagement, true),
		scalar("url_clicks", FamilyEngagement, false),
		scalar("app_clicks", FamilyEngagement, false),
		scalar("card_engagements", FamilyEngagement, false),
		scalar("qualified_impressions", FamilyEngagement, false),
		scalar("tweets_send", FamilyEngagement, false),
		scalar("carousel_swipes", FamilyEngagement, false),
		scalar("poll_card_vote", FamilyEngagement, false),

		scalar("billed_engagements", FamilyBilling, true),
		scalar("billed_charge_local_micro", FamilyBilling, true),

		scalar("video_total_views", FamilyVideo, false),
		scalar("video_views_25", FamilyVideo, false),
		scalar("video_views_50", FamilyVideo, false),
		scalar("video_views_75", FamilyVideo, false),
		scalar("video_views_100", FamilyVideo, false),
		scalar("video_cta_clicks", FamilyVideo, false),
		scalar("video_content_starts", FamilyVideo, false),
		scalar("video_mrc_views", FamilyVideo, false),
		scalar("video_3s100pct_views", FamilyVideo, false),

		scalar("media_views", FamilyMedia, false),
		scalar("media_engagements", FamilyMedia, false),

		breakdown("conversion_purchases", FamilyWebConversion, ""),
		breakdown("conversion_sign_ups", FamilyWebConversion, ""),
		breakdown("conversion_site_visits", FamilyWebConversion, ""),
		breakdown("conversion_downloads", FamilyWebConversion, ""),
		breakdown("conversion_custom", FamilyWebConversion, SegmentConversionTags),

		breakdown("mobile_conversion_spent_credits", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_installs", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_content_views", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_add_to_wishlists", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_checkouts_initiated", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_reservations", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_tutorials_completed", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_achievements_unlocked", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_searches", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_add_to_carts", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_payment_info_additions", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_re_engages", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_shares", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_rates", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_logins", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_updates", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_levels_achieved", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_invites", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_key_page_views", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_sign_ups", FamilyMobileConversion, ""),
		breakdown("mobile_conversion_purchases", FamilyMobileConversion, ""),

		breakdown("mobile_conversion_lifetime_value_purchases", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_sign_ups", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_updates", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_tutorials_completed", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_reservations", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_add_to_carts", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_add_to_wishlists", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_checkouts_initiated", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_levels_achieved", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_achievements_unlocked", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_shares", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_invites", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_payment_info_additions", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_spent_credits", FamilyLifetimeValueConversion, ""),
		breakdown("mobile_conversion_lifetime_value_rates", FamilyLifetimeValueConversion, ""),
	}

	catalog := make(map[string]MetricDescriptor, len(entries))
	for _, e := range entries {
		catalog[e.Name] = e
	}

	return catalog
}()

// LookupMetric returns the catalogue entry for name.
func LookupMetric(name string) (MetricDescriptor, error) {
	d, ok := metricCatalog[name]
	if !ok {
		return MetricDescriptor{}, &UnknownMetricError{Name: name}
	}

	return d, nil
}

// MetricNames lists every catalogued metric, sorted by name.
func MetricNames() []string {
	return slices.Sorted(maps.Keys(metricCatalog))
}

// MetricsInFamily lists the metrics of one family, sorted by name.
func MetricsInFamily(family MetricFamily) []MetricDescriptor {
	var out []MetricDescriptor

	for _, name := range MetricNames() {
		d := metricCatalog[name]
		if d.Family == family {
			out = append(out, d)
		}
	}

	return out
}

// AvailableFor reports whether the metric is reported for entity.
func (d MetricDescriptor) AvailableFor(entity Entity) bool {
	if entity == EntityPromotedAccount {
		return d.PromotedAccounts
	}

	return true
}
