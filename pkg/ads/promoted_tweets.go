package ads

// PromotedTweet associates a tweet with a line item.
type PromotedTweet struct {
	Resource       `yaml:",inline"`
	LineItemID     string         `json:"line_item_id"    yaml:"line_item_id"`
	TweetID        string         `json:"tweet_id"        yaml:"tweet_id"`
	EntityStatus   EntityStatus   `json:"entity_status"   yaml:"entity_status"`
	ApprovalStatus ApprovalStatus `json:"approval_status" yaml:"approval_status"`
	Paused         bool           `json:"paused"          yaml:"paused"`
}

// PromotedTweetQuery filters the promoted tweet list.
type PromotedTweetQuery struct {
	ListOptions

	LineItemIDs      Opt[[]string]
	PromotedTweetIDs Opt[[]string]
}

var (
	promotedLineItemsField = FieldDescriptor{Order: 1, Name: "LineItemIDs", Wire: "line_item_ids", Kind: KindStringList}
	promotedIDsField       = FieldDescriptor{Order: 2, Name: "PromotedTweetIDs", Wire: "promoted_tweet_ids", Kind: KindStringList}
)

// Fields implements Fielder.
func (q PromotedTweetQuery) Fields() []FieldValue {
	return append([]FieldValue{
		Field(promotedLineItemsField, q.LineItemIDs),
		Field(promotedIDsField, q.PromotedTweetIDs),
	}, q.ListOptions.Fields()...)
}

// PromotedTweetForm promotes one or more tweets under a line item.
type PromotedTweetForm struct {
	LineItemID Opt[string]
	TweetIDs   Opt[[]string]
}

var (
	promotedLineItemField = FieldDescriptor{Order: 1, Name: "LineItemID", Wire: "line_item_id", Kind: KindString}
	promotedTweetIDsField = FieldDescriptor{Order: 2, Name: "TweetIDs", Wire: "tweet_ids", Kind: KindStringList}
)

// NewPromotedTweetForm returns a form promoting tweetIDs under lineItemID.
func NewPromotedTweetForm(lineItemID string, tweetIDs ...string) *PromotedTweetForm {
	f := &PromotedTweetForm{}
	f.LineItemID.Set(lineItemID)
	f.TweetIDs.Set(tweetIDs)

	return f
}

// Fields implements Fielder.
func (f PromotedTweetForm) Fields() []FieldValue {
	return []FieldValue{
		Field(promotedLineItemField, f.LineItemID),
		Field(promotedTweetIDsField, f.TweetIDs),
	}
}
