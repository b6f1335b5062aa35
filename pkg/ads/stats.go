package ads

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatsQuery describes a synchronous statistics request.
type StatsQuery struct {
	Entity           Opt[Entity]
	EntityIDs        Opt[[]string]
	Window           Opt[TimeRange]
	Granularity      Opt[Granularity]
	MetricGroups     Opt[[]MetricFamily]
	Placement        Opt[Placement]
	SegmentationType Opt[SegmentationType]
	Country          Opt[string]
	Platform         Opt[string]
	// Metrics narrows the response to individual metrics. A single metric is
	// sent as "metric", several as "metrics".
	Metrics Opt[[]string]
}

var (
	statsEntityField    = FieldDescriptor{Order: 1, Name: "Entity", Wire: "entity", Kind: KindEnum}
	statsEntityIDsField = FieldDescriptor{Order: 2, Name: "EntityIDs", Wire: "entity_ids", Kind: KindStringList}
	statsWindowField    = FieldDescriptor{
		Order: 3, Name: "Window", Kind: KindTimestampRange,
		RangeWire: [2]string{"start_time", "end_time"},
	}
	statsGranularityField  = FieldDescriptor{Order: 4, Name: "Granularity", Wire: "granularity", Kind: KindEnum}
	statsMetricGroupsField = FieldDescriptor{Order: 5, Name: "MetricGroups", Wire: "metric_groups", Kind: KindEnumList}
	statsPlacementField    = FieldDescriptor{Order: 6, Name: "Placement", Wire: "placement", Kind: KindEnum}
	statsSegmentationField = FieldDescriptor{Order: 7, Name: "SegmentationType", Wire: "segmentation_type", Kind: KindEnum}
	statsCountryField      = FieldDescriptor{Order: 8, Name: "Country", Wire: "country", Kind: KindString}
	statsPlatformField     = FieldDescriptor{Order: 9, Name: "Platform", Wire: "platform", Kind: KindString}
	statsMetricsField      = FieldDescriptor{Order: 10, Name: "Metrics", Wire: "metric", PluralWire: "metrics", Kind: KindStringList}
)

// NewStatsQuery returns a query for entity over ids.
func NewStatsQuery(entity Entity, ids ...string) *StatsQuery {
	q := &StatsQuery{}
	q.Entity.Set(entity)
	q.EntityIDs.Set(ids)

	return q
}

// Between sets the reporting window.
func (q *StatsQuery) Between(start, end time.Time) *StatsQuery {
	q.Window.Set(NewTimeRange(start, end))

	return q
}

// WithGranularity sets the bucket width.
func (q *StatsQuery) WithGranularity(g Granularity) *StatsQuery {
	q.Granularity.Set(g)

	return q
}

// WithMetricGroups selects metric families.
func (q *StatsQuery) WithMetricGroups(groups ...MetricFamily) *StatsQuery {
	q.MetricGroups.Set(groups)

	return q
}

// WithPlacement restricts statistics to one placement.
func (q *StatsQuery) WithPlacement(p Placement) *StatsQuery {
	q.Placement.Set(p)

	return q
}

// SegmentedBy partitions the results along s.
func (q *StatsQuery) SegmentedBy(s SegmentationType) *StatsQuery {
	q.SegmentationType.Set(s)

	return q
}

// WithMetrics narrows the response to the named metrics.
func (q *StatsQuery) WithMetrics(names ...string) *StatsQuery {
	q.Metrics.Set(names)

	return q
}

// Fields implements Fielder.
func (q StatsQuery) Fields() []FieldValue {
	return []FieldValue{
		Field(statsEntityField, q.Entity),
		Field(statsEntityIDsField, q.EntityIDs),
		Field(statsWindowField, q.Window),
		Field(statsGranularityField, q.Granularity),
		Field(statsMetricGroupsField, q.MetricGroups),
		Field(statsPlacementField, q.Placement),
		Field(statsSegmentationField, q.SegmentationType),
		Field(statsCountryField, q.Country),
		Field(statsPlatformField, q.Platform),
		Field(statsMetricsField, q.Metrics),
	}
}

// Validate checks the query against the metric catalogue before it is sent.
func (q StatsQuery) Validate() error {
	entity, ok := q.Entity.Get()
	if !ok {
		return ErrEntityRequired
	}

	ids, ok := q.EntityIDs.Get()
	if !ok || len(ids) == 0 {
		return ErrEntityIDsRequired
	}

	window, ok := q.Window.Get()
	if !ok || window.Start.IsZero() {
		return ErrTimeWindowRequired
	}

	segmentation, _ := q.SegmentationType.Get()

	for _, name := range q.Metrics.OrElse(nil) {
		desc, err := LookupMetric(name)
		if err != nil {
			return err
		}

		if desc.Segmentation != "" && desc.Segmentation != segmentation {
			return fmt.Errorf("%w: %s needs %s", ErrMetricNeedsSegment, name, desc.Segmentation)
		}

		if !desc.AvailableFor(entity) {
			return fmt.Errorf("%w: %s for %s", ErrMetricNotForEntity, name, entity)
		}
	}

	return nil
}

// Segment identifies one value of a segmentation dimension.
type Segment struct {
	Name  string `json:"segment_name"  yaml:"segment_name"`
	Value string `json:"segment_value" yaml:"segment_value"`
}

// StatisticsSnapshot is the metrics of one entity (and one segment, when the
// request was segmented) over the requested window.
type StatisticsSnapshot struct {
	EntityID         string                 `json:"entity_id"                   yaml:"entity_id"`
	Entity           Entity                 `json:"entity"                      yaml:"entity"`
	StartTime        time.Time              `json:"start_time"                  yaml:"start_time"`
	EndTime          time.Time              `json:"end_time"                    yaml:"end_time"`
	Granularity      Granularity            `json:"granularity"                 yaml:"granularity"`
	Placement        Placement              `json:"placement,omitempty"         yaml:"placement,omitempty"`
	SegmentationType SegmentationType       `json:"segmentation_type,omitempty" yaml:"segmentation_type,omitempty"`
	Segment          *Segment               `json:"segment,omitempty"           yaml:"segment,omitempty"`
	Metrics          map[string]MetricValue `json:"metrics"                     yaml:"metrics"`
}

type statsEnvelope struct {
	Data    *[]statsEntity `json:"data"`
	Request struct {
		Params statsParams `json:"params"`
	} `json:"request"`
}

type statsEntity struct {
	ID     string        `json:"id"`
	IDData []statsIDData `json:"id_data"`
}

type statsIDData struct {
	Segment *Segment                   `json:"segment"`
	Metrics map[string]json.RawMessage `json:"metrics"`
}

type statsParams struct {
	StartTime        Timestamp        `json:"start_time"`
	EndTime          Timestamp        `json:"end_time"`
	Granularity      Granularity      `json:"granularity"`
	Entity           Entity           `json:"entity"`
	Placement        Placement        `json:"placement"`
	SegmentationType SegmentationType `json:"segmentation_type"`
}

// DecodeStats decodes a statistics response into one snapshot per entity and
// segment, in response order. Segments are never merged.
func DecodeStats(body []byte) ([]StatisticsSnapshot, error) {
	var env statsEnvelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, &MalformedValueError{Field: "stats", Raw: truncate(body), Err: err}
	}

	if env.Data == nil {
		return nil, &MalformedValueError{Field: "data", Raw: truncate(body)}
	}

	params := env.Request.Params

	var snapshots []StatisticsSnapshot

	for i, entity := range *env.Data {
		for _, idData := range entity.IDData {
			metrics, err := DecodeMetrics(idData.Metrics)
			if err != nil {
				return nil, &PartialDecodeError{Index: i, Err: err}
			}

			snapshots = append(snapshots, StatisticsSnapshot{
				EntityID:         entity.ID,
				Entity:           params.Entity,
				StartTime:        params.StartTime.Time,
				EndTime:          params.EndTime.Time,
				Granularity:      params.Granularity,
				Placement:        params.Placement,
				SegmentationType: params.SegmentationType,
				Segment:          idData.Segment,
				Metrics:          metrics,
			})
		}
	}

	return snapshots, nil
}

// MarshalJSON renders the value the way the API sent it: null, a series, or
// an object of series.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.null:
		return []byte("null"), nil
	case v.IsBreakdown():
		return json.Marshal(v.Breakdown)
	default:
		return json.Marshal(v.Series)
	}
}

// MarshalYAML mirrors MarshalJSON.
func (v MetricValue) MarshalYAML() (interface{}, error) {
	switch {
	case v.null:
		return nil, nil
	case v.IsBreakdown():
		return v.Breakdown, nil
	default:
		return v.Series, nil
	}
}
