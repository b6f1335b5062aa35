package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command group.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"analytics"},
		Short:   "Fetch analytics",
		Long:    "Fetch synchronous statistics for campaigns, line items and other entities",
	}

	cmd.AddCommand(newStatsFetchCommand())

	return cmd
}

type statsFetchOptions struct {
	entity       string
	ids          []string
	start        string
	end          string
	granularity  string
	metricGroups []string
	placement    string
	segmentation string
	metrics      []string
}

func newStatsFetchCommand() *cobra.Command {
	opts := statsFetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch statistics",
		Long: `Fetch statistics for one or more entities of the selected account.

Tables show the window total of every metric. Use --output json or yaml for
the per-bucket series.`,
		Example: `  adsctl stats fetch --entity campaign --ids c1,c2 --start 2024-01-01 --end 2024-01-08 \
    --granularity day --metric-groups engagement,billing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildStatsQuery(opts)
			if err != nil {
				return err
			}

			accountID, err := requireAccount()
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			snapshots, err := client.Stats().Fetch(context.Background(), accountID, query)
			if err != nil {
				return fmt.Errorf("failed to fetch stats: %w", err)
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), snapshots)
			if rendered {
				return err
			}

			return renderStatsTable(cmd.OutOrStdout(), snapshots)
		},
	}

	cmd.Flags().StringVar(&opts.entity, "entity", "campaign", "entity type (account, campaign, line_item, promoted_tweet, ...)")
	cmd.Flags().StringSliceVar(&opts.ids, "ids", nil, "entity IDs")
	cmd.Flags().StringVar(&opts.start, "start", "", "window start (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&opts.end, "end", "", "window end (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&opts.granularity, "granularity", "day", "bucket size (hour, day, total)")
	cmd.Flags().StringSliceVar(&opts.metricGroups, "metric-groups", []string{"engagement"}, "metric families")
	cmd.Flags().StringVar(&opts.placement, "placement", "", "placement (all_on_twitter, publisher_network)")
	cmd.Flags().StringVar(&opts.segmentation, "segment", "", "segmentation type (age, gender, locations, ...)")
	cmd.Flags().StringSliceVar(&opts.metrics, "metrics", nil, "individual metrics instead of whole families")

	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

//nolint:cyclop // one flag per branch
func buildStatsQuery(opts statsFetchOptions) (*ads.StatsQuery, error) {
	entity, err := ads.ParseEntity(enumArg(opts.entity))
	if err != nil {
		return nil, err
	}

	start, err := parseDate(opts.start)
	if err != nil {
		return nil, err
	}

	end, err := parseDate(opts.end)
	if err != nil {
		return nil, err
	}

	granularity, err := ads.ParseGranularity(enumArg(opts.granularity))
	if err != nil {
		return nil, err
	}

	query := ads.NewStatsQuery(entity, opts.ids...).
		Between(start, end).
		WithGranularity(granularity)

	if len(opts.metricGroups) > 0 {
		families := make([]ads.MetricFamily, 0, len(opts.metricGroups))

		for _, raw := range opts.metricGroups {
			family, err := ads.ParseMetricFamily(enumArg(raw))
			if err != nil {
				return nil, err
			}

			families = append(families, family)
		}

		query.WithMetricGroups(families...)
	}

	if opts.placement != "" {
		placement, err := ads.ParsePlacement(enumArg(opts.placement))
		if err != nil {
			return nil, err
		}

		query.WithPlacement(placement)
	}

	if opts.segmentation != "" {
		segmentation, err := ads.ParseSegmentationType(enumArg(opts.segmentation))
		if err != nil {
			return nil, err
		}

		query.SegmentedBy(segmentation)
	}

	if len(opts.metrics) > 0 {
		query.WithMetrics(opts.metrics...)
	}

	err = query.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid stats request: %w", err)
	}

	return query, nil
}

func renderStatsTable(w io.Writer, snapshots []ads.StatisticsSnapshot) error {
	if len(snapshots) == 0 {
		_, _ = fmt.Fprintln(w, "No statistics found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Entity", "Segment", "Metric", "Total", "Window")

	for _, snapshot := range snapshots {
		segment := ""
		if snapshot.Segment != nil {
			segment = snapshot.Segment.Name
		}

		window := formatWindow(snapshot.StartTime, snapshot.EndTime)

		for _, name := range slices.Sorted(maps.Keys(snapshot.Metrics)) {
			_ = table.Append(snapshot.EntityID, segment, name, metricTotal(snapshot.Metrics[name]), window)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// metricTotal sums a metric across buckets. Null metrics render as "-".
func metricTotal(v ads.MetricValue) string {
	if v.Null() {
		return "-"
	}

	var sum float64
	for _, n := range v.Total() {
		sum += n
	}

	return strconv.FormatFloat(sum, 'f', -1, 64)
}

func formatWindow(start, end time.Time) string {
	if end.IsZero() {
		return ads.FormatTimestamp(start) + " .."
	}

	return ads.FormatTimestamp(start) + " .. " + ads.FormatTimestamp(end)
}

// NewMetricsCommand creates the metrics catalogue command.
func NewMetricsCommand() *cobra.Command {
	var (
		family string
		entity string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List known metrics",
		Long:  "List the metric catalogue with each metric's family, shape and required segmentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := selectMetrics(family, entity)
			if err != nil {
				return err
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), descriptors)
			if rendered {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Metric", "Family", "Shape", "Segmentation")

			for _, d := range descriptors {
				segmentation := ""
				if d.Segmentation != "" {
					segmentation = displayEnum(d.Segmentation.WireName())
				}

				_ = table.Append(d.Name, displayEnum(d.Family.WireName()), d.Shape.String(), segmentation)
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "only metrics of this family")
	cmd.Flags().StringVar(&entity, "entity", "", "only metrics reported for this entity type")

	return cmd
}

func selectMetrics(family, entity string) ([]ads.MetricDescriptor, error) {
	var descriptors []ads.MetricDescriptor

	if family != "" {
		f, err := ads.ParseMetricFamily(enumArg(family))
		if err != nil {
			return nil, err
		}

		descriptors = ads.MetricsInFamily(f)
	} else {
		for _, name := range ads.MetricNames() {
			d, err := ads.LookupMetric(name)
			if err != nil {
				return nil, err
			}

			descriptors = append(descriptors, d)
		}
	}

	if entity == "" {
		return descriptors, nil
	}

	e, err := ads.ParseEntity(enumArg(entity))
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(descriptors, func(d ads.MetricDescriptor) bool {
		return !d.AvailableFor(e)
	}), nil
}
