package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/analytics"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

type dashboardOptions struct {
	query analytics.Query
	sort  string
}

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(opts *GlobalOptions) *cobra.Command {
	dopts := &dashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard [planning.pdf...]",
		Short: "List stored weeks with filters, sorting and paging",
		Long: `List stored weeks with filters, sorting and paging.

Plannings given as arguments are imported first. Without --sort the most
recent imports come first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts, dopts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&dopts.query.Person, "person", "", "Only this person")
	f.IntVar(&dopts.query.Year, "year", 0, "Only this ISO week-year")
	f.IntVar(&dopts.query.Month, "month", 0, "Only weeks whose Thursday falls in this month (1-12)")
	f.StringVar(&dopts.query.Search, "search", "", "Fuzzy match on person or week")
	f.StringVar(&dopts.sort, "sort", "", "Sort column: person, week, hours or recorded_at")
	f.BoolVar(&dopts.query.Desc, "desc", false, "Sort descending")
	f.IntVar(&dopts.query.Page, "page", 1, "Page number")
	f.IntVar(&dopts.query.PageSize, "page-size", analytics.DefaultPageSize, "Rows per page")

	return cmd
}

func runDashboard(cmd *cobra.Command, opts *GlobalOptions, dopts *dashboardOptions, paths []string) error {
	q := dopts.query
	if q.Month < 0 || q.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if dopts.sort != "" {
		key, err := analytics.ParseSortKey(dopts.sort)
		if err != nil {
			return err
		}
		q.Sort = key
	}

	ctx := commandContext(cmd)
	sess, err := openSession(ctx, opts, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	if _, err := sess.importFiles(ctx, paths); err != nil {
		return err
	}

	records, err := sess.store.List(ctx, store.Filter{Person: q.Person, Year: q.Year})
	if err != nil {
		return err
	}
	page := analytics.Dashboard(records, q)

	out := cmd.OutOrStdout()
	if page.TotalItems == 0 {
		_, err := fmt.Fprintln(out, "Aucune donnée pour ces filtres.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERSONNE\tSEMAINE\tHEURES\tENREGISTRÉ LE")
	for _, r := range page.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Person, r.Week, schedule.FormatHours(r.Hours), r.RecordedAt.Format("02/01/2006 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\nPage %d/%d, %d semaines, %s heures au total\n",
		page.Page, page.TotalPages, page.TotalItems, schedule.FormatHours(page.TotalHours))
	return err
}
