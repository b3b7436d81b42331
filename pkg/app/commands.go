package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/filter"
	"foodkeeper/pkg/inventory"
	"foodkeeper/pkg/tui"
	"foodkeeper/pkg/version"
)

// newHomeCommand is the explicit form of the root command.
func newHomeCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the most urgent items and the full inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHome(cmd, sess)
		},
	}
}

// runHome prints the most urgent strip and the full grid.
func runHome(cmd *cobra.Command, sess *session) error {
	items, err := listItems(cmd, sess)
	if err != nil {
		return err
	}
	r := sess.renderer()
	urgent := inventory.MostUrgent(items, sess.now, sess.cfg.Display.MostUrgentLimit)
	rows := expiry.PairWidth(items, sess.cfg.Display.RowWidth)
	fmt.Fprintln(cmd.OutOrStdout(), r.Home(urgent, rows, "", ""))
	return nil
}

// newListCommand searches by category and tag.
func newListCommand(sess *session) *cobra.Command {
	var mains, subs, tags []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered by category and tag",
		Long: `Lists items as a grid of cards.

Values of one filter are alternatives; different filters must all match.

Example:
  foodkeeper list --main snack --main drink --tag "Sweet food"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := buildSelection(map[filter.Dimension][]string{
				filter.Main: mains,
				filter.Sub:  subs,
				filter.Tag:  tags,
			})
			if err != nil {
				return err
			}
			items, err := listItems(cmd, sess)
			if err != nil {
				return err
			}
			matched := inventory.Search(items, sel)
			sess.logger.Debug("list", zap.Stringer("filter", sel), zap.Int("matched", len(matched)))

			r := sess.renderer()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, r.Styles.Muted.Render("filter: "+sel.String()))
			fmt.Fprintln(out, r.Grid(expiry.PairWidth(matched, sess.cfg.Display.RowWidth), ""))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&mains, "main", nil, "Main category key (snack, dry, drink, other)")
	cmd.Flags().StringSliceVar(&subs, "sub", nil, "Sub category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag")
	return cmd
}

// buildSelection toggles every requested value on, rejecting values the
// filter does not offer.
func buildSelection(values map[filter.Dimension][]string) (filter.Selection, error) {
	sel := filter.New()
	for _, dim := range filter.Dimensions {
		offered := map[string]bool{}
		for _, opt := range filter.Options(dim) {
			offered[opt.Value] = true
		}
		for _, v := range values[dim] {
			if !offered[v] {
				return sel, fmt.Errorf("%w: unknown %s %q", errUsage, dim.Label(), v)
			}
			if !sel.Has(dim, v) {
				sel = sel.ToggleValue(dim, v)
			}
		}
	}
	return sel, nil
}

// newUrgentCommand groups items by urgency bucket.
func newUrgentCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "urgent",
		Short: "Group expired and soon expiring items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := listItems(cmd, sess)
			if err != nil {
				return err
			}
			r := sess.renderer()
			sections := inventory.UrgentSections(items, sess.now, sess.cfg.Display.RowWidth)
			fmt.Fprintln(cmd.OutOrStdout(), r.Sections(sections, ""))
			return nil
		},
	}
}

// newShowCommand prints one card and its details.
func newShowCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			item, err := sess.svc.Get(ctx, args[0])
			if errors.Is(err, inventory.ErrNotFound) {
				return fmt.Errorf("item %q not found", args[0])
			}
			if err != nil {
				return err
			}
			r := sess.renderer()
			fmt.Fprintln(cmd.OutOrStdout(), r.Card(item, false))
			fmt.Fprint(cmd.OutOrStdout(), r.Details(item))
			return nil
		},
	}
}

// newCalendarCommand prints the monthly expiry calendar.
func newCalendarCommand(sess *session) *cobra.Command {
	var month string
	var day int
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show how many items expire on each day of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, mon := sess.now.Local().Year(), sess.now.Local().Month()
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("%w: --month wants YYYY-MM, got %q", errUsage, month)
				}
				year, mon = t.Year(), t.Month()
			}
			items, err := listItems(cmd, sess)
			if err != nil {
				return err
			}
			r := sess.renderer()
			out := cmd.OutOrStdout()
			fmt.Fprint(out, r.Calendar(year, mon, inventory.Calendar(items, year, mon)))
			if day > 0 {
				onDay := inventory.ItemsOn(items, year, mon, day)
				fmt.Fprintln(out)
				fmt.Fprintln(out, r.Styles.SectionHeader.Render(fmt.Sprintf("%d-%d-%d", day, int(mon), year)))
				fmt.Fprintln(out, r.Grid(expiry.PairWidth(onDay, sess.cfg.Display.RowWidth), ""))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show as YYYY-MM (default: current month)")
	cmd.Flags().IntVar(&day, "day", 0, "Also list the items expiring on this day of the month")
	return cmd
}

// newAddCommand validates and stores new items.
func newAddCommand(sess *session) *cobra.Command {
	var (
		item    inventory.Item
		expires string
		inDays  int
		from    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and add items",
		Long: `Adds one item described by flags, or every item of a dataset file
given with --from, and prints the stored cards. A batch is added entirely
or not at all. The inventory is not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			var batch []inventory.Item
			if from != "" {
				loaded, err := inventory.LoadDatasetFile(from, sess.now)
				if err != nil {
					return err
				}
				batch = loaded
			} else {
				switch {
				case expires != "":
					t, err := parseInstant(expires)
					if err != nil {
						return fmt.Errorf("%w: --expires wants RFC3339 or YYYY-MM-DD, got %q", errUsage, expires)
					}
					item.ExpireDate = t
				case cmd.Flags().Changed("in-days"):
					item.ExpireDate = inventory.EndOfDay(sess.now, inDays)
				}
				batch = []inventory.Item{item}
			}

			added, err := sess.svc.AddBatch(ctx, batch)
			if err != nil {
				if inventory.IsValidation(err) {
					return fmt.Errorf("%w: %v", errUsage, err)
				}
				return err
			}
			r := sess.renderer()
			out := cmd.OutOrStdout()
			for _, it := range added {
				fmt.Fprintf(out, "added %s\n", it.ID)
			}
			rows := expiry.PairWidth(added, sess.cfg.Display.RowWidth)
			fmt.Fprintln(out, r.Grid(rows, ""))
			return nil
		},
	}
	cmd.Flags().StringVar(&item.MainCategory, "main", "", "Main category key")
	cmd.Flags().StringVar(&item.SubCategory, "sub", "", "Sub category")
	cmd.Flags().StringVar(&item.Tag, "tag", "", "Tag")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry date, RFC3339 or YYYY-MM-DD")
	cmd.Flags().IntVar(&inDays, "in-days", 0, "Expire at the end of the day this many days from now")
	cmd.Flags().IntVar(&item.Amount, "amount", 1, "Amount")
	cmd.Flags().StringVar(&item.Image, "image", "", "Image URI")
	cmd.Flags().StringVar(&from, "from", "", "Add every item of this JSON or YAML file")
	cmd.MarkFlagsMutuallyExclusive("expires", "in-days")
	cmd.MarkFlagsMutuallyExclusive("from", "main")
	return cmd
}

// newDitchExpiredCommand clears expired items and prints the history.
func newDitchExpiredCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ditch-expired",
		Short: "Ditch every expired item and show the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			removed, err := sess.svc.DitchExpired(ctx, sess.now)
			if err != nil {
				return err
			}
			sess.logger.Info("ditched expired items", zap.Int("count", len(removed)))
			history, err := sess.svc.History(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), sess.renderer().History(history))
			return nil
		},
	}
}

// newBrowseCommand starts the interactive browser.
func newBrowseCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and manage the inventory interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := tui.New(sess.svc, tui.Options{
				Width:           sess.cfg.Display.Width,
				RowWidth:        sess.cfg.Display.RowWidth,
				MostUrgentLimit: sess.cfg.Display.MostUrgentLimit,
				Clock:           sess.clock,
				Logger:          sess.logger.Named("browse"),
			})
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("browser stopped: %w", err)
			}
			return nil
		},
	}
}

// newVersionCommand prints the build version.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// The version never needs the inventory.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "foodkeeper version %s\n", version.Version())
		},
	}
}

// listItems snapshots the inventory for one subcommand.
func listItems(cmd *cobra.Command, sess *session) ([]inventory.Item, error) {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	return sess.svc.List(ctx)
}
