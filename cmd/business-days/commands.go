package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/business-days/internal/calendar"
	"github.com/username/business-days/pkg/dateutil"
)

const dateHelp = "YYYY-MM-DD, DD.MM.YYYY, today, tomorrow or yesterday"

func addCmd() *cobra.Command {
	var from, strategy string

	cmd := &cobra.Command{
		Use:   "add N",
		Short: "Move a date by N business days (negative N moves back)",
		Example: "  business-days add 5 --from 2024-03-01\n" +
			"  business-days add --strategy include -- -3",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("N must be an integer, got %q", args[0])
			}
			return shift(cmd, n, from, strategy)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "today", "Start date ("+dateHelp+")")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "exclude", "Whether a business-day start counts as the first day: include or exclude")

	return cmd
}

func subCmd() *cobra.Command {
	var from, strategy string

	cmd := &cobra.Command{
		Use:   "sub N",
		Short: "Move a date back by N business days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("N must be an integer, got %q", args[0])
			}
			return shift(cmd, -n, from, strategy)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "today", "Start date ("+dateHelp+")")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "exclude", "Whether a business-day start counts as the first day: include or exclude")

	return cmd
}

func shift(cmd *cobra.Command, n int, from, strategyName string) error {
	strategy, err := calendar.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	m, err := initializeManipulator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	start, err := dateutil.ParseDateIn(from, m.Location())
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}

	m.SetStartDate(start)
	result := m.AddBusinessDays(n, strategy)

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify DATE...",
		Short: "Print the type of each date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManipulator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			for _, arg := range args {
				t, err := dateutil.ParseDateIn(arg, m.Location())
				if err != nil {
					return err
				}
				printDay(cmd, calendar.DateOf(t, m.Location()), m.TypeOfDay(t))
			}
			return nil
		},
	}
}

func rangeCmd() *cobra.Command {
	var list string

	cmd := &cobra.Command{
		Use:   "range FROM TO | range FROM..TO",
		Short: "Count business days between two dates, bounds included",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManipulator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			from, to, err := parseBounds(args, m.Location())
			if err != nil {
				return err
			}
			m.SetStartDate(from)
			m.SetEndDate(to)

			count, err := m.BusinessDays()
			if err != nil {
				return err
			}
			period, _ := m.Range()
			fmt.Fprintf(cmd.OutOrStdout(), "Business days in %s: %d\n", period, count)

			var days []calendar.Date
			switch strings.ToLower(list) {
			case "", "none":
				return nil
			case "business":
				days, err = m.BusinessDaysDate()
			case "non-working", "nonworking", "off":
				days, err = m.NonWorkingDays()
			default:
				return fmt.Errorf("--list must be business, non-working or none, got %q", list)
			}
			if err != nil {
				return err
			}

			for _, d := range days {
				printDay(cmd, d, m.Registry().Classify(d))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", "none", "List days: business, non-working or none")

	return cmd
}

// parseBounds accepts either two dates or a single "from..to" argument
func parseBounds(args []string, loc *time.Location) (from, to time.Time, err error) {
	if len(args) == 1 {
		start, end, err := dateutil.ParseRange(args[0])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return calendar.DateOf(start, nil).Time(loc), calendar.DateOf(end, nil).Time(loc), nil
	}

	if from, err = dateutil.ParseDateIn(args[0], loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = dateutil.ParseDateIn(args[1], loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func monthCmd() *cobra.Command {
	var showDays bool

	cmd := &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Summarize a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q", args[1])
			}

			m, err := initializeManipulator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			info := m.Registry().MonthInfo(year, time.Month(month))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", info.Month, info.Year)
			fmt.Fprintf(out, "  Business days:  %d\n", info.BusinessDays)
			fmt.Fprintf(out, "  Holidays:       %d\n", info.Holidays)
			fmt.Fprintf(out, "  Free days:      %d\n", info.FreeDays)
			fmt.Fprintf(out, "  Free weekdays:  %d\n", info.FreeWeekdays)

			if showDays {
				for _, day := range info.Days {
					printDay(cmd, day.Date, day.Type)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showDays, "days", "d", false, "Print every day of the month")

	return cmd
}

func weekendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekend",
		Short: "Print the resolved free weekdays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManipulator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			names := make([]string, 0, 7)
			for _, wd := range m.Registry().FreeWeekdays() {
				names = append(names, wd.String())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timezone: %s\n", m.Timezone())
			fmt.Fprintf(out, "Locale:   %s\n", m.Locale())
			fmt.Fprintf(out, "Weekend:  %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}

func printDay(cmd *cobra.Command, d calendar.Date, dayType calendar.DayType) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %s\n", d, d.Weekday(), dayType)
}
