package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

func newRootCmd() *cobra.Command {
	var jsonOutput bool
	root := &cobra.Command{
		Use:           "timetablectl",
		Short:         "Inspect university timetables offline",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newCheckCmd(&jsonOutput),
		newMetricsCmd(&jsonOutput),
		newBookableCmd(&jsonOutput),
		newRankCmd(&jsonOutput),
		newTokenCmd(),
	)
	return root
}

func newCheckCmd(jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "check <fixture>",
		Short: "List double bookings and workload violations in a schedule",
		Example: `  timetablectl check semester.yaml
  timetablectl check --json semester.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			analysis := service.AnalyzeSchedule(f.Schedule, models.NewReferenceData(f.Tables))
			out := cmd.OutOrStdout()
			if *jsonOutput {
				return writeJSON(out, analysis.Conflicts)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EVENT\tTYPE\tMESSAGE")
			for _, c := range analysis.Conflicts {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.EventID, c.Type, c.Message)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d events, %d double-booked, %d over workload\n",
				analysis.EventCount, analysis.Counts.DoubleBooking, analysis.Counts.Workload)
			return nil
		},
	}
}

func newMetricsCmd(jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <fixture>",
		Short: "Print faculty balance, room utilization and student overload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			metrics := timetable.CalculateScheduleMetrics(f.Schedule, models.NewReferenceData(f.Tables))
			out := cmd.OutOrStdout()
			if *jsonOutput {
				return writeJSON(out, metrics)
			}
			fmt.Fprintf(out, "faculty load stddev:       %.2f\n", metrics.FacultyLoadScore)
			fmt.Fprintf(out, "room utilization (%%):      %.2f\n", metrics.RoomUtilizationScore)
			fmt.Fprintf(out, "student overload instances: %d\n", metrics.StudentOverloadInstances)
			return nil
		},
	}
}

func newBookableCmd(jsonOutput *bool) *cobra.Command {
	var (
		day, start, now, tz string
	)
	cmd := &cobra.Command{
		Use:   "bookable",
		Short: "Check whether a club slot can be booked",
		Example: `  timetablectl bookable --day Saturday --start 10:00
  timetablectl bookable --day Monday --start 18:00 --now 2025-01-06T20:00:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}
			at := time.Now().In(loc)
			if now != "" {
				if at, err = time.ParseInLocation("2006-01-02T15:04:05", now, loc); err != nil {
					return fmt.Errorf("invalid --now, want 2006-01-02T15:04:05: %w", err)
				}
			}
			svc := service.NewClubBookingService(nil, nil, nil, timetable.FixedClock(at), nil, nil, nil)
			slot, err := svc.Bookability(dto.SlotQuery{Day: day, StartTime: start})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if *jsonOutput {
				return writeJSON(out, slot)
			}
			verdict := "not bookable"
			if slot.Bookable {
				verdict = "bookable"
			}
			fmt.Fprintf(out, "%s %s: %s (%s)\n", slot.Day, slot.StartTime, verdict, slot.Reason)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Monday through Saturday")
	cmd.Flags().StringVar(&start, "start", "", "start time HH:mm")
	cmd.Flags().StringVar(&now, "now", "", "evaluate as of this local time instead of the current time")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "campus time zone")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newRankCmd(jsonOutput *bool) *cobra.Command {
	var goal string
	cmd := &cobra.Command{
		Use:   "rank <fixture>",
		Short: "Rank the candidate timetables in a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			svc := service.NewTimetableService(nil, f, nil, nil, nil, nil, 0)
			resp, err := svc.Evaluate(cmd.Context(), dto.EvaluateTimetablesRequest{
				Goal:       models.RankingGoal(goal),
				Candidates: f.Candidates,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if *jsonOutput {
				return writeJSON(out, resp)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tNAME\tFACULTY LOAD\tROOM UTIL %\tOVERLOADS\tCONFLICTS")
			for _, tt := range resp.Timetables {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%d\t%d\n", tt.Rank, tt.Name,
					tt.Metrics.FacultyLoadScore, tt.Metrics.RoomUtilizationScore, tt.Metrics.StudentOverloadInstances, tt.Counts.Total)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&goal, "goal", string(models.RankBalanced), "faculty_balance, room_utilization, student_wellbeing or balanced")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject, role, name string
		ttl                 time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token using JWT_SECRET from the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Env == config.EnvProduction {
				return fmt.Errorf("refusing to mint tokens with ENV=production")
			}
			expiry := cfg.JWT.Expiration
			if ttl > 0 {
				expiry = ttl
			}
			tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, Expiry: expiry})
			token, expiresAt, err := tokens.IssueToken(subject, models.UserRole(role), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "user id (faculty, coordinator or admin id)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "admin, faculty, coordinator or student")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to JWT_EXPIRATION")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
