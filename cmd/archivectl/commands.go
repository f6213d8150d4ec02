package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/source"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/internal/usecase/graph"
	"github.com/johnquangdev/meeting-archive/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-archive/internal/usecase/query"
	"github.com/johnquangdev/meeting-archive/pkg/config"
	"github.com/johnquangdev/meeting-archive/pkg/dates"
	"github.com/johnquangdev/meeting-archive/pkg/jwt"
	"github.com/johnquangdev/meeting-archive/pkg/logger"
)

const defaultArchivePath = "data/meetings.json"

var (
	archivePath string
	verbose     bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "archivectl",
		Short:        "Inspect a meeting archive document",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&archivePath, "file", "f", defaultArchivePath, "archive JSON document")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log normalization events to stderr")

	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(peopleCmd())
	rootCmd.AddCommand(topicsCmd())
	rootCmd.AddCommand(graphCmd())
	rootCmd.AddCommand(meetingsCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

// loadSnapshot reads and normalizes the archive named by --file
func loadSnapshot(ctx context.Context) (*archive.Snapshot, error) {
	zl := zap.NewNop()
	if verbose {
		l, err := logger.New(config.LogConfig{Level: "debug"}, false)
		if err != nil {
			return nil, err
		}
		zl = l
	}

	src := source.NewFileSource(archivePath, 0)
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return archive.BuildSnapshot(data, ingest.NewParser(zl), src.Name(), archive.TriggerManual)
}

// dateFlags parses --start/--end
func dateFlags(start, end string) (*entities.Date, *entities.Date, error) {
	from, err := dateFlag("start", start)
	if err != nil {
		return nil, nil, err
	}
	to, err := dateFlag("end", end)
	if err != nil {
		return nil, nil, err
	}
	if err := query.ValidateRange(from, to); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func dateFlag(name, raw string) (*entities.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show archive counts and rejected records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			bold := color.New(color.Bold)

			bold.Fprintf(w, "Archive %s\n", snap.Source)
			fmt.Fprintf(w, "  meetings:     %d\n", len(snap.Meetings))
			fmt.Fprintf(w, "  decisions:    %d\n", len(snap.Decisions))
			fmt.Fprintf(w, "  action items: %d\n", len(snap.ActionItems))
			fmt.Fprintf(w, "  people:       %d\n", snap.Entities.Persons.Len())
			fmt.Fprintf(w, "  topics:       %d\n", snap.Entities.Topics.Len())
			fmt.Fprintf(w, "  workgroups:   %d\n", snap.Entities.Workgroups.Len())

			if len(snap.Diagnostics) == 0 {
				color.New(color.FgGreen).Fprintln(w, "No rejected records")
				return nil
			}
			color.New(color.FgYellow).Fprintf(w, "Rejected records: %d\n", len(snap.Diagnostics))
			red := color.New(color.FgRed)
			for _, d := range snap.Diagnostics {
				red.Fprintf(w, "  #%d: %s\n", d.Index, d.Reason)
			}
			return nil
		},
	}
}

func peopleCmd() *cobra.Command {
	var workgroup string

	cmd := &cobra.Command{
		Use:   "people",
		Short: "List people with their meeting counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			people := snap.Entities.Persons.All()
			if workgroup != "" {
				people = snap.Entities.PeopleForWorkgroup(workgroup)
			}

			w := cmd.OutOrStdout()
			for _, p := range people {
				fmt.Fprintf(w, "%s\t%d meetings\t%s\n", p.Name, len(p.MeetingIDs), strings.Join(p.WorkgroupIDs, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workgroup, "workgroup", "", "only people seen in this workgroup id")
	return cmd
}

func topicsCmd() *cobra.Command {
	var workgroup string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List topics with their meeting counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			topics := snap.Entities.Topics.All()
			if workgroup != "" {
				topics = snap.Entities.TopicsForWorkgroup(workgroup)
			}

			w := cmd.OutOrStdout()
			for _, t := range topics {
				fmt.Fprintf(w, "%s\t%d meetings\n", t.Name, len(t.MeetingIDs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workgroup, "workgroup", "", "only topics covered by this workgroup id")
	return cmd
}

func graphCmd() *cobra.Command {
	var (
		kind      string
		workgroup string
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print a participation or topic graph as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateFlags(start, end)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			var g *entities.Graph
			if workgroup == "" && from == nil && to == nil {
				g, err = snap.Graph(entities.GraphKind(kind))
			} else {
				g, err = graph.FilterGraph(entities.GraphKind(kind), snap.Meetings, graph.GraphFilter{
					Workgroup: workgroup,
					StartDate: from,
					EndDate:   to,
				})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(entities.GraphKindParticipation), "participation or topics")
	cmd.Flags().StringVar(&workgroup, "workgroup", "", "workgroup id or name")
	cmd.Flags().StringVar(&start, "start", "", "first meeting date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last meeting date, YYYY-MM-DD")
	return cmd
}

func meetingsCmd() *cobra.Command {
	var (
		workgroup string
		start     string
		end       string
		tags      []string
		canonical bool
	)

	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "Print filtered meetings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateFlags(start, end)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			meetings := query.FilterMeetings(snap.Meetings, query.MeetingFilter{
				Workgroup: workgroup,
				StartDate: from,
				EndDate:   to,
				Tags:      tags,
			})
			if canonical {
				return writeJSON(cmd.OutOrStdout(), ingest.ToRecords(meetings))
			}
			return writeJSON(cmd.OutOrStdout(), meetings)
		},
	}

	cmd.Flags().StringVar(&workgroup, "workgroup", "", "workgroup id or name")
	cmd.Flags().StringVar(&start, "start", "", "first meeting date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last meeting date, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "topic tag; repeat or comma-separate to match any")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "emit records in the archive input shape")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_ACCESS_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch role {
			case jwt.RoleAdmin, jwt.RoleReader:
			default:
				return fmt.Errorf("role must be %s or %s", jwt.RoleAdmin, jwt.RoleReader)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.AccessExpiry
			}

			token, err := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer).
				GenerateAccessTokenWithExpiry(subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "archivectl", "token subject")
	cmd.Flags().StringVar(&role, "role", jwt.RoleAdmin, "admin or reader")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime; defaults to JWT_ACCESS_EXPIRY")
	return cmd
}
