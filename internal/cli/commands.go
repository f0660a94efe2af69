package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"counsel/internal/app"
	"counsel/internal/audit"
	auditkafka "counsel/internal/audit/store/kafka"
	jwttoken "counsel/internal/jwt_token"
	"counsel/internal/platform/config"
	id "counsel/pkg/domain"
	"counsel/pkg/requestcontext"
)

// MigrateCmd applies the embedded Postgres schema.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if a.DB == nil {
					return errors.New("database.url is not configured")
				}
				applied, err := a.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, name := range applied {
					fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("APPLIED"), name)
				}
				return nil
			})
		},
	}
}

// SeedCmd writes the demo prisoner, lawyers and cases.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write demo prisoner, lawyers and cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if a.DB == nil {
					return errors.New("seeding only persists with database.url configured")
				}
				if err := a.SeedDemo(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprint("seeded demo data"))
				return nil
			})
		},
	}
}

// PendingCmd lists a lawyer's pending applications oldest first.
func PendingCmd() *cobra.Command {
	var lawyer string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List a lawyer's pending applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			lawyerID, err := id.ParseLawyerID(lawyer)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				notifications, err := a.Projector.GetNotifications(cmd.Context(), lawyerID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(notifications) == 0 {
					fmt.Fprintln(out, "no pending applications")
					return nil
				}
				for _, n := range notifications {
					name := n.PrisonerName
					if n.Degraded {
						name = color.New(color.FgYellow).Sprint(name)
					}
					fmt.Fprintf(out, "%s  %s  %s\n", n.ApplicationID, n.AppliedAt.Format(time.RFC3339), name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lawyer, "lawyer", "", "lawyer id")
	_ = cmd.MarkFlagRequired("lawyer")
	return cmd
}

// TokenCmd signs a bearer token with the configured key.
func TokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a prisoner, lawyer or admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch requestcontext.Role(role) {
			case requestcontext.RolePrisoner, requestcontext.RoleLawyer, requestcontext.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Auth.Enabled() {
				return errors.New("auth.signing_key is not configured")
			}
			token, err := jwttoken.NewService(cfg.Auth.SigningKey, cfg.Auth.Issuer).GenerateAccessToken(subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "prisoner or lawyer id")
	cmd.Flags().StringVar(&role, "role", string(requestcontext.RoleLawyer), "prisoner, lawyer or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

// AuditCmd groups audit trail commands.
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}
	cmd.AddCommand(auditTailCmd())
	return cmd
}

func auditTailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tail",
		Short: "Stream audit events from the Kafka topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Audit.Sink != config.BackendKafka {
				return fmt.Errorf("audit tail needs audit.sink=kafka, have %q", cfg.Audit.Sink)
			}
			out := cmd.OutOrStdout()
			return auditkafka.Tail(cmd.Context(), cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic, func(e audit.Event) error {
				fmt.Fprintln(out, formatEvent(e))
				return nil
			})
		},
	}
}

func formatEvent(e audit.Event) string {
	action := e.Action
	switch e.Action {
	case audit.ActionApplicationAccepted:
		action = color.New(color.FgGreen).Sprint(action)
	case audit.ActionApplicationRejected:
		action = color.New(color.FgRed).Sprint(action)
	case audit.ActionCaseLinkFailed:
		action = color.New(color.FgYellow).Sprint(action)
	}
	line := fmt.Sprintf("%s  %-22s  %s", e.Timestamp.Format(time.RFC3339), action, e.Subject)
	if e.Reason != "" {
		line += "  (" + e.Reason + ")"
	}
	return line
}
