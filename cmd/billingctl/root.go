package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/adapter/persistence"
	"project_billing/internal/domain/entities"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/usecase"
	"project_billing/internal/usecase/interfaces"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs. openStore is swapped in tests.
type app struct {
	cfg       config.Config
	log       *logger.Logger
	openStore func(ctx context.Context) (interfaces.IStore, func(), error)
}

func newApp() *app {
	a := &app{cfg: config.Load()}
	a.openStore = func(ctx context.Context) (interfaces.IStore, func(), error) {
		return persistence.Open(ctx, a.cfg, a.log)
	}
	return a
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "billingctl",
		Short:         "Operator tooling for the project billing service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.log != nil {
				return nil
			}
			log, err := logger.New(a.cfg.LogMode)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.StoreDriver, "store", a.cfg.StoreDriver, "store driver (memory, dynamodb, postgres)")

	root.AddCommand(newExpireQuotesCmd(a), newSummaryCmd(a), newTokenCmd(a))
	return root
}

func newExpireQuotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expire-quotes",
		Short: "Mark every sent quote past its expiry date as EXPIRED",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := usecase.NewQuoteUseCase(store, a.log).ExpireOverdue(cmd.Context())
			if err != nil {
				return fmt.Errorf("expire quotes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d quote(s)\n", n)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var businessID, projectID string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the billing summary of a project as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			s, err := usecase.NewBillingSummaryUseCase(store, a.log).
				Get(cmd.Context(), entities.SystemActor(businessID), projectID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), response.FromBillingSummary(s))
		},
	}
	cmd.Flags().StringVar(&businessID, "business", "", "business id")
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	_ = cmd.MarkFlagRequired("business")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	var (
		actorID     string
		businessID  string
		role        string
		permissions []string
		ttl         time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor := entities.Actor{ID: actorID, BusinessID: businessID, Role: entities.ParseRole(role)}
			for _, p := range permissions {
				actor.Permissions = append(actor.Permissions, entities.Permission(p))
			}
			token, err := middleware.IssueToken(a.cfg.JWTSecret, actor, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "actor id (token subject)")
	cmd.Flags().StringVar(&businessID, "business", "", "business id")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleViewer), "actor role")
	cmd.Flags().StringSliceVar(&permissions, "permission", nil, "extra permission (repeatable)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("business")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
