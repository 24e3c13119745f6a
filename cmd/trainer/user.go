package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/speedreading/trainer/internal/account"
)

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	userCmd.AddCommand(newUserCreateCommand())
	userCmd.AddCommand(newUserSetTierCommand())
	return userCmd
}

func newUserCreateCommand() *cobra.Command {
	var name string
	var administrator bool

	cmd := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Register a free-tier user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			email := args[0]
			if name == "" {
				name, _, _ = strings.Cut(email, "@")
			}
			return runWithApp(ctx, func(a *app) error {
				var user *account.User
				if administrator {
					user = &account.User{
						Email:        email,
						Name:         name,
						Role:         account.RoleAdministrator,
						Tier:         account.TierFree,
						RegisteredAt: time.Now().UTC(),
					}
					if err := a.users.Create(ctx, user); err != nil {
						return err
					}
				} else {
					var err error
					user, err = a.accounts.Register(ctx, email, name)
					if err != nil {
						return err
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created user %d %s (role %s, tier %s)\n", user.ID, user.Email, user.Role, user.Tier)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name, defaults to the local part of the email")
	cmd.Flags().BoolVar(&administrator, "administrator", false, "Create the user with the administrator role")
	return cmd
}

func newUserSetTierCommand() *cobra.Command {
	var actorEmail string

	cmd := &cobra.Command{
		Use:   "set-tier EMAIL TIER",
		Short: "Change the subscription tier of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tier, err := account.ParseTier(args[1])
			if err != nil {
				return err
			}
			return runWithApp(ctx, func(a *app) error {
				actor, err := a.findUser(ctx, actorEmail)
				if err != nil {
					return err
				}
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				updated, err := a.accounts.ChangeTier(ctx, *actor, user.ID, tier)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User %s is on the %s tier\n", updated.Email, updated.Tier)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&actorEmail, "as", "", "Email of the administrator making the change")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func newPlanCommand() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan change request commands",
	}
	planCmd.AddCommand(newPlanRequestCommand())
	planCmd.AddCommand(newPlanListCommand())
	planCmd.AddCommand(newPlanResolveCommand())
	planCmd.AddCommand(newPlanCancelCommand())
	return planCmd
}

func newPlanRequestCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "request EMAIL upgrade|downgrade",
		Short: "Request a tier change for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := account.ParsePlanChangeKind(args[1])
			if err != nil {
				return err
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, args[0])
				if err != nil {
					return err
				}
				req, err := a.accounts.RequestPlanChange(ctx, *user, kind, notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s request %d for %s\n", req.Kind, req.ID, user.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes attached to the request")
	return cmd
}

func newPlanListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending plan change requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runWithApp(ctx, func(a *app) error {
				pending, err := account.NewDBPlanChangeRepository(a.db).ListPending(ctx)
				if err != nil {
					return fmt.Errorf("requests.ListPending() > %w", err)
				}
				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					_, _ = fmt.Fprintln(out, "No pending requests.")
					return nil
				}
				for _, req := range pending {
					_, _ = fmt.Fprintf(out, "  %d  user %d  %s  %s\n", req.ID, req.UserID, req.Kind, req.RequestedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
}

func newPlanResolveCommand() *cobra.Command {
	var actorEmail string
	var reject bool
	var notes string

	cmd := &cobra.Command{
		Use:   "resolve REQUEST_ID",
		Short: "Approve or reject a pending plan change request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			requestID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid request id %q: %w", args[0], err)
			}
			return runWithApp(ctx, func(a *app) error {
				actor, err := a.findUser(ctx, actorEmail)
				if err != nil {
					return err
				}
				req, err := a.accounts.ResolvePlanChange(ctx, *actor, requestID, !reject, notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Request %d is %s\n", req.ID, req.Status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&actorEmail, "as", "", "Email of the administrator resolving the request")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the request instead of approving it")
	cmd.Flags().StringVar(&notes, "notes", "", "Resolution notes")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func newPlanCancelCommand() *cobra.Command {
	var userEmail string

	cmd := &cobra.Command{
		Use:   "cancel REQUEST_ID",
		Short: "Withdraw a pending plan change request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			requestID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid request id %q: %w", args[0], err)
			}
			return runWithApp(ctx, func(a *app) error {
				user, err := a.findUser(ctx, userEmail)
				if err != nil {
					return err
				}
				if err := a.accounts.CancelPlanChange(ctx, *user, requestID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Request %d is cancelled\n", requestID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userEmail, "user", "", "Email of the user who made the request")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
