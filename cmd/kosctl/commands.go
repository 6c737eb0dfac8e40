package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/segyhp/kos-management/internal/auth"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/internal/service"
	"github.com/segyhp/kos-management/migrations"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Up(ctx, db)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Println("Database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	}
}

func paymentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "update-statuses",
		Short: "Rewrite legacy statuses and mark past-due payments and expenses overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			loc := a.cfg.Location()
			payments := service.NewPaymentService(
				repository.NewPaymentRepository(db),
				repository.NewTenantRepository(db),
				repository.NewRoomRepository(db),
				loc,
			)
			result, err := payments.SweepOverdue(ctx)
			if err != nil {
				return err
			}

			// the expense sweep does not enqueue or notify
			expenses := service.NewExpenseService(repository.NewExpenseRepository(db), nil, nil, a.cfg.Notification.ExpenseReminderDays, loc)
			result.ExpensesOverdue, err = expenses.MarkOverdue(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Legacy statuses rewritten: %d\n", result.LegacyRewritten)
			fmt.Printf("Payments marked overdue:   %d\n", result.MarkedOverdue)
			fmt.Printf("Expenses marked overdue:   %d\n", result.ExpensesOverdue)
			return nil
		},
	})

	return cmd
}

func notificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Admin notification maintenance",
	}

	var days int
	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete notifications older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if !cmd.Flags().Changed("days") {
				days = a.cfg.Notification.RetentionDays
			}

			notifications := service.NewNotificationService(repository.NewNotificationRepository(db), a.cfg.Location())
			deleted, err := notifications.DeleteOlderThan(ctx, days)
			if err != nil {
				return err
			}

			fmt.Printf("Deleted %d notifications\n", deleted)
			return nil
		},
	}
	cleanup.Flags().IntVar(&days, "days", service.DefaultRetentionDays, "delete notifications created before this many days ago")
	cmd.AddCommand(cleanup)

	return cmd
}

func expensesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Operational expense commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "notify [expense-id]",
		Short: "Send the due reminder for one expense to every admin now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			dispatcher := service.NewNotificationDispatcher(
				repository.NewUserRepository(db),
				repository.NewNotificationRepository(db),
			)
			// runs inline, so no queue
			expenses := service.NewExpenseService(repository.NewExpenseRepository(db), dispatcher, nil, a.cfg.Notification.ExpenseReminderDays, a.cfg.Location())

			sent, err := expenses.SendReminder(ctx, id)
			if err != nil {
				return err
			}
			if !sent {
				fmt.Printf("Expense %d skipped (disabled, paid or already notified today)\n", id)
				return nil
			}
			fmt.Printf("Expense %d reminder sent\n", id)
			return nil
		},
	})

	return cmd
}

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Back-office user management",
	}

	var name, email, phone, password string
	create := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			// token issuing is not used here
			users := service.NewAuthService(repository.NewUserRepository(db), auth.NewTokenManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL))
			user, err := users.CreateAdmin(ctx, name, email, phone, password)
			if err != nil {
				return err
			}

			fmt.Printf("Created admin %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&phone, "phone", "", "WhatsApp number for admin digests")
	create.Flags().StringVar(&password, "password", "", "initial password, at least 8 characters")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)

	return cmd
}
