package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"creditdesk/internal/models"
	"creditdesk/internal/views"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible transactions",
		Long:  `List the transactions this session may see: admins see the whole queue, users only their own requests.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, closeStore, err := openAdapter(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := adapter.Refresh(cmd.Context()); err != nil {
				return err
			}

			sortBy, _ := cmd.Flags().GetString("sort")
			txs := adapter.Transactions()
			if sortBy != "" {
				key := views.SortKey(sortBy)
				if !key.Valid() {
					return fmt.Errorf("unknown sort key %q", sortBy)
				}
				txs = adapter.ToggleSort(key)
				if desc, _ := cmd.Flags().GetBool("desc"); desc {
					txs = adapter.ToggleSort(key)
				}
			}

			printTransactions(txs)
			return nil
		},
	}

	cmd.Flags().String("sort", "", "sort column: createdAt, user, description, amount, status")
	cmd.Flags().Bool("desc", false, "sort descending")
	return cmd
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <amount> [description...]",
		Short: "Submit a new transaction request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			description := strings.Join(args[1:], " ")

			adapter, closeStore, err := openAdapter(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			tx, err := adapter.Submit(cmd.Context(), amount, description)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s ($%s, %s)\n", tx.ID, tx.Amount.StringFixed(2), tx.Status)
			return nil
		},
	}
}

func approveCmd() *cobra.Command {
	return decideCmd("approve", models.StatusApproved)
}

func rejectCmd() *cobra.Command {
	return decideCmd("reject", models.StatusRejected)
}

func decideCmd(verb string, target models.TransactionStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, closeStore, err := openAdapter(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			// Load the record first so the confirmation prompt can show what
			// is being decided.
			if err := adapter.Refresh(cmd.Context()); err != nil {
				return err
			}

			if _, err := adapter.Decide(cmd.Context(), args[0], target); err != nil {
				return err
			}
			return nil
		},
	}
}

func creditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credit",
		Short: "Show your available credit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, closeStore, err := openAdapter(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			balance, err := adapter.Credit(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("$%s\n", balance.StringFixed(2))
			return nil
		},
	}
}

func printTransactions(txs []models.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tUSER\tDESCRIPTION\tAMOUNT\tSTATUS\tID")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\t%s\n",
			tx.CreatedAt.Format("2006-01-02"), tx.Owner, tx.Description,
			tx.Amount.StringFixed(2), tx.Status, tx.ID)
	}
	w.Flush()
}
