package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/iho/gowallet/internal/adapter/http/dto"
)

type cliOptions struct {
	baseURL string
	timeout time.Duration
	asJSON  bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "gowallet",
		Short:         "GoWallet CLI tool",
		Long:          `A command line interface for the GoWallet demo account.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		balanceCmd(opts),
		transactionsCmd(opts),
		paymentMethodsCmd(opts),
		sendCmd(opts),
		addCmd(opts),
		requestCmd(opts),
	)

	return rootCmd
}

func (o *cliOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.timeout)
}

func balanceCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var user dto.UserResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/user", nil, &user); err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nBalance: $%s\n", user.Name, user.Email, user.Balance)
			return nil
		},
	}
}

func transactionsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txs"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var txs []dto.TransactionResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/transactions", nil, &txs); err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), txs)
			}

			table := newTable(cmd.OutOrStdout(), "ID", "Date", "Type", "Amount", "Description")
			for _, tx := range txs {
				table.Append([]string{
					strconv.FormatInt(tx.ID, 10),
					tx.CreatedAt.Local().Format("2006-01-02 15:04"),
					tx.Type,
					signedAmount(tx.Type, tx.Amount),
					truncate(tx.Description, 40),
				})
			}
			table.Render()
			return nil
		},
	}
}

func paymentMethodsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "payment-methods",
		Aliases: []string{"pm"},
		Short:   "List active payment methods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var methods []dto.PaymentMethodResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/payment-methods", nil, &methods); err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), methods)
			}

			table := newTable(cmd.OutOrStdout(), "ID", "Type", "Name", "Number", "Primary")
			for _, pm := range methods {
				name := pm.Provider
				if pm.BankName != nil {
					name = *pm.BankName
				}
				primary := ""
				if pm.IsPrimary {
					primary = "yes"
				}
				table.Append([]string{strconv.FormatInt(pm.ID, 10), pm.Type, name, "****" + pm.LastFour, primary})
			}
			table.Render()
			return nil
		},
	}
}

func sendCmd(opts *cliOptions) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "send <email> <amount>",
		Short: "Send money to an email address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.MoneyResponse
			req := dto.SendMoneyRequest{RecipientEmail: args[0], Amount: dto.Amount(args[1]), Note: note}
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/send-money", req, &resp); err != nil {
				return err
			}
			return printMoneyResult(cmd.OutOrStdout(), opts, resp)
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Optional note shown as the description")

	return cmd
}

func addCmd(opts *cliOptions) *cobra.Command {
	var paymentMethodID int64

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add money to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.AddMoneyRequest{Amount: dto.Amount(args[0])}
			if cmd.Flags().Changed("payment-method") {
				req.PaymentMethodID = dto.OptionalID{Value: &paymentMethodID}
			}

			var resp dto.MoneyResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/add-money", req, &resp); err != nil {
				return err
			}
			return printMoneyResult(cmd.OutOrStdout(), opts, resp)
		},
	}
	cmd.Flags().Int64Var(&paymentMethodID, "payment-method", 0, "Payment method id to fund from")

	return cmd
}

func requestCmd(opts *cliOptions) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "request <email> <amount>",
		Short: "Request money from an email address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.RequestMoneyResponse
			req := dto.RequestMoneyRequest{RecipientEmail: args[0], Amount: dto.Amount(args[1]), Note: note}
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/request-money", req, &resp); err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Optional note for the recipient")

	return cmd
}

func printMoneyResult(out io.Writer, opts *cliOptions, resp dto.MoneyResponse) error {
	if opts.asJSON {
		return printJSON(out, resp)
	}
	fmt.Fprintln(out, resp.Message)
	if resp.Transaction != nil {
		fmt.Fprintf(out, "Transaction #%d: %s\n", resp.Transaction.ID, resp.Transaction.Description)
	}
	return nil
}

func newTable(out io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func signedAmount(txType, amount string) string {
	switch txType {
	case "send", "purchase":
		return "-$" + amount
	default:
		return "+$" + amount
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
