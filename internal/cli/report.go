package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/spf13/cobra"
)

var (
	storeSlug      string
	snapshotStrict bool
)

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "Print the receivables report with interest as of today",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, err := openStore(cmd.Context(), storeSlug)
		if err != nil {
			return err
		}
		defer app.Close()

		report, err := app.Services.Debt.Report(ctx)
		if err != nil {
			return err
		}
		return writeDebts(cmd.OutOrStdout(), report)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Load every collection of a store and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, err := openStore(cmd.Context(), storeSlug)
		if err != nil {
			return err
		}
		defer app.Close()

		snap, err := app.Services.Snapshot.LoadAll(ctx, snapshotStrict)
		if err != nil {
			return err
		}
		for _, w := range snap.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %s\n", w.Entity, w.Message)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

func init() {
	for _, c := range []*cobra.Command{debtsCmd, snapshotCmd} {
		c.Flags().StringVar(&storeSlug, "store", "", "store slug")
		_ = c.MarkFlagRequired("store")
	}
	snapshotCmd.Flags().BoolVar(&snapshotStrict, "strict", false, "fail when any collection cannot be loaded")
	rootCmd.AddCommand(debtsCmd, snapshotCmd)
}

func writeDebts(out io.Writer, report *service.DebtReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Relatório de débitos em %s\t\n\n", report.Today.BR())
	fmt.Fprintln(w, "OS\tCliente\tVencimento\tDias\tTotal\tPago\tJuros\tA pagar\t")
	for _, d := range report.Debts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t\n",
			d.OrderNumber, d.CustomerName, d.DueDate.BR(), d.DaysOverdue,
			d.Total, d.Paid, d.Interest, d.AmountDue)
	}
	t := report.Totals
	fmt.Fprintf(w, "\t%d em aberto, %d vencidos\t\t\t%s\t\t%s\t%s\t\n", t.Count, t.Overdue, t.Total, t.Interest, t.AmountDue)
	return w.Flush()
}
