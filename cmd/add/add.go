// Package add handles the commands that record new entries
package add

import (
	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense, revenue, supermarket item or card charge",
	Long: `Add a record to one of the four collections of the logged-in user.
Values accept Brazilian (1.234,56) and international (1,234.56) notation.`,
}

var (
	expense     models.ExpenseInput
	revenue     models.RevenueInput
	supermarket models.SupermarketInput
	card        models.CardInput
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Add an expense",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		e, err := sess.AddExpense(cmd.Context(), expense)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Expense %s added", e.ID)
	},
}

var revenueCmd = &cobra.Command{
	Use:     "revenue",
	Aliases: []string{"income"},
	Short:   "Add a revenue",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		r, err := sess.AddRevenue(cmd.Context(), revenue)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Revenue %s added", r.ID)
	},
}

var supermarketCmd = &cobra.Command{
	Use:     "supermarket",
	Aliases: []string{"grocery"},
	Short:   "Add a supermarket item",
	Long:    `Add a supermarket item. When --total is omitted it is computed as quantity × unit value.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		item, err := sess.AddSupermarketItem(cmd.Context(), supermarket)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Supermarket item %s added", item.ID)
	},
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add a credit card charge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		c, err := sess.AddCardCharge(cmd.Context(), card)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Card charge %s added", c.ID)
	},
}

func init() {
	today := dateutils.ToISODate(models.Now())

	f := expenseCmd.Flags()
	f.StringVarP(&expense.Date, "date", "d", today, "Date (YYYY-MM-DD)")
	f.StringVarP(&expense.Category, "category", "c", "", "Category")
	f.StringVar(&expense.Description, "description", "", "Description")
	f.StringVarP(&expense.Value, "value", "v", "", "Amount")
	f.StringVarP(&expense.PaymentMethod, "payment", "p", "", "Payment method")
	f.StringVar(&expense.Observations, "observations", "", "Free-form notes")

	f = revenueCmd.Flags()
	f.StringVarP(&revenue.Date, "date", "d", today, "Date (YYYY-MM-DD)")
	f.StringVarP(&revenue.Source, "source", "s", "", "Source of the income")
	f.StringVar(&revenue.Description, "description", "", "Description")
	f.StringVarP(&revenue.Value, "value", "v", "", "Amount")
	f.StringVarP(&revenue.Category, "category", "c", "", "Category")
	f.StringVar(&revenue.Observations, "observations", "", "Free-form notes")

	f = supermarketCmd.Flags()
	f.StringVarP(&supermarket.Date, "date", "d", today, "Date (YYYY-MM-DD)")
	f.StringVarP(&supermarket.Store, "store", "s", "", "Store name")
	f.StringVar(&supermarket.Product, "product", "", "Product name")
	f.StringVarP(&supermarket.Quantity, "quantity", "q", "1", "Quantity")
	f.StringVarP(&supermarket.UnitValue, "unit", "u", "", "Unit value")
	f.StringVarP(&supermarket.TotalValue, "total", "t", "", "Total value (default quantity × unit)")
	f.StringVarP(&supermarket.PaymentMethod, "payment", "p", "", "Payment method")

	f = cardCmd.Flags()
	f.StringVarP(&card.Name, "card", "n", "", "Card name")
	f.StringVarP(&card.Date, "date", "d", today, "Date (YYYY-MM-DD)")
	f.StringVarP(&card.Establishment, "establishment", "e", "", "Establishment")
	f.StringVarP(&card.Value, "value", "v", "", "Amount")
	f.StringVarP(&card.Installments, "installments", "i", "1", "Number of installments")
	f.StringVarP(&card.Category, "category", "c", "", "Category")
	f.StringVarP(&card.Status, "status", "s", models.CardStatusPending, "Status (Pending or Paid)")

	Cmd.AddCommand(expenseCmd, revenueCmd, supermarketCmd, cardCmd)
}
