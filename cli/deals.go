// ABOUTME: CLI commands for deal management
// ABOUTME: Create deals, advance stages, and record payments
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

// AddDealCommand handles the add-deal subcommand
func AddDealCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")
	contactID := fs.String("contact", "", "Contact ID (required)")
	value := fs.Int64("value", 0, "Deal value in cents")
	stage := fs.String("stage", models.StageDiscovery, "Pipeline stage")
	probability := fs.Int("probability", 50, "Win probability (0-100)")
	closeDate := fs.String("close-date", "", "Expected close date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" || *contactID == "" {
		fs.Usage()
		return fmt.Errorf("--title and --contact are required")
	}
	if !models.ValidStage(*stage) {
		return fmt.Errorf("invalid stage %q", *stage)
	}

	cid, err := uuid.Parse(*contactID)
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	deal := models.Deal{
		Title:       *title,
		ContactID:   cid,
		Value:       *value,
		Stage:       *stage,
		Probability: *probability,
	}
	if *closeDate != "" {
		t, err := time.Parse("2006-01-02", *closeDate)
		if err != nil {
			return fmt.Errorf("invalid close date: %w", err)
		}
		deal.ExpectedCloseDate = &t
	}

	created, err := s.AddDeal(deal)
	if err != nil {
		return err
	}

	fmt.Printf("Added deal: %s (%s)\n", created.Title, created.ID)
	return nil
}

// ListDealsCommand handles the list-deals subcommand
func ListDealsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by pipeline stage")

	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tSTAGE\tVALUE\tCOLLECTED\tREMAINING\tID")
	count := 0
	for _, d := range s.Deals() {
		if *stage != "" && d.Stage != *stage {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t$%.2f\t$%.2f\t%s\n",
			d.Title, d.Stage,
			float64(d.Value)/100, float64(d.Collected())/100, float64(d.Remaining())/100,
			d.ID)
		count++
	}
	w.Flush()

	fmt.Printf("\n%d deal(s)\n", count)
	return nil
}

// AdvanceDealCommand handles the advance-deal subcommand
func AdvanceDealCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("advance-deal", flag.ExitOnError)
	id := fs.String("id", "", "Deal ID (required)")
	stage := fs.String("stage", "", "Target stage (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *stage == "" {
		fs.Usage()
		return fmt.Errorf("--id and --stage are required")
	}

	dealID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid deal ID: %w", err)
	}

	deal, err := s.UpdateDealStage(dealID, *stage)
	if err != nil {
		return err
	}

	fmt.Printf("Deal %q moved to %s\n", deal.Title, deal.Stage)
	return nil
}

// AddPaymentCommand handles the add-payment subcommand
func AddPaymentCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-payment", flag.ExitOnError)
	id := fs.String("deal", "", "Deal ID (required)")
	amount := fs.Int64("amount", 0, "Payment amount in cents (required)")
	status := fs.String("status", models.PaymentPaid, "Payment status (paid, pending)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		fs.Usage()
		return fmt.Errorf("--deal is required")
	}
	if *amount <= 0 {
		return fmt.Errorf("--amount must be positive")
	}

	dealID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid deal ID: %w", err)
	}

	deal, err := s.AddPayment(dealID, *amount, *status)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded $%.2f %s on %q. Collected $%.2f of $%.2f.\n",
		float64(*amount)/100, *status, deal.Title,
		float64(deal.Collected())/100, float64(deal.Value)/100)
	return nil
}
