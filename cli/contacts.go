// ABOUTME: CLI commands for contact management
// ABOUTME: Add, list, and update contacts from the command line
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

// AddContactCommand handles the add-contact subcommand
func AddContactCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	company := fs.String("company", "", "Company name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	status := fs.String("status", models.ContactLead, "Pipeline status (lead, qualified, customer, churned)")
	value := fs.Int64("value", 0, "Estimated value in cents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		fs.Usage()
		return fmt.Errorf("--name is required")
	}

	contact, err := s.AddContact(models.Contact{
		Name:    *name,
		Company: *company,
		Email:   *email,
		Phone:   *phone,
		Status:  *status,
		Value:   *value,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added contact: %s (%s)\n", contact.Name, contact.ID)
	return nil
}

// ListContactsCommand handles the list-contacts subcommand
func ListContactsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	status := fs.String("status", "", "Filter by pipeline status")

	if err := fs.Parse(args); err != nil {
		return err
	}

	contacts := s.Contacts()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMPANY\tSTATUS\tVALUE\tID")
	count := 0
	for _, c := range contacts {
		if *status != "" && c.Status != *status {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
			c.Name, c.Company, c.Status, float64(c.Value)/100, c.ID)
		count++
	}
	w.Flush()

	fmt.Printf("\n%d contact(s)\n", count)
	return nil
}

// UpdateContactCommand handles the update-contact subcommand
func UpdateContactCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	id := fs.String("id", "", "Contact ID (required)")
	name := fs.String("name", "", "New name")
	company := fs.String("company", "", "New company")
	email := fs.String("email", "", "New email")
	phone := fs.String("phone", "", "New phone")
	status := fs.String("status", "", "New pipeline status")
	value := fs.Int64("value", -1, "New estimated value in cents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		fs.Usage()
		return fmt.Errorf("--id is required")
	}

	contactID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	var update models.ContactUpdate
	if *name != "" {
		update.Name = name
	}
	if *company != "" {
		update.Company = company
	}
	if *email != "" {
		update.Email = email
	}
	if *phone != "" {
		update.Phone = phone
	}
	if *status != "" {
		update.Status = status
	}
	if *value >= 0 {
		update.Value = value
	}

	contact, err := s.UpdateContact(contactID, update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated contact: %s\n", contact.Name)
	return nil
}
