// ABOUTME: CLI commands for AI-assisted features
// ABOUTME: Priorities, contact psychology, growth reports, ad copy, chat, and the live advisor
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/advisor"
	"github.com/bizdesk/bizdesk/ai"
	"github.com/bizdesk/bizdesk/config"
	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

func newAIClient(ctx context.Context, cfg *config.Config) (*ai.Client, error) {
	client, err := ai.NewClient(ctx, cfg.GeminiAPIKey)
	if err == ai.ErrNotConfigured {
		return nil, fmt.Errorf("no Gemini API key configured; set GEMINI_API_KEY or run 'bizdesk sync configure'")
	}
	return client, err
}

// PrioritiesCommand asks for today's suggested actions and stores them as tasks
func PrioritiesCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("priorities", flag.ExitOnError)
	save := fs.Bool("save", true, "Save suggestions as tasks")

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	suggestions, err := client.SuggestPriorities(ctx, s.Brand(), s.Contacts(), s.Deals(), s.Tasks())
	if err != nil {
		return err
	}

	fmt.Println("Today's priorities:")
	for i, sug := range suggestions {
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, sug.Priority, sug.Title, sug.Reason)
	}

	if !*save {
		return nil
	}

	tasks := make([]models.Task, 0, len(suggestions))
	for _, sug := range suggestions {
		tasks = append(tasks, models.Task{
			Title:       sug.Title,
			Priority:    sug.Priority,
			AISuggested: true,
		})
	}
	added, err := s.AddTasks(tasks)
	if err != nil {
		return err
	}

	fmt.Printf("\nSaved %d task(s)\n", len(added))
	return nil
}

// PsychCommand profiles a contact and stores the result on their record
func PsychCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("psych", flag.ExitOnError)
	id := fs.String("id", "", "Contact ID (required)")

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

	var contact *models.Contact
	for _, c := range s.Contacts() {
		if c.ID == contactID {
			contact = &c
			break
		}
	}
	if contact == nil {
		return fmt.Errorf("contact %s not found", contactID)
	}

	ctx := context.Background()
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	profile, err := client.AnalyzeContact(ctx, *contact, s.Deals())
	if err != nil {
		return err
	}

	fmt.Printf("Archetype: %s\n", profile.Archetype)
	fmt.Printf("Motivators: %v\n", profile.Motivators)
	fmt.Printf("Approach: %s\n", profile.Approach)
	fmt.Printf("\n%s\n", profile.Summary)

	summary := profile.String()
	if _, err := s.UpdateContact(contactID, models.ContactUpdate{Psychology: &summary}); err != nil {
		return fmt.Errorf("store psychology profile: %w", err)
	}
	return nil
}

// ReportCommand generates a search-grounded growth report
func ReportCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	report, err := client.GenerateGrowthReport(ctx, s.Brand(), s.Deals())
	if err != nil {
		return err
	}

	fmt.Println(report.Text)
	if len(report.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range report.Sources {
			fmt.Printf("- %s (%s)\n", src.Title, src.URI)
		}
	}
	return nil
}

// AdCommand generates ad copy and records it in brand memory
func AdCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ad", flag.ExitOnError)
	offer := fs.String("offer", "", "What the ad is selling (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *offer == "" {
		fs.Usage()
		return fmt.Errorf("--offer is required")
	}

	ctx := context.Background()
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	ad, err := client.GenerateAd(ctx, s.Brand(), *offer)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n%s\n", ad.Headline, ad.Body)
	if ad.CallToAct != "" {
		fmt.Printf("\n→ %s\n", ad.CallToAct)
	}

	if err := s.RecordAd(*ad); err != nil {
		return fmt.Errorf("record ad: %w", err)
	}
	return nil
}

// ChatCommand sends one message to the brand assistant
func ChatCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: bizdesk ai chat <message>")
	}
	message := fs.Arg(0)

	ctx := context.Background()
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}

	reply, err := client.Chat(ctx, s.Brand(), message)
	if err != nil {
		return err
	}

	fmt.Println(reply)

	// Both turns go into brand memory so the next chat has context.
	if err := s.AppendChatLog("user", message); err != nil {
		return err
	}
	return s.AppendChatLog("model", reply)
}

// consoleSink prints playback scheduling instead of driving a speaker.
// Audio output devices are out of scope for the CLI build.
type consoleSink struct{}

func (consoleSink) ScheduleAt(frame []int16, offset time.Duration) {
	fmt.Printf("[audio] %d samples at +%s\n", len(frame), offset.Round(time.Millisecond))
}

// AdvisorCommand runs a live voice advisor session until interrupted
func AdvisorCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("advisor", flag.ExitOnError)
	credits := fs.Int("credits", 3, "Session credits available")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("no Gemini API key configured; set GEMINI_API_KEY or run 'bizdesk sync configure'")
	}

	ledger := advisor.NewCreditLedger(*credits)
	session := advisor.NewSession(cfg.GeminiAPIKey, ledger, consoleSink{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := session.Start(ctx, s.Brand()); err != nil {
		return err
	}
	defer session.Stop()

	fmt.Printf("Advisor session open. %d credit(s) remaining. Ctrl+C to end.\n", ledger.Balance())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case text := <-session.Transcripts:
			fmt.Printf("advisor: %s\n", text)
		case <-stop:
			fmt.Println("\nEnding session.")
			return nil
		}
	}
}
