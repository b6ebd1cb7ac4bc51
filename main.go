// ABOUTME: Main entry point for the bizdesk application
// ABOUTME: Routes between MCP server, CRM commands, AI features, sync, and visualization
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bizdesk/bizdesk/cli"
	"github.com/bizdesk/bizdesk/config"
	"github.com/bizdesk/bizdesk/db"
	"github.com/bizdesk/bizdesk/remote"
	"github.com/bizdesk/bizdesk/store"
	"github.com/bizdesk/bizdesk/tui"
)

const version = "0.1.0"

func main() {
	versionFlag := flag.Bool("version", false, "Show version")
	dbPath := flag.String("db-path", "", "Path to database file (default: XDG data directory)")
	flag.Usage = printUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("bizdesk version %s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	path := *dbPath
	if path == "" {
		path = config.DatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	database, err := db.OpenDatabase(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	mirror := remote.NewGateway(cfg.Remote)
	s, err := store.New(database, mirror)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		os.Exit(1)
	}
	defer s.Flush()

	if cfg.AutoSync {
		s.Hydrate(context.Background())
	}

	if err := runCommand(s, cfg, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		s.Flush()
		os.Exit(1)
	}
}

func runCommand(s *store.Store, cfg *config.Config, args []string) error {
	command := args[0]
	rest := args[1:]

	switch command {
	case "mcp":
		return cli.MCPCommand(s)

	case "tui":
		return tui.Run(s)

	case "crm":
		if len(rest) == 0 {
			printUsage()
			return fmt.Errorf("crm requires a subcommand")
		}
		return runCRMCommand(s, rest[0], rest[1:])

	case "ai":
		if len(rest) == 0 {
			printUsage()
			return fmt.Errorf("ai requires a subcommand")
		}
		return runAICommand(s, cfg, rest[0], rest[1:])

	case "sync":
		if len(rest) == 0 {
			printUsage()
			return fmt.Errorf("sync requires a subcommand")
		}
		return runSyncCommand(s, cfg, rest[0], rest[1:])

	case "viz":
		return cli.VizCommand(s, rest)

	case "dash":
		return cli.DashCommand(s, rest)

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runCRMCommand(s *store.Store, sub string, args []string) error {
	switch sub {
	case "add-contact":
		return cli.AddContactCommand(s, args)
	case "list-contacts":
		return cli.ListContactsCommand(s, args)
	case "update-contact":
		return cli.UpdateContactCommand(s, args)
	case "add-deal":
		return cli.AddDealCommand(s, args)
	case "list-deals":
		return cli.ListDealsCommand(s, args)
	case "advance-deal":
		return cli.AdvanceDealCommand(s, args)
	case "add-payment":
		return cli.AddPaymentCommand(s, args)
	case "add-task":
		return cli.AddTaskCommand(s, args)
	case "list-tasks":
		return cli.ListTasksCommand(s, args)
	case "toggle-task":
		return cli.ToggleTaskCommand(s, args)
	case "delete-task":
		return cli.DeleteTaskCommand(s, args)
	case "brand":
		return cli.ShowBrandCommand(s, args)
	case "update-brand":
		return cli.UpdateBrandCommand(s, args)
	default:
		printUsage()
		return fmt.Errorf("unknown crm subcommand: %s", sub)
	}
}

func runAICommand(s *store.Store, cfg *config.Config, sub string, args []string) error {
	switch sub {
	case "priorities":
		return cli.PrioritiesCommand(s, cfg, args)
	case "psych":
		return cli.PsychCommand(s, cfg, args)
	case "report":
		return cli.ReportCommand(s, cfg, args)
	case "ad":
		return cli.AdCommand(s, cfg, args)
	case "chat":
		return cli.ChatCommand(s, cfg, args)
	case "advisor":
		return cli.AdvisorCommand(s, cfg, args)
	default:
		printUsage()
		return fmt.Errorf("unknown ai subcommand: %s", sub)
	}
}

func runSyncCommand(s *store.Store, cfg *config.Config, sub string, args []string) error {
	switch sub {
	case "status":
		return cli.SyncStatusCommand(s, cfg, args)
	case "configure":
		return cli.ConfigureCommand(cfg, args)
	case "import-ads":
		return cli.ImportAdsCommand(s, cfg, args)
	default:
		printUsage()
		return fmt.Errorf("unknown sync subcommand: %s", sub)
	}
}

func printUsage() {
	fmt.Print(`bizdesk - local-first business operating system

Usage:
  bizdesk [flags] <command> [subcommand] [options]

Flags:
  --version          Show version
  --db-path <path>   Path to database file (default: XDG data directory)

Commands:
  mcp                Start MCP server on stdio
  tui                Interactive terminal dashboard
  viz                Render the deal pipeline as a graph
  dash               Print the text dashboard

CRM commands:
  crm add-contact    --name <name> [--company --email --phone --status --value]
  crm list-contacts  [--status <status>]
  crm update-contact --id <id> [--name --company --email --phone --status --value]
  crm add-deal       --title <title> --contact <id> [--value --stage --probability --close-date]
  crm list-deals     [--stage <stage>]
  crm advance-deal   --id <id> --stage <stage>
  crm add-payment    --deal <id> --amount <cents> [--status paid|pending]
  crm add-task       --title <title> [--priority --due]
  crm list-tasks     [--status pending|completed]
  crm toggle-task    --id <id>
  crm delete-task    --id <id>
  crm brand          Show the brand profile
  crm update-brand   [--name --industry --description --audience --archetype --tone]

AI commands:
  ai priorities      Suggest today's actions and save them as tasks
  ai psych           --id <contact-id>  Profile a contact for outreach
  ai report          Search-grounded growth report
  ai ad              --offer <text>  Generate ad copy in the brand voice
  ai chat <message>  Talk to the brand assistant
  ai advisor         Live voice advisor session

Sync commands:
  sync status        Show remote mirror status
  sync configure     Enter remote and AI credentials
  sync import-ads    Import ad spend and ROAS onto deals

Examples:
  bizdesk crm add-contact --name "Ada Lovelace" --company "Analytical Engines"
  bizdesk crm add-deal --title "Q4 retainer" --contact <id> --value 500000
  bizdesk ai priorities
  bizdesk mcp
`)
}
