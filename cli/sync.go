// ABOUTME: CLI commands for remote sync and credentials
// ABOUTME: Sync status, interactive configuration, and ad metrics import
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/bizdesk/bizdesk/config"
	syncpkg "github.com/bizdesk/bizdesk/sync"
	"github.com/bizdesk/bizdesk/store"
)

// SyncStatusCommand prints the per-service sync state
func SyncStatusCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.Remote.IsConfigured() {
		fmt.Printf("Remote store: %s\n", cfg.Remote.URL)
	} else {
		fmt.Println("Remote store: not configured (local-only mode)")
	}

	states, err := s.SyncStates()
	if err != nil {
		return err
	}
	if len(states) == 0 {
		fmt.Println("No sync activity recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tSTATUS\tLAST SYNC\tERROR")
	for _, st := range states {
		last := "never"
		if st.LastSyncTime != nil {
			last = st.LastSyncTime.Format("2006-01-02 15:04:05")
		}
		errMsg := ""
		if st.ErrorMessage != nil {
			errMsg = *st.ErrorMessage
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Service, st.Status, last, errMsg)
	}
	w.Flush()
	return nil
}

func promptLine(reader *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

func promptSecret(label string) (string, error) {
	fmt.Printf("%s (input hidden): ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// ConfigureCommand interactively collects remote, AI, and ad-network
// credentials. Secrets are read without echo and the config file is written
// with owner-only permissions.
func ConfigureCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return configure(cfg, bufio.NewReader(os.Stdin), promptSecret)
}

func configure(cfg *config.Config, reader *bufio.Reader, secret func(label string) (string, error)) error {
	url, err := promptLine(reader, "Remote store URL", cfg.Remote.URL)
	if err != nil {
		return err
	}
	cfg.Remote.URL = url

	if url != "" {
		key, err := secret("Remote store API key (blank to keep)")
		if err != nil {
			return err
		}
		if key != "" {
			cfg.Remote.APIKey = key
		}
	}

	geminiKey, err := secret("Gemini API key (blank to keep)")
	if err != nil {
		return err
	}
	if geminiKey != "" {
		cfg.GeminiAPIKey = geminiKey
	}

	adsURL, err := promptLine(reader, "Ad network URL", cfg.AdsURL)
	if err != nil {
		return err
	}
	cfg.AdsURL = adsURL

	if adsURL != "" {
		token, err := secret("Ad network token (blank to keep)")
		if err != nil {
			return err
		}
		if token != "" {
			cfg.AdsToken = token
		}
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Saved to %s\n", config.Path())
	return nil
}

// ImportAdsCommand pulls ad insights and stamps spend and ROAS onto deals
func ImportAdsCommand(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import-ads", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	importer, err := syncpkg.NewAdsImporter(cfg.AdsURL, cfg.AdsToken)
	if err != nil {
		return err
	}

	result, err := syncpkg.ImportAdMetrics(context.Background(), importer, s)
	if err != nil {
		return err
	}

	fmt.Printf("Imported ad metrics: %d deal(s) updated, %d insight(s) skipped\n",
		result.Updated, result.Skipped)
	return nil
}
