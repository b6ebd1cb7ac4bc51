// ABOUTME: CLI commands for the brand profile
// ABOUTME: Show and update the brand identity and voice
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

// ShowBrandCommand prints the current brand profile
func ShowBrandCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("brand", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	brand := s.Brand()

	fmt.Printf("Brand: %s\n", brand.Name)
	if brand.Industry != "" {
		fmt.Printf("Industry: %s\n", brand.Industry)
	}
	if brand.Description != "" {
		fmt.Printf("Description: %s\n", brand.Description)
	}
	if brand.TargetAudience != "" {
		fmt.Printf("Target audience: %s\n", brand.TargetAudience)
	}
	if brand.Psychology.Archetype != "" || brand.Psychology.Tone != "" {
		fmt.Printf("Voice: %s, %s\n", brand.Psychology.Archetype, brand.Psychology.Tone)
	}
	if len(brand.Psychology.Principles) > 0 {
		fmt.Printf("Principles: %s\n", strings.Join(brand.Psychology.Principles, "; "))
	}
	fmt.Printf("Chat history: %d turn(s), ad history: %d ad(s)\n",
		len(brand.Memory.ChatHistory), len(brand.Memory.AdHistory))
	return nil
}

// UpdateBrandCommand handles the update-brand subcommand
func UpdateBrandCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("update-brand", flag.ExitOnError)
	name := fs.String("name", "", "Business name")
	industry := fs.String("industry", "", "Industry")
	description := fs.String("description", "", "Business description")
	audience := fs.String("audience", "", "Target audience")
	archetype := fs.String("archetype", "", "Voice archetype")
	tone := fs.String("tone", "", "Voice tone")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var patch models.BrandPatch
	if *name != "" {
		patch.Name = name
	}
	if *industry != "" {
		patch.Industry = industry
	}
	if *description != "" {
		patch.Description = description
	}
	if *audience != "" {
		patch.TargetAudience = audience
	}
	if *archetype != "" || *tone != "" {
		voice := s.Brand().Psychology
		if *archetype != "" {
			voice.Archetype = *archetype
		}
		if *tone != "" {
			voice.Tone = *tone
		}
		patch.Psychology = &voice
	}

	brand, err := s.UpdateBrand(patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated brand: %s\n", brand.Name)
	return nil
}
