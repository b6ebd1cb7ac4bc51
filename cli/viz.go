// ABOUTME: CLI commands for visualization
// ABOUTME: Pipeline graph rendering and the text dashboard
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/bizdesk/bizdesk/store"
	"github.com/bizdesk/bizdesk/viz"
)

// VizCommand renders the deal pipeline as a graph
func VizCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("viz", flag.ExitOnError)
	output := fs.String("output", "", "Write graph to file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := viz.NewGraphGenerator(s)
	graph, err := gen.GeneratePipelineGraph()
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(graph), 0644); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
		fmt.Printf("Graph written to %s\n", *output)
		return nil
	}

	fmt.Println(graph)
	return nil
}

// DashCommand prints the text dashboard
func DashCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("dash", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats := viz.GenerateDashboardStats(s)
	fmt.Println(viz.RenderDashboard(stats))
	return nil
}
