// ABOUTME: Pipeline graph generation
// ABOUTME: Renders the deal pipeline as a left-to-right graphviz flow
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

type GraphGenerator struct {
	store *store.Store
}

func NewGraphGenerator(s *store.Store) *GraphGenerator {
	return &GraphGenerator{store: s}
}

// GeneratePipelineGraph renders open deals grouped by stage, with deals
// attached to their stage node and contacts attached to their deals.
func (g *GraphGenerator) GeneratePipelineGraph() (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	contacts := make(map[string]models.Contact)
	for _, c := range g.store.Contacts() {
		contacts[c.ID.String()] = c
	}

	// One node per stage, chained in pipeline order
	stageNodes := make(map[string]*cgraph.Node)
	var prev *cgraph.Node
	for _, stage := range models.PipelineStages {
		node, err := graph.CreateNodeByName(stage)
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetShape(cgraph.BoxShape)
		stageNodes[stage] = node
		if prev != nil {
			if _, err := graph.CreateEdgeByName("", prev, node); err != nil {
				return "", fmt.Errorf("failed to link stages: %w", err)
			}
		}
		prev = node
	}

	for _, deal := range g.store.Deals() {
		stageNode, ok := stageNodes[deal.Stage]
		if !ok {
			continue
		}

		label := fmt.Sprintf("%s\n$%.2f", deal.Title, float64(deal.Value)/100)
		dealNode, err := graph.CreateNodeByName(label)
		if err != nil {
			return "", fmt.Errorf("failed to create deal node: %w", err)
		}
		if _, err := graph.CreateEdgeByName("", stageNode, dealNode); err != nil {
			return "", fmt.Errorf("failed to link deal: %w", err)
		}

		if contact, ok := contacts[deal.ContactID.String()]; ok {
			contactNode, _ := graph.CreateNodeByName(contact.Name)
			if contactNode != nil {
				contactNode.SetShape(cgraph.EllipseShape)
				edge, _ := graph.CreateEdgeByName("", dealNode, contactNode)
				if edge != nil {
					edge.SetLabel("with")
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
