// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the workspace as tools for Claude Desktop integration
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bizdesk/bizdesk/handlers"
	"github.com/bizdesk/bizdesk/store"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(s *store.Store) error {
	log.Println("Starting BizDesk MCP Server...")

	contactHandlers := handlers.NewContactHandlers(s)
	dealHandlers := handlers.NewDealHandlers(s)
	taskHandlers := handlers.NewTaskHandlers(s)
	brandHandlers := handlers.NewBrandHandlers(s)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bizdesk",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the workspace",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts, optionally filtered by pipeline status",
	}, contactHandlers.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal attached to a contact",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_deals",
		Description: "List deals with payment totals, optionally filtered by stage",
	}, dealHandlers.ListDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_deal",
		Description: "Move a deal to a different pipeline stage",
	}, dealHandlers.AdvanceDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_payment",
		Description: "Record a paid or pending payment against a deal",
	}, dealHandlers.RecordPayment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a task to the to-do list",
	}, taskHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, optionally filtered by status",
	}, taskHandlers.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Flip a task between pending and completed",
	}, taskHandlers.ToggleTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task",
	}, taskHandlers.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_brand",
		Description: "Get the brand profile and voice settings",
	}, brandHandlers.GetBrand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_brand",
		Description: "Update the brand profile or voice settings",
	}, brandHandlers.UpdateBrand)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
