package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexdeck/internal/application"
	"indexdeck/internal/application/commands"
	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

// Deps are the collaborators the MCP tools act on
type Deps struct {
	Catalog ports.IndexerCatalog
	Store   *domain.SelectionStore
	Session *application.CacheClearSession
}

// RegisterTools adds the indexer, mirror and cache tools to the MCP server.
func RegisterTools(s *server.MCPServer, deps Deps) {
	s.AddTool(pingTool(), pingHandler())
	s.AddTool(listIndexersTool(), listIndexersHandler(deps.Catalog))
	s.AddTool(listMirrorsTool(), listMirrorsHandler(deps.Catalog, deps.Store))
	s.AddTool(selectMirrorTool(), selectMirrorHandler(deps.Catalog, deps.Store))
	s.AddTool(clearCacheTool(), clearCacheHandler(deps.Session))
	s.AddTool(cacheStatusTool(), cacheStatusHandler(deps.Session))
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check, returns pong"),
	)
}

func pingHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	}
}

// --- list_indexers ---

func listIndexersTool() mcp.Tool {
	return mcp.NewTool("list_indexers",
		mcp.WithDescription("List configured indexers with their IDs and number of mirror links."),
	)
}

func listIndexersHandler(catalog ports.IndexerCatalog) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		indexers, err := commands.NewListIndexersCommand(catalog).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(indexers, formatIndexer)
	}
}

// --- list_mirrors ---

func listMirrorsTool() mcp.Tool {
	return mcp.NewTool("list_mirrors",
		mcp.WithDescription("List the mirror links of an indexer in selection order: primary links first, then legacy links. The active mirror is marked with *."),
		mcp.WithString("indexer_id",
			mcp.Description("ID of the indexer"),
			mcp.Required(),
		),
	)
}

func listMirrorsHandler(catalog ports.IndexerCatalog, store *domain.SelectionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("indexer_id", "")
		listing, err := commands.NewListMirrorsCommand(catalog, store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(listing.Options) == 0 {
			return mcp.NewToolResultText("No mirrors."), nil
		}

		var sb strings.Builder
		for i, opt := range listing.Options {
			marker := " "
			if opt.GlobalIndex == listing.Active.GlobalIndex {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %d  %s  %s\n", marker, opt.GlobalIndex, listing.Labels[i], opt.URL)
		}
		if !listing.Offer {
			sb.WriteString("Single mirror, nothing to select.\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- select_mirror ---

func selectMirrorTool() mcp.Tool {
	return mcp.NewTool("select_mirror",
		mcp.WithDescription("Make one of an indexer's mirrors active. The index is the position shown by list_mirrors. Only indexers with more than one mirror accept a selection."),
		mcp.WithString("indexer_id",
			mcp.Description("ID of the indexer"),
			mcp.Required(),
		),
		mcp.WithNumber("global_index",
			mcp.Description("Global mirror index (0 is the default mirror)"),
			mcp.Required(),
		),
	)
}

func selectMirrorHandler(catalog ports.IndexerCatalog, store *domain.SelectionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("indexer_id", "")
		index, err := req.RequireInt("global_index")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewSelectMirrorCommand(catalog, store, id, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clear_cache ---

func clearCacheTool() mcp.Tool {
	return mcp.NewTool("clear_cache",
		mcp.WithDescription("Clear the server-side search cache and report how many entries were deleted. Fails if a clear is already running."),
	)
}

func clearCacheHandler(session *application.CacheClearSession) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewClearCacheCommand(session).Execute(ctx)
		if err != nil {
			if errors.Is(err, application.ErrCacheClearFailed) {
				return toolError(errors.New(application.CacheClearFailedMessage))
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- cache_status ---

func cacheStatusTool() mcp.Tool {
	return mcp.NewTool("cache_status",
		mcp.WithDescription("Report the state of the cache clear action: Idle, Clearing, Succeeded(n) or Failed."),
	)
}

func cacheStatusHandler(session *application.CacheClearSession) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state := session.State()
		text := state.String()
		if summary := state.Summary(); summary != "" {
			text += ": " + summary
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatIndexer(ix domain.Indexer) string {
	return fmt.Sprintf("%s  %s  (%d primary, %d legacy)", ix.ID, ix.Name, len(ix.PrimaryLinks), len(ix.LegacyLinks))
}
