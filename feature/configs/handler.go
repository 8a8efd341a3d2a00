package configs

import (
	"context"
	"fmt"
	"strings"

	"oss-mcp/core/storage"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ToolName is the protocol name of the list tool.
const ToolName = "list_oss_configs"

// Lister lists the available configurations.
type Lister interface {
	List() []storage.ConfigInfo
}

// Handler exposes the configuration list as a protocol tool.
type Handler struct {
	lister Lister
	logger *zap.Logger
}

// NewHandler creates a new tool handler.
func NewHandler(lister Lister, logger *zap.Logger) *Handler {
	return &Handler{lister: lister, logger: logger}
}

// Tool returns the tool definition.
func (h *Handler) Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("List the available Aliyun OSS configurations"),
	)
}

// HandleList renders the configuration names as a bullet list.
func (h *Handler) HandleList(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Failed to list OSS configs", zap.Any("panic", r))
			result = mcp.NewToolResultError(fmt.Sprintf("Failed to list configs: %v", r))
			err = nil
		}
	}()

	configs := h.lister.List()
	if len(configs) == 0 {
		return mcp.NewToolResultText("No OSS configs found. Check your environment variables."), nil
	}

	var b strings.Builder
	b.WriteString("Available OSS configs:")
	for _, c := range configs {
		b.WriteString("\n- ")
		b.WriteString(c.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}
