package upload

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ToolName is the protocol name of the upload tool.
const ToolName = "upload_to_oss"

// Handler exposes the upload service as a protocol tool.
type Handler struct {
	service *Service
	names   func() []string
	logger  *zap.Logger
}

// NewHandler creates a new tool handler. names lists the available configurations for the tool description.
func NewHandler(service *Service, names func() []string, logger *zap.Logger) *Handler {
	return &Handler{service: service, names: names, logger: logger}
}

// Tool returns the tool definition.
func (h *Handler) Tool() mcp.Tool {
	available := "none"
	if names := h.names(); len(names) > 0 {
		available = strings.Join(names, ", ")
	}

	return mcp.NewTool(ToolName,
		mcp.WithDescription("Upload a local file to Aliyun OSS"),
		mcp.WithString("filePath",
			mcp.Required(),
			mcp.Description("Path of the local file to upload"),
		),
		mcp.WithString("targetDir",
			mcp.Description("Target directory inside the bucket (optional)"),
		),
		mcp.WithString("fileName",
			mcp.Description("Object name after upload (optional, defaults to the local file name)"),
		),
		mcp.WithString("configName",
			mcp.Description(fmt.Sprintf("OSS config name (optional, defaults to 'default'). Available configs: %s", available)),
		),
	)
}

// ParseRequest validates tool arguments. filePath must be a non-empty string;
// the optional parameters must be strings when present.
func ParseRequest(args map[string]any) (Request, error) {
	var req Request

	filePath, err := stringArg(args, "filePath")
	if err != nil {
		return req, err
	}
	if strings.TrimSpace(filePath) == "" {
		return req, fmt.Errorf("filePath is required")
	}
	req.FilePath = filePath

	for name, dst := range map[string]*string{
		"targetDir":  &req.TargetDir,
		"fileName":   &req.FileName,
		"configName": &req.ConfigName,
	} {
		v, err := stringArg(args, name)
		if err != nil {
			return Request{}, err
		}
		*dst = v
	}
	return req, nil
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return s, nil
}

// HandleUpload uploads a file and renders the result for the protocol client.
// Panics are recovered and returned as error results.
func (h *Handler) HandleUpload(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Upload handler panicked", zap.Any("panic", r))
			result = mcp.NewToolResultError(fmt.Sprintf("Upload error: %v", r))
			err = nil
		}
	}()

	req, perr := ParseRequest(request.GetArguments())
	if perr != nil {
		h.logger.Error("Invalid upload arguments", zap.Error(perr))
		return mcp.NewToolResultError(fmt.Sprintf("Upload error: %v", perr)), nil
	}

	target := req.TargetDir
	if target == "" {
		target = "root directory"
	}
	h.logger.Info("Preparing upload", zap.String("file", req.FilePath), zap.String("target", target))

	if _, statErr := os.Stat(req.FilePath); statErr != nil {
		h.logger.Error("Local file is not accessible", zap.String("file", req.FilePath), zap.Error(statErr))
		return mcp.NewToolResultError(fmt.Sprintf("Upload error: file does not exist: %s", req.FilePath)), nil
	}

	res := h.service.Upload(ctx, req)
	if !res.Success {
		h.logger.Error("Upload failed", zap.String("error", res.Error), zap.String("config", res.ConfigName))
		return mcp.NewToolResultError(res.Error), nil
	}

	h.logger.Info("Upload succeeded", zap.String("url", res.URL))
	return mcp.NewToolResultText(fmt.Sprintf(
		"File uploaded successfully!\nFile name: %s\nTarget directory: %s\nURL: %s\nConfig name: %s",
		req.ObjectName(), target, res.URL, res.ConfigName,
	)), nil
}
