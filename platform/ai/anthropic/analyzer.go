// Package anthropic wraps the official SDK for document and image
// analysis inside chat conversations.
package anthropic

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxAnalysisTokens = 4000

// SupportedExtensions lists the file types the analyzer accepts.
var SupportedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// FileRequest describes one uploaded file to analyze.
type FileRequest struct {
	FileName  string
	Extension string
	Content   []byte
	Prompt    string
	System    string
}

// Analyzer sends files to the messages API and returns the text reply.
type Analyzer struct {
	client sdk.Client
	model  string
}

// Config carries the subset of configuration the analyzer needs.
type Config interface {
	GetAnthropicAPIKey() string
	GetFileAnalysisModel() string
}

func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		client: sdk.NewClient(option.WithAPIKey(cfg.GetAnthropicAPIKey())),
		model:  cfg.GetFileAnalysisModel(),
	}
}

// Supported reports whether the file extension can be analyzed.
func Supported(extension string) bool {
	_, ok := SupportedExtensions[strings.ToLower(extension)]
	return ok
}

// AnalyzeFile uploads the file content inline and asks the model to
// extract the information the prompt requests.
func (a *Analyzer) AnalyzeFile(ctx context.Context, req FileRequest) (string, error) {
	extension := strings.ToLower(req.Extension)
	mediaType, ok := SupportedExtensions[extension]
	if !ok {
		return "", fmt.Errorf("unsupported file extension %q", req.Extension)
	}

	encoded := base64.StdEncoding.EncodeToString(req.Content)

	prompt := req.Prompt
	if prompt == "" {
		prompt = "Extract and summarize the key information."
	}

	blocks := []sdk.ContentBlockParamUnion{
		sdk.NewTextBlock(fmt.Sprintf("Analyze this %s file. %s", extension, prompt)),
	}
	if extension == "pdf" {
		blocks = append(blocks, sdk.NewDocumentBlock(sdk.Base64PDFSourceParam{Data: encoded}))
	} else {
		blocks = append(blocks, sdk.NewImageBlockBase64(mediaType, encoded))
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: maxAnalysisTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(blocks...)},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: analyze %s: %w", req.FileName, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty analysis for %s", req.FileName)
	}
	return b.String(), nil
}
