// Package output renders resolution results for the CLI and the HTTP API.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/XGenerationLab/XiYan-DateResolver/libdate"
)

// Options controls output formatting.
type Options struct {
	JSON   bool // Output as JSON
	Header bool // Prepend the today header to text output
}

// Result is one resolved expression.
type Result struct {
	Expression string           `json:"expression"`
	Category   libdate.Category `json:"category"`
	Value      string           `json:"value"`
	Outcome    libdate.Outcome  `json:"outcome"`
	Error      string           `json:"error,omitempty"`
}

// ResolveResponse is the result of resolving a batch of expressions.
type ResolveResponse struct {
	Today   string   `json:"today"`
	Quarter int      `json:"quarter"`
	Lines   []string `json:"lines"`
	Results []Result `json:"results"`
}

// ListResponse represents a plain list, such as the pattern catalog.
type ListResponse struct {
	Value any `json:"value"`
	Count int `json:"count"`
}

// ActionResponse represents the response from an action command (e.g., config set).
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of a failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormatResolveResponse builds a ResolveResponse for results resolved against anchor.
func FormatResolveResponse(anchor time.Time, results []libdate.Resolution) *ResolveResponse {
	resp := &ResolveResponse{
		Today:   anchor.Format("2006年01月02日"),
		Quarter: libdate.Quarter(anchor),
		Lines:   libdate.Lines(results),
		Results: make([]Result, len(results)),
	}
	for i, r := range results {
		resp.Results[i] = Result{
			Expression: r.Expression,
			Category:   r.Category,
			Value:      r.Value,
			Outcome:    r.Outcome,
		}
		if r.Err != nil {
			resp.Results[i].Error = r.Err.Error()
		}
	}
	return resp
}

// WriteText writes the response lines, one per line, optionally preceded by
// the today header and the prompt line.
func WriteText(w io.Writer, anchor time.Time, resp *ResolveResponse, header bool) error {
	lines := resp.Lines
	if header {
		lines = append([]string{libdate.TodayHeader(anchor), libdate.ExpressionsPrompt}, lines...)
	}
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// Write writes the response as JSON or text depending on opts.
func Write(w io.Writer, anchor time.Time, resp *ResolveResponse, opts Options) error {
	if opts.JSON {
		return WriteJSON(w, resp)
	}
	return WriteText(w, anchor, resp, opts.Header)
}

// WriteJSON writes a value as JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// FormatListResponse creates a ListResponse with the given values.
func FormatListResponse(value any, count int) *ListResponse {
	return &ListResponse{
		Value: value,
		Count: count,
	}
}

// FormatActionResponse creates an ActionResponse.
func FormatActionResponse(success bool, message string) *ActionResponse {
	return &ActionResponse{
		Success: success,
		Message: message,
	}
}
