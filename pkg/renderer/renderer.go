// Package renderer invokes the external HTML-to-PPTX converter. The converter
// is an opaque collaborator: this adapter only shells out, enforces a
// deadline, and reports the outcome. No retry happens at this layer.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultLayout  = "LAYOUT_16x9"
	DefaultTimeout = 120 * time.Second
)

type Renderer struct {
	// Command is the converter executable, typically "node".
	Command string
	// Script is the converter entrypoint path.
	Script  string
	Layout  string
	Timeout time.Duration
}

func NewRenderer(command, script string) *Renderer {
	return &Renderer{
		Command: command,
		Script:  script,
		Layout:  DefaultLayout,
		Timeout: DefaultTimeout,
	}
}

// BuildOutcome reports one converter invocation.
type BuildOutcome struct {
	Success    bool
	OutputPath string
	SlideCount int
	Errors     []string
}

// Build converts the HTML files in slidesDir into a single PPTX at outputPath.
// Non-zero exit, a missing output file, and a timeout are all reported through
// the outcome's error list; the returned outcome is never nil.
func (r *Renderer) Build(ctx context.Context, slidesDir, outputPath string) *BuildOutcome {
	if _, err := os.Stat(r.Script); err != nil {
		return &BuildOutcome{
			Success: false,
			Errors:  []string{fmt.Sprintf("Converter script not found: %s", r.Script)},
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return &BuildOutcome{
			Success: false,
			Errors:  []string{fmt.Sprintf("Failed to create build directory: %v", err)},
		}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Command, r.Script,
		"--input", slidesDir,
		"--output", outputPath,
		"--layout", r.layout(),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &BuildOutcome{
			Success: false,
			Errors:  []string{fmt.Sprintf("Converter timed out after %s", timeout)},
		}
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return &BuildOutcome{
			Success: false,
			Errors:  []string{fmt.Sprintf("Converter failed: %s", msg)},
		}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return &BuildOutcome{
			Success: false,
			Errors:  []string{"Converter completed but PPTX file was not created"},
		}
	}

	htmlFiles, _ := filepath.Glob(filepath.Join(slidesDir, "*.html"))

	return &BuildOutcome{
		Success:    true,
		OutputPath: outputPath,
		SlideCount: len(htmlFiles),
	}
}

func (r *Renderer) layout() string {
	if r.Layout == "" {
		return DefaultLayout
	}
	return r.Layout
}

// SafeFilename sanitizes a presentation title into a filesystem-safe PPTX name.
func SafeFilename(title string) string {
	var sb strings.Builder
	for _, c := range title {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == ' ', c == '-', c == '_':
			sb.WriteRune(c)
		default:
			sb.WriteRune('_')
		}
	}
	name := sb.String()
	if len(name) > 50 {
		name = name[:50]
	}
	if strings.TrimSpace(name) == "" {
		name = "presentation"
	}
	return name + ".pptx"
}
