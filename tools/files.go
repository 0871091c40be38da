// File context helpers shared by the tool bases.
//
// PLANNING steps embed references only (path, size, language hint);
// later phases embed full bodies under the remaining token budget.

package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richinex/conclave/internal/tokens"
	"github.com/richinex/conclave/storage"
)

// FileReference renders a reference line for a file without its body.
func FileReference(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("%s (unreadable: %v)", path, err)
	}
	return fmt.Sprintf("%s (%s, %s)", path, humanSize(info.Size()), languageHint(path))
}

// formatReferences renders reference lines for several files.
func formatReferences(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("=== FILE REFERENCES ===\n")
	for _, p := range paths {
		sb.WriteString(FileReference(p))
		sb.WriteString("\n")
	}
	sb.WriteString("=== END FILE REFERENCES ===")
	return sb.String()
}

// embedFiles reads file bodies and renders them as delimited blocks,
// skipping paths already embedded and stopping when the budget runs
// out. Returns the rendered block, the paths embedded, and the tokens
// consumed.
func embedFiles(paths []string, skip map[string]bool, budget int) (string, []string, int) {
	var sb strings.Builder
	var embedded []string
	used := 0
	for _, path := range paths {
		if skip[path] {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cost := tokens.Estimate(string(data)) + tokens.Estimate(path)
		if used+cost > budget {
			break
		}
		used += cost
		fmt.Fprintf(&sb, "--- BEGIN FILE: %s ---\n%s\n--- END FILE: %s ---\n", path, data, path)
		embedded = append(embedded, path)
	}
	return strings.TrimRight(sb.String(), "\n"), embedded, used
}

// formatHistoryFiles renders files retained by the history builder.
func formatHistoryFiles(files []storage.EmbeddedFile) string {
	if len(files) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "--- BEGIN FILE: %s ---\n%s\n--- END FILE: %s ---\n", f.Path, f.Content, f.Path)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// humanSize renders a byte count for reference lines.
func humanSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// languageHint guesses the language from the file extension.
func languageHint(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".mjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cc", ".cpp", ".hpp":
		return "c++"
	case ".rb":
		return "ruby"
	case ".sh":
		return "shell"
	case ".md":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".sql":
		return "sql"
	case ".html":
		return "html"
	case ".css":
		return "css"
	default:
		return "text"
	}
}
