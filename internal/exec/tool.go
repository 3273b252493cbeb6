package exec

//go:generate mockgen -source=tool.go -destination=tool_mock.go -package=exec

import (
	"os/exec"

	"github.com/cockroachdb/errors"
)

// ErrToolNotFound is returned when none of the requested helper programs is in PATH.
var ErrToolNotFound = errors.New("tool not found in PATH")

// ToolChecker looks up helper programs such as notify-send or osascript.
type ToolChecker interface {
	// IsAvailable reports whether tool resolves in PATH.
	IsAvailable(tool string) bool

	// FindTool returns the first of alternatives found in PATH, or "".
	FindTool(alternatives ...string) string

	// RequireTool returns ErrToolNotFound when tool is missing.
	RequireTool(tool string) error
}

type toolChecker struct {
	lookPath func(string) (string, error)
}

// NewToolChecker creates a ToolChecker backed by exec.LookPath.
func NewToolChecker() ToolChecker {
	return &toolChecker{lookPath: exec.LookPath}
}

func (t *toolChecker) IsAvailable(tool string) bool {
	if tool == "" {
		return false
	}

	_, err := t.lookPath(tool)

	return err == nil
}

func (t *toolChecker) FindTool(alternatives ...string) string {
	for _, tool := range alternatives {
		if t.IsAvailable(tool) {
			return tool
		}
	}

	return ""
}

func (t *toolChecker) RequireTool(tool string) error {
	if t.IsAvailable(tool) {
		return nil
	}

	return errors.WithHint(
		errors.Wrap(ErrToolNotFound, tool),
		"install "+tool+" or choose another notifier backend",
	)
}
