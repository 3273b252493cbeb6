package notify

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

const (
	helperTimeout = 10 * time.Second

	notifySendTool = "notify-send"
	osascriptTool  = "osascript"
	powershellTool = "powershell"

	toastScriptPattern = "notify-complete-*.ps1"
)

// ExecNotifier shells out to the platform's notification helper:
// notify-send on Linux and BSD, osascript on macOS and a PowerShell toast
// on Windows.
type ExecNotifier struct {
	appName string
	runner  execpkg.CommandRunner
	tools   execpkg.ToolChecker
	temp    execpkg.TempFileManager
	goos    string
}

// NewExecNotifier creates an ExecNotifier.
func NewExecNotifier(appName string, deps Deps) *ExecNotifier {
	deps = deps.withDefaults()

	return &ExecNotifier{
		appName: appName,
		runner:  deps.Runner,
		tools:   deps.Tools,
		temp:    deps.TempFiles,
		goos:    deps.GOOS,
	}
}

// Name implements Notifier.
func (*ExecNotifier) Name() string {
	return string(config.BackendExec)
}

// HelperTool returns the binary the exec backend runs on goos.
func HelperTool(goos string) string {
	switch goos {
	case "darwin":
		return osascriptTool
	case "windows":
		return powershellTool
	default:
		return notifySendTool
	}
}

// Notify implements Notifier.
func (e *ExecNotifier) Notify(ctx context.Context, n config.Notification) error {
	switch tool := HelperTool(e.goos); tool {
	case osascriptTool:
		return e.run(ctx, tool, OsascriptArgs(n)...)
	case powershellTool:
		return e.toast(ctx, n)
	default:
		return e.run(ctx, tool, NotifySendArgs(e.appName, n)...)
	}
}

func (e *ExecNotifier) run(ctx context.Context, tool string, args ...string) error {
	if err := e.tools.RequireTool(tool); err != nil {
		return wrapFailure(err, e.Name())
	}

	result := e.runner.Run(ctx, tool, args...)
	if result.Failed() {
		err := result.Err
		if err == nil {
			err = errors.Newf("%s exited with code %d", tool, result.ExitCode)
		}

		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			err = errors.WithDetail(err, stderr)
		}

		return wrapFailure(err, e.Name())
	}

	return nil
}

func (e *ExecNotifier) toast(ctx context.Context, n config.Notification) error {
	path, cleanup, err := e.temp.Create(toastScriptPattern, ToastScript(e.appName, n))
	if err != nil {
		return wrapFailure(err, e.Name())
	}

	defer cleanup()

	return e.run(ctx, powershellTool,
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-File", path)
}

// NotifySendArgs builds the notify-send argument list for n.
// The server default timeout is expressed by omitting -t.
func NotifySendArgs(appName string, n config.Notification) []string {
	args := []string{"-a", appName, "-u", n.Urgency.String()}

	switch n.Timeout.Kind() {
	case config.TimeoutNever:
		args = append(args, "-t", "0")
	case config.TimeoutMilliseconds:
		ms := n.Timeout.Milliseconds()
		if ms > math.MaxInt32 {
			ms = math.MaxInt32
		}

		args = append(args, "-t", strconv.FormatUint(ms, 10))
	}

	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}

	return append(args, "--", n.Title, n.Message)
}

// OsascriptArgs builds the osascript invocation for n. Critical
// notifications play the default alert sound.
func OsascriptArgs(n config.Notification) []string {
	script := fmt.Sprintf(
		"display notification %s with title %s",
		appleScriptString(n.Message),
		appleScriptString(n.Title),
	)

	if n.Urgency == config.UrgencyCritical {
		script += ` sound name "default"`
	}

	return []string{"-e", script}
}

// ToastScript renders the PowerShell script that shows a Windows toast.
func ToastScript(appName string, n config.Notification) string {
	return fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode(%s)) | Out-Null
$text.Item(1).AppendChild($template.CreateTextNode(%s)) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
%s[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast)
`,
		powerShellString(n.Title),
		powerShellString(n.Message),
		toastExpiry(n.Timeout),
		powerShellString(appName),
	)
}

// toastExpiry sets ExpirationTime for millisecond timeouts. Toasts have no
// "never" mode, so only fixed durations change the script.
func toastExpiry(t config.Timeout) string {
	if t.Kind() != config.TimeoutMilliseconds {
		return ""
	}

	return fmt.Sprintf("$toast.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(%d)\n", t.Milliseconds())
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return `"` + r.Replace(s) + `"`
}

// powerShellString quotes s as a single-quoted PowerShell literal, in which
// only the quote itself needs escaping.
func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
