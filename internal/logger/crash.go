// Package logger records panics to crash files under the RepoWing data
// directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the data directory.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep.
	MaxCrashLogs = 10
)

// crashState is what a crash file reports besides the panic itself.
type crashState struct {
	mu       sync.RWMutex
	basePath string
	version  string
	command  string
	target   string
}

var state = &crashState{}

// SetBasePath sets the data directory crash logs are written under.
func SetBasePath(path string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.basePath = path
}

// SetVersion sets the application version.
func SetVersion(version string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.version = version
}

// SetCommand records the running command and the repository it targets.
func SetCommand(command, target string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.command = command
	state.target = target
}

// CrashLog is one recovered panic.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	Target     string
	PanicValue string
	StackTrace string
}

// HandlePanic recovers, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	path, err := WriteCrashLog(newCrashLog(r, debug.Stack()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\n🔴 RepoWing encountered an unexpected error.\n\n")
	fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n\n", path)
	os.Exit(1)
}

func newCrashLog(panicValue any, stack []byte) CrashLog {
	state.mu.RLock()
	defer state.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    state.version,
		Command:    state.command,
		Target:     state.target,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(stack),
	}
}

// WriteCrashLog writes log to the crash directory, pruning the oldest files
// beyond MaxCrashLogs, and returns the new file's path.
func WriteCrashLog(log CrashLog) (string, error) {
	dir := crashLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", log.Timestamp.Format("20060102_150405.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := formatCrashLog(f, log); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	if err := pruneCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to prune crash logs: %v\n", err)
	}
	return path, nil
}

func crashLogDir() string {
	state.mu.RLock()
	defer state.mu.RUnlock()

	base := state.basePath
	if base == "" {
		base = ".repowing"
	}
	return filepath.Join(base, CrashLogDir)
}

func formatCrashLog(w io.Writer, log CrashLog) error {
	rule := strings.Repeat("-", 72)
	_, err := fmt.Fprintf(w, "REPOWING CRASH LOG\n%s\n"+
		"Timestamp: %s\nVersion:   %s\nCommand:   %s\nTarget:    %s\nGo:        %s %s/%s\n"+
		"%s\n%s\n%s\n%s\n",
		rule,
		log.Timestamp.Format(time.RFC3339), log.Version, log.Command, log.Target,
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
		rule, log.PanicValue, rule, log.StackTrace)
	return err
}

// CrashLogs lists crash files oldest first.
func CrashLogs() ([]string, error) {
	return listCrashLogs(crashLogDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	// names embed the timestamp
	sort.Strings(logs)
	return logs, nil
}

func pruneCrashLogs(dir string) error {
	logs, err := listCrashLogs(dir)
	if err != nil {
		return err
	}
	for len(logs) > MaxCrashLogs {
		if err := os.Remove(logs[0]); err != nil {
			return fmt.Errorf("remove old crash log: %w", err)
		}
		logs = logs[1:]
	}
	return nil
}
