// Package plugins provides exec-based plugin support for devjournal.
// Plugins are separate binaries named devjournal-<command> that are discovered
// and executed when an unknown command is invoked. The narrate plugin is also
// called by the record command to write the prose sections of an entry.
//
// This follows the same pattern used by kubectl and git for plugins.
package plugins

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ccollicutt/devjournal/pkg/gitlog"
	"github.com/ccollicutt/devjournal/pkg/output"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "devjournal-"

// KnownPlugins lists plugins the CLI knows how to talk to.
// These get special error messages describing what they do.
var KnownPlugins = map[string]string{
	"narrate": "Writes the Summary, Dialogue and Technical Decisions sections of an entry from the commit.",
}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// FindPlugin searches for a plugin binary named devjournal-<command>.
// It searches in the following locations in order:
//  1. Same directory as the devjournal binary
//  2. ~/.devjournal/plugins/
//  3. Anywhere in PATH
//
// Returns the full path to the plugin binary if found.
func FindPlugin(command string) (string, error) {
	pluginName := Prefix + command

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(homeDir, ".devjournal", "plugins", pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(pluginName); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// Execute runs a plugin with the given arguments.
// It connects stdin, stdout, and stderr to the plugin process
// and returns the plugin's exit code.
func Execute(pluginPath string, args []string) int {
	cmd := exec.Command(pluginPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing plugin: %v\n", err)
		return 1
	}

	return 0
}

// Narrate runs the narrative plugin at pluginPath with commit encoded as JSON
// on stdin and decodes the narrative it prints on stdout.
func Narrate(ctx context.Context, pluginPath string, commit *gitlog.Commit) (output.Narrative, error) {
	input, err := json.Marshal(commit)
	if err != nil {
		return output.Narrative{}, fmt.Errorf("encoding commit: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, pluginPath)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return output.Narrative{}, fmt.Errorf("running %s: %w: %s", filepath.Base(pluginPath), err, msg)
		}
		return output.Narrative{}, fmt.Errorf("running %s: %w", filepath.Base(pluginPath), err)
	}

	var n output.Narrative
	if err := json.Unmarshal(stdout.Bytes(), &n); err != nil {
		return output.Narrative{}, fmt.Errorf("decoding %s output: %w", filepath.Base(pluginPath), err)
	}
	return n, nil
}

// FormatNotFoundError returns a helpful error message when a plugin is not found.
// If the command is a known plugin, includes what it is for.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("unknown command %q for \"devjournal\"\n", command))

	if info, ok := KnownPlugins[command]; ok {
		sb.WriteString(fmt.Sprintf("\n%q is available as a plugin.\n", command))
		sb.WriteString(info)
		sb.WriteString("\n\nInstall the plugin binary as one of:\n")
	} else {
		sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	}

	sb.WriteString(fmt.Sprintf("  - %s%s in the same directory as devjournal\n", Prefix, command))
	sb.WriteString(fmt.Sprintf("  - ~/.devjournal/plugins/%s%s\n", Prefix, command))
	sb.WriteString(fmt.Sprintf("  - %s%s anywhere in your PATH\n", Prefix, command))

	sb.WriteString("\nRun 'devjournal --help' for usage.")

	return sb.String()
}

// isExecutable checks if a file exists and is executable.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if info.Mode().IsRegular() {
		return info.Mode()&0111 != 0
	}

	return false
}
