package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/grovetools/xstatus/logging"
	"github.com/grovetools/xstatus/pkg/paths"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the status loop log",
		Long: `Print the log file written by 'xstatus run'.

Examples:
  # Last 50 lines
  xstatus logs --tail 50

  # Follow the log
  xstatus logs -f`,
		Args: cobra.NoArgs,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")

	path, err := findLogFile(logging.LoadConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	offset, err := printLastLines(out, path, tailLines)
	if err != nil {
		return err
	}
	if !follow {
		return nil
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("cannot follow %s: %w", path, err)
	}
	defer t.Cleanup()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			fmt.Fprintln(out, line.Text)
		case <-stop:
			return t.Stop()
		case <-cmd.Context().Done():
			return t.Stop()
		}
	}
}

// findLogFile returns the configured log file, or the newest non-empty
// daemon log in the log directory.
func findLogFile(cfg logging.Config) (string, error) {
	if cfg.File.Disabled {
		return "", fmt.Errorf("file logging is disabled in the logging config")
	}
	if cfg.File.Path != "" {
		return cfg.FilePath(logging.DaemonComponent, time.Now()), nil
	}
	return findLatestLogFile(paths.LogDir(), logging.DaemonComponent+"-[0-9]*.log")
}

// findLatestLogFile finds the most recently modified matching file in a
// directory, preferring files with content.
func findLatestLogFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}

	var latest, latestNonEmpty os.FileInfo
	var latestPath, latestNonEmptyPath string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if latest == nil || info.ModTime().After(latest.ModTime()) {
			latest, latestPath = info, m
		}
		if info.Size() > 0 && (latestNonEmpty == nil || info.ModTime().After(latestNonEmpty.ModTime())) {
			latestNonEmpty, latestNonEmptyPath = info, m
		}
	}

	if latestNonEmpty != nil {
		return latestNonEmptyPath, nil
	}
	if latest == nil {
		return "", fmt.Errorf("no log files found in %s", dir)
	}
	return latestPath, nil
}

// printLastLines writes the last n lines of path (all when n < 0) and returns
// the offset of the end of the file.
func printLastLines(w io.Writer, path string, n int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var lines []string
	var offset int64
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		offset += int64(len(line))
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return offset, nil
}
