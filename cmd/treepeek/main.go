// Command treepeek draws and browses binary search trees in the terminal.
//
// Usage:
//
//	treepeek <command> [flags] [values...]
//
// Commands:
//
//	show     Print the top levels of a tree
//	browse   Walk a tree interactively
//	seed     Store a demo tree in the tree database
//	trees    List stored trees
//
// Trees come from integer arguments (inserted into a fresh BST), from a
// stored tree (--tree, in --db) or from a nested JSON file (--json).
// Every flag can also be set through a TREEPEEK_* environment variable,
// e.g. TREEPEEK_ROWS=6, or from a config file given with --config.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/treepeek/pkg/layout"
	"github.com/Mr-Dark-debug/treepeek/pkg/rows"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var logFile *os.File

	root := &cobra.Command{
		Use:     "treepeek",
		Short:   "Draw and browse binary search trees",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		// SilenceUsage is set to true -> https://github.com/spf13/cobra/issues/340
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cmd); err != nil {
				return err
			}
			// Standard output belongs to the renderer.
			log.SetOutput(io.Discard)
			if path := v.GetString("debug-log"); path != "" {
				f, err := tea.LogToFile(path, "treepeek")
				if err != nil {
					return fmt.Errorf("opening debug log %s: %w", path, err)
				}
				logFile = f
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
	}

	addSharedFlags(root.PersistentFlags())

	root.AddCommand(
		newShowCmd(v),
		newBrowseCmd(v),
		newSeedCmd(v),
		newTreesCmd(v),
	)
	return root
}

// addSharedFlags declares the flags every command reads through viper.
func addSharedFlags(f *pflag.FlagSet) {
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".treepeek", "trees.db")

	f.String("config", "", "Config file (yaml, json or toml)")
	f.String("db", defaultDB, "Path to the SQLite tree database")
	f.String("tree", "", "Name of a stored tree to load")
	f.String("json", "", "Path to a nested JSON tree")
	f.Int("rows", rows.DefaultMaxRows, "Number of tree levels to draw")
	f.Int("cell-width", layout.DefaultCellWidth, "Width each node is centered in")
	f.String("attrs", "", "Colon-separated node attributes to show, e.g. value:height")
	f.String("debug-log", "", "Write debug logs to this file")
}

// loadConfig binds flags to v, with TREEPEEK_* environment variables and
// an optional config file underneath them.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("treepeek")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return nil
}

// attrList splits the --attrs value.
func attrList(v *viper.Viper) []string {
	s := strings.TrimSpace(v.GetString("attrs"))
	if s == "" {
		return nil
	}
	return strings.Split(s, ":")
}
