package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mr-Dark-debug/treepeek/internal/bst"
	"github.com/Mr-Dark-debug/treepeek/internal/database"
	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
	"github.com/Mr-Dark-debug/treepeek/pkg/rows"
	"github.com/Mr-Dark-debug/treepeek/pkg/termsize"
	"github.com/Mr-Dark-debug/treepeek/pkg/timeutil"
	"github.com/Mr-Dark-debug/treepeek/pkg/treeview"
)

func newShowCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [values...]",
		Short: "Print the top levels of a tree",
		Example: `  treepeek show 50 30 70 20 40
  treepeek show --tree demo --attrs value:height
  treepeek show --json tree.json --rows 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(v, args)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), v, src)
		},
	}
	cmd.Flags().Int("width", 0, "Output width (default: terminal width)")
	return cmd
}

func show(w io.Writer, v *viper.Viper, src *source) error {
	acc := src.renderer.Accessors()
	root := acc.Root(src.tree)
	if fields.IsAbsent(root) {
		_, err := fmt.Fprintln(w, treeview.Empty)
		return err
	}

	fn := rows.ValueFunc(acc)
	if attrs := attrList(v); len(attrs) > 0 {
		fn = rows.AttrsFunc(acc, attrs)
	}

	width := v.GetInt("width")
	if width <= 0 {
		width = termsize.Columns()
	}
	out, err := src.renderer.Format(root, v.GetInt("rows"), fn, v.GetInt("cell-width"), width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func newBrowseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [values...]",
		Short: "Walk a tree interactively",
		Long: `Walk a tree interactively.

At the prompt:
  a / d          move to the left / right child
  w              move back up
  attr[:attr]    show these node attributes, e.g. value:height
  q, quit, exit  leave
  <enter>        repeat the last input`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(v, args)
			if err != nil {
				return err
			}
			opts := []treeview.Option{
				treeview.WithRows(v.GetInt("rows")),
				treeview.WithCellWidth(v.GetInt("cell-width")),
				treeview.WithAltScreen(!v.GetBool("inline")),
				treeview.WithOutput(cmd.OutOrStdout()),
			}
			if attrs := attrList(v); len(attrs) > 0 {
				opts = append(opts, treeview.WithAttrs(attrs...))
			}
			log.Printf("browse: starting navigator")
			return src.renderer.Display(cmd.Context(), src.tree, opts...)
		},
	}
	cmd.Flags().Bool("inline", false, "Draw below the prompt instead of in the alternate screen")
	return cmd
}

func newSeedCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <name> [values...]",
		Short: "Store a tree in the tree database",
		Long: `Insert the values into a new binary search tree and store it under
name, replacing any tree with that name. Without values a demo tree is
stored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			if len(values) == 0 {
				values = demoValues
			}

			dbPath := v.GetString("db")
			if dir := filepath.Dir(dbPath); dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("creating directory for %s: %w", dbPath, err)
				}
			}
			store, err := database.NewDBService(dbPath)
			if err != nil {
				return fmt.Errorf("opening database at %s: %w", dbPath, err)
			}
			defer store.Close()

			t := bst.New(values...)
			if err := store.SaveTree(recordFromBST(args[0], t)); err != nil {
				return err
			}
			log.Printf("seed: stored tree %q with %d nodes in %s", args[0], t.Len(), dbPath)
			fmt.Fprintf(cmd.OutOrStdout(), "stored %q (%d nodes)\n", args[0], t.Len())
			return nil
		},
	}
}

// demoValues fill a tree five levels deep.
var demoValues = []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45, 55, 65, 75, 90, 5, 28, 85}

func newTreesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "List stored trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := v.GetString("db")
			if _, err := os.Stat(dbPath); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No trees stored.")
				return nil
			}
			store, err := database.NewDBService(dbPath)
			if err != nil {
				return fmt.Errorf("opening database at %s: %w", dbPath, err)
			}
			defer store.Close()

			if name := v.GetString("delete"); name != "" {
				if err := store.DeleteTree(name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", name)
				return nil
			}

			list, err := store.ListTrees()
			if err != nil {
				return err
			}
			listTrees(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().String("delete", "", "Delete the named tree instead of listing")
	return cmd
}

func listTrees(w io.Writer, list []database.TreeSummary) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No trees stored.")
		return
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Name", "Nodes", "Created", "Age"})
	for _, ts := range list {
		tbl.Append([]string{
			ts.TreeID,
			strconv.Itoa(ts.NodeCount),
			timeutil.FormatTimestampFull(ts.CreatedAt),
			timeutil.RelativeTime(ts.CreatedAt),
		})
	}
	tbl.Render()
}
