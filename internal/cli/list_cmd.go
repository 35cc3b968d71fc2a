package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jra3/orgmind/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every .org file under the configured root",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var initDirCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Initialise or validate an org directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInitDir,
}

var readCmd = &cobra.Command{
	Use:   "read FILE",
	Short: "Print the raw contents of an org file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	listCmd.Flags().StringP("format", "f", "", "output format: plain or json")
	listCmd.Flags().StringSliceP("tags", "t", nil, "only list files whose #+FILETAGS include all of these")
	listCmd.Flags().IntP("limit", "l", 0, "maximum number of files to list (0 = unlimited)")

	rootCmd.AddCommand(listCmd, initDirCmd, readCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	cfg := eng.Config()

	tags, _ := cmd.Flags().GetStringSlice("tags")
	limit, _ := cmd.Flags().GetInt("limit")

	var tagsFilter map[string]struct{}
	if len(tags) > 0 {
		tagsFilter = make(map[string]struct{}, len(tags))
		for _, t := range tags {
			tagsFilter[t] = struct{}{}
		}
	}

	files, err := eng.ListFiles(tagsFilter, limit)
	if err != nil {
		return err
	}

	switch resolvedFormat(cmd, cfg) {
	case "json":
		return printJSON(os.Stdout, map[string]any{
			"directory": cfg.OrgDirectory,
			"count":     len(files),
			"files":     files,
		})
	default:
		if len(files) == 0 {
			fmt.Printf("No .org files found in %s\n", cfg.OrgDirectory)
			return nil
		}
		fmt.Printf("Found %s .org files in %s:\n", count(len(files)), cfg.OrgDirectory)
		for _, f := range files {
			fmt.Println(" ", f)
		}
		return nil
	}
}

// runInitDir validates (or creates) the directory to be used as the org
// root, without touching org_default_notes_file or any agenda file within
// it.
func runInitDir(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil && len(args) == 0 {
		return err
	}

	dir := ""
	if cfg != nil {
		dir = cfg.OrgDirectory
	}
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given and none configured")
	}

	if cfg == nil {
		cfg = config.Default()
	}
	if applyErr := cfg.ApplyOverrides(dir); applyErr == nil {
		fmt.Printf("\u2713 Org directory '%s' is valid and accessible\n", dir)
		return nil
	}

	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		fmt.Printf("Directory '%s' doesn't exist. Creating...\n", dir)
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
		fmt.Printf("\u2713 Created org directory '%s'\n", dir)
		if applyErr := cfg.ApplyOverrides(dir); applyErr != nil {
			return applyErr
		}
		fmt.Printf("\u2713 Org directory '%s' is ready for use\n", dir)
		return nil
	}

	return fmt.Errorf("failed to initialise org directory '%s'", dir)
}

func runRead(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	content, err := eng.ReadFile(filepath.FromSlash(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}
