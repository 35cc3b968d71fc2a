package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the heading outline of an org file",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

var headingCmd = &cobra.Command{
	Use:   "heading FILE HEADINGPATH",
	Short: "Print the raw span of a heading, named by a slash-separated path",
	Args:  cobra.ExactArgs(2),
	RunE:  runHeading,
}

var elementByIDCmd = &cobra.Command{
	Use:   "element-by-id ID",
	Short: "Print the raw span of the element carrying a given :ID:",
	Args:  cobra.ExactArgs(1),
	RunE:  runElementByID,
}

func init() {
	outlineCmd.Flags().StringP("format", "f", "", "output format: plain or json")
	rootCmd.AddCommand(outlineCmd, headingCmd, elementByIDCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	file := filepath.FromSlash(args[0])

	tree, err := eng.GetOutline(file)
	if err != nil {
		return err
	}

	if resolvedFormat(cmd, eng.Config()) == "json" {
		return printJSON(os.Stdout, tree)
	}

	if len(tree.Children) == 0 {
		fmt.Printf("No headings found in %s\n", file)
		return nil
	}
	fmt.Println(indentedOutline(tree))
	return nil
}

func runHeading(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	content, err := eng.GetHeading(filepath.FromSlash(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}

func runElementByID(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	content, err := eng.GetElementByID(args[0])
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}
