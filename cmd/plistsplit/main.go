package main

import (
	"fmt"
	"os"

	plistsplit "github.com/mhwtools/plistsplit"
	"github.com/mhwtools/plistsplit/pkg/imager"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	plistPath string
	imagePath string
	outputDir string
	quiet     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plistsplit",
		Short: "Split a sprite sheet into individual PNG files",
		Long: "A tool to split a composite sprite-sheet image into individual PNG files, " +
			"using a plist metadata file that records each sprite's name and bounding rectangle",
		Run: run,
	}

	rootCmd.Flags().StringVarP(&plistPath, "plist", "p", "", "Sprite-sheet plist file (required)")
	rootCmd.Flags().StringVarP(&imagePath, "image", "i", "", "Sprite-sheet image file (required)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (default: ~/Documents/MHwPlistSplitter/<plist-name>)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-sprite progress output")

	rootCmd.MarkFlagRequired("plist")
	rootCmd.MarkFlagRequired("image")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("plistsplit version %s\n", plistsplit.Version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\nplistsplit - PNG Sprite Sheet Splitter")
	cyan.Println("======================================")
	cyan.Println()

	dir := outputDir
	if dir == "" {
		var err error
		dir, err = imager.DefaultOutputDir(plistPath)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := plistsplit.Options{
		PlistPath: plistPath,
		ImagePath: imagePath,
		OutputDir: dir,
	}
	if !quiet {
		opts.Logger = &cliLogger{}
	}

	result, err := plistsplit.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Println("\nSummary:")
	fmt.Printf("  - Sprites: %d of %d saved\n", result.Succeeded, result.Attempted)
	if len(result.Skipped) > 0 {
		fmt.Printf("  - Skipped (no frame data): %d\n", len(result.Skipped))
	}
	for _, f := range result.Failures() {
		red.Printf("  - Failed %s: %v\n", f.Name, f.Err)
	}

	green.Printf("\nDone! Split %d sprites to: %s\n", result.Succeeded, result.OutputDir)
}

// cliLogger implements plistsplit.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("! "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("x "+format+"\n", args...)
}
