package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fbritoferreira/m3u8-parser/internal/config"
	"github.com/fbritoferreira/m3u8-parser/internal/fetch"
	"github.com/fbritoferreira/m3u8-parser/internal/parser"
	"github.com/fbritoferreira/m3u8-parser/internal/player"
	"github.com/fbritoferreira/m3u8-parser/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "m3u8-parser [path-or-url]",
	Short: "Parse, filter, and browse extended M3U playlists",
	Long: `IPTV playlist tool for extended M3U files.

Parses #EXTM3U playlists from a local file or URL, browse channels
interactively, filter them by group, and print, copy, or play the
selected stream.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

var filterCmd = &cobra.Command{
	Use:   "filter [path-or-url]",
	Short: "Render a playlist reduced to the given groups",
	Long: `Filters the playlist by group title and writes the reduced
playlist text to stdout. Matching is a case-insensitive prefix match,
so -g sports selects "Sports" and "Sports HD".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

var groupsCmd = &cobra.Command{
	Use:   "groups [path-or-url]",
	Short: "List distinct group titles in first-seen order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGroups,
}

var catCmd = &cobra.Command{
	Use:   "cat [path-or-url]",
	Short: "Parse and re-render the playlist (lossless round trip)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCat,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(catCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy, play")
	rootCmd.Flags().StringP("query", "q", "", "Initial search query")
	rootCmd.Flags().StringP("group", "g", "", "Initial group filter")
	rootCmd.Flags().Bool("print", false, "Print stream URL (shorthand for -o print)")
	rootCmd.Flags().Bool("copy", false, "Copy stream URL (shorthand for -o copy)")
	rootCmd.Flags().Bool("play", false, "Play stream (shorthand for -o play)")
	rootCmd.Flags().BoolP("benchmark", "b", false, "Benchmark load time and exit")

	filterCmd.Flags().StringSliceP("group", "g", nil, "Group to keep (repeatable)")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// loadPlaylist resolves the source argument against config and parses it
func loadPlaylist(args []string) (*parser.Playlist, error) {
	source := config.GetPlaylist()
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return nil, fmt.Errorf("no playlist given (pass a path or URL, or set playlist in config)")
	}

	text, err := fetch.Load(source)
	if err != nil {
		return nil, err
	}

	pl, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return pl, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Handle output mode flags
	if p, _ := cmd.Flags().GetBool("print"); p {
		config.SetOutput("print")
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput("copy")
	} else if e, _ := cmd.Flags().GetBool("play"); e {
		config.SetOutput("play")
	} else if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}

	query, _ := cmd.Flags().GetString("query")
	group, _ := cmd.Flags().GetString("group")
	benchmark, _ := cmd.Flags().GetBool("benchmark")

	start := time.Now()
	pl, err := loadPlaylist(args)
	if err != nil {
		return err
	}

	if benchmark {
		elapsed := time.Since(start)
		// Force GC and get memory stats
		runtime.GC()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Printf("Loaded %d channels in %d groups in %v\n", len(pl.Entries), len(pl.Groups()), elapsed)
		fmt.Printf("Memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, HeapObjects=%d\n",
			m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.HeapObjects)
		return nil
	}

	if len(pl.Entries) == 0 {
		return fmt.Errorf("no channels found in playlist")
	}

	selected, err := ui.Run(pl, query, group)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil // Cancelled
	}

	return player.NewPlayer().Output(selected)
}

func runFilter(cmd *cobra.Command, args []string) error {
	groups, _ := cmd.Flags().GetStringSlice("group")
	if len(groups) == 0 {
		return fmt.Errorf("no groups given (use -g)")
	}

	pl, err := loadPlaylist(args)
	if err != nil {
		return err
	}

	var entries []*parser.Entry
	if len(groups) == 1 {
		entries = pl.FilterByGroup(groups[0])
	} else {
		entries = pl.FilterByGroups(groups)
	}

	fmt.Println(pl.RenderEntries(entries))
	return nil
}

func runGroups(cmd *cobra.Command, args []string) error {
	pl, err := loadPlaylist(args)
	if err != nil {
		return err
	}
	for _, group := range pl.Groups() {
		if group == "" {
			group = "(none)"
		}
		fmt.Println(group)
	}
	return nil
}

func runCat(cmd *cobra.Command, args []string) error {
	pl, err := loadPlaylist(args)
	if err != nil {
		return err
	}
	fmt.Println(pl.Render())
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
