package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenreader/zen-t/internal/config"
	"github.com/zenreader/zen-t/internal/importer"
	"github.com/zenreader/zen-t/internal/library"
	"github.com/zenreader/zen-t/internal/llm"
	"github.com/zenreader/zen-t/internal/ui"
	"github.com/zenreader/zen-t/internal/ui/styles"
)

func main() {
	dataDir := flag.String("data", "", "Library directory (defaults to the user data dir)")
	backupPath := flag.String("backup", "", "Export the whole library to a JSON file and exit")
	restorePath := flag.String("restore", "", "Import books from a library JSON file and exit")
	showHelp := flag.Bool("help", false, "Show help message")
	flag.BoolVar(showHelp, "h", false, "Show help (shorthand)")

	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dir := cfg.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	if dir == "" {
		dir = library.DefaultDir()
	}

	store, err := library.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}

	if *backupPath != "" {
		if err := store.ExportJSON(*backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Library exported to %s\n", *backupPath)
		os.Exit(0)
	}

	if *restorePath != "" {
		count, err := store.ImportJSON(*restorePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d book(s) into %s\n", count, store.Dir())
		os.Exit(0)
	}

	// Positional arguments are files to import before starting the TUI
	if flag.NArg() > 0 {
		if err := handleImport(store, flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ai := llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.APIKey, cfg.LLM.ProModels, cfg.LLM.FlashModels, cfg.LLMTimeout())
	styles.SetCurrentTheme(cfg.Settings.Theme)

	app := ui.NewApp(cfg, store, ai)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("zen-t - Terminal book reader")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zen-t                      Start the TUI application")
	fmt.Println("  zen-t [files...]           Import files into the library and exit")
	fmt.Println("  zen-t -backup lib.json     Export the whole library to JSON")
	fmt.Println("  zen-t -restore lib.json    Import books from a library JSON file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -data <dir>      Library directory (defaults to the user data dir)")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println()
	fmt.Println("Supported import formats: " + strings.Join(importer.SupportedFormats(), ", "))
	fmt.Println()
	fmt.Println("Config: ~/.config/zen-t/config.yaml")
}

func handleImport(store *library.Store, patterns []string) error {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return fmt.Errorf("no files found matching %q", pattern)
			}
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no files to import")
	}

	fmt.Printf("Importing %d file(s) into %s...\n", len(files), store.Dir())

	successCount := 0
	for _, path := range files {
		fmt.Printf("  Importing %s... ", filepath.Base(path))

		book, err := importer.ImportFile(path)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		if err := store.Put(book); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		fmt.Printf("OK\n")
		fmt.Printf("    Title: %s\n", book.Title)
		fmt.Printf("    Chapters: %d\n", len(book.Chapters))
		successCount++
	}

	fmt.Printf("\nImported %d/%d files successfully.\n", successCount, len(files))

	if successCount < len(files) {
		return fmt.Errorf("some imports failed")
	}
	return nil
}
