// Package main provides the player entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirplayer/internal/app/filter"
	"github.com/osa030/dirplayer/internal/app/notification"
	"github.com/osa030/dirplayer/internal/app/playback"
	"github.com/osa030/dirplayer/internal/app/session"
	"github.com/osa030/dirplayer/internal/infra/audio"
	"github.com/osa030/dirplayer/internal/infra/config"
	"github.com/osa030/dirplayer/internal/infra/library"
	"github.com/osa030/dirplayer/internal/infra/logger"
	"github.com/osa030/dirplayer/internal/infra/probe"
	"github.com/osa030/dirplayer/internal/ui"
)

var (
	app        = kingpin.New("dirplayer", "Terminal player for the audio files of a directory")
	configPath = app.Flag("config", "Path to config file (default: built-in defaults)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file").String()
	startDir   = app.Flag("dir", "Directory the file chooser opens in").String()

	// probe command
	probeCmd  = app.Command("probe", "Print what the player reads from an audio file and exit")
	probeFile = probeCmd.Arg("file", "Audio file").Required().ExistingFile()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available filters and exit")
)

func init() {
	// tui command (default) - no need to store the command
	app.Command("tui", "Start the terminal player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// Override with command-line flags if specified
	if *startDir != "" {
		cfg.Library.StartDir = *startDir
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	if command == probeCmd.FullCommand() && loggerConfig.Output == "file" && *logfile == "" {
		loggerConfig.Output = "stderr"
	}
	logCloser, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logCloser.Close()

	if command == probeCmd.FullCommand() {
		if err := printProbe(*probeFile); err != nil {
			zlog.Error().Msgf("Probe failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Player error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the terminal player. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink, err := audio.New(audio.Config{
		SampleRate: cfg.Audio.SampleRate,
		Buffer:     cfg.AudioBuffer(),
		Quality:    cfg.Audio.ResampleQuality,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	defer sink.Close()

	// End-of-track notifications are posted into the program once it exists.
	var program *tea.Program
	dispatch := func(generation uint64) {
		if program != nil {
			program.Send(ui.TrackFinished(generation))
		}
	}

	modal := ui.NewModalSurface()
	sessionMgr, err := session.NewManager(cfg, session.Dependencies{
		Sink:     sink,
		Probe:    probe.New(),
		Scanner:  library.NewScanner(cfg.Library.Extensions...),
		Dispatch: dispatch,
		Surfaces: []notification.Surface{modal},
	})
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	defer sessionMgr.Close()

	model := ui.New(ctx, sessionMgr.Controller(), modal, ui.Options{
		Title:      cfg.Notify.AppName,
		StartDir:   sessionMgr.StartDir(),
		Extensions: cfg.Library.Extensions,
		OnEvent:    sessionMgr.HandleEvent,
	})

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	zlog.Info().Msgf("Starting player in %s", sessionMgr.StartDir())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	zlog.Info().Msg("Player stopped")
	return nil
}

// printFilters prints available filters.
func printFilters() {
	registered := filter.GetRegistered()
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available Filters:")
	for _, name := range names {
		f := registered[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// printProbe prints the metadata of a single file.
func printProbe(path string) error {
	info, err := probe.New().Describe(path)
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", info.Path)
	if info.FileType != "" {
		fmt.Printf("Type:     %s (%s)\n", info.FileType, info.Format)
	}
	if info.Title != "" {
		fmt.Printf("Title:    %s\n", info.Title)
	}
	if info.Artist != "" {
		fmt.Printf("Artist:   %s\n", info.Artist)
	}
	if info.Album != "" {
		fmt.Printf("Album:    %s\n", info.Album)
	}
	fmt.Printf("Duration: %s\n", playback.FormatElapsed(info.Duration))
	if info.Duration <= 0 {
		fmt.Println("Note:     a zero-length file is refused when selected")
	}
	return nil
}
