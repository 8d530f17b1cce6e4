package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/canopy/internal/datasource"
	"github.com/vanderheijden86/canopy/pkg/config"
	"github.com/vanderheijden86/canopy/pkg/export"
	"github.com/vanderheijden86/canopy/pkg/loader"
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/nav"
	"github.com/vanderheijden86/canopy/pkg/ui"
	"github.com/vanderheijden86/canopy/pkg/version"
	"github.com/vanderheijden86/canopy/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dataPath := flag.String("data", "", "Dataset file or directory (default: current directory)")
	depth := flag.Int("depth", 0, "Window depth below the focus (default: from config)")
	describePath := flag.String("describe", "", "Print JSON detail for a node path (e.g. '0/2/1') and exit")
	summaryFlag := flag.Bool("summary", false, "Print JSON dataset summary and exit")
	snapshotPath := flag.String("snapshot", "", "Write a snapshot (svg/png by extension) and exit")
	exportFlag := flag.Bool("export", false, "Run the interactive export wizard and exit")
	checkSources := flag.Bool("check-sources", false, "Compare all discovered sources for inconsistencies and exit")
	noWatch := flag.Bool("no-watch", false, "Disable live dataset reloading")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: canopy [options]")
		fmt.Println("\nA windowed viewer for large weighted hierarchies.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("canopy %s\n", version.Version)
		os.Exit(0)
	}

	appCfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		appCfg = config.DefaultConfig()
	}

	if *checkSources {
		runCheckSources(dataDir(*dataPath))
		return
	}

	tree, src, err := loadDataset(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		fmt.Fprintln(os.Stderr, "Point --data at a flare JSON file, a canopy SQLite export, or a directory containing one.")
		os.Exit(1)
	}

	windowDepth := appCfg.UI.WindowDepth
	if *depth > 0 {
		windowDepth = *depth
	}

	engine, err := nav.New(tree, nav.WithWindowDepth(windowDepth))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Robot modes: structured output, no TUI.
	if *describePath != "" {
		if err := printDescribe(os.Stdout, engine, *describePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *summaryFlag {
		if err := printSummary(os.Stdout, engine, src.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *snapshotPath != "" {
		err := export.SaveSnapshot(export.SnapshotOptions{
			Path:  *snapshotPath,
			Title: filepath.Base(src.Path),
			Root:  tree,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to %s\n", *snapshotPath)
		return
	}

	if *exportFlag {
		wiz := export.NewWizard(tree, tree)
		cfg, err := wiz.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported to %s\n", cfg.OutputPath)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Stdout is not a terminal. Use --describe, --summary, or --snapshot for non-interactive output.")
		os.Exit(1)
	}

	opts := []ui.ModelOption{
		ui.WithDatasetName(filepath.Base(src.Path)),
		ui.WithShowWeights(appCfg.WeightsVisible()),
	}
	if dir := appCfg.Export.Directory; dir != "" {
		opts = append(opts, ui.WithSnapshotDir(dir))
	}

	var w *watcher.Watcher
	if !*noWatch && appCfg.WatchEnabled() && src.Path != "" {
		w, err = watcher.New(src.Path,
			watcher.WithForcePoll(appCfg.Watch.ForcePoll || appCfg.Watch.Mode == "poll"),
			watcher.WithPollInterval(time.Duration(appCfg.Watch.PollIntervalSecs)*time.Second),
		)
		if err == nil && w.Start() == nil {
			reload := func() (*model.Node, error) {
				return datasource.LoadFromSource(src)
			}
			opts = append(opts, ui.WithWatcher(w, reload))
			defer w.Stop()
		}
	}

	m := ui.NewModel(engine, opts...)
	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running canopy: %v\n", err)
		os.Exit(1)
	}
}

func dataDir(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// loadDataset resolves the --data flag: a file loads directly, a directory
// (or empty flag) goes through multi-source discovery.
func loadDataset(path string) (*model.Node, datasource.DataSource, error) {
	if path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			src := datasource.DataSource{Type: datasource.SourceTypeJSON, Path: path, Valid: true}
			if ext := filepath.Ext(path); ext == ".sqlite3" || ext == ".db" {
				src.Type = datasource.SourceTypeSQLite
			}
			tree, err := datasource.LoadFromSource(src)
			return tree, src, err
		}
		return datasource.LoadTree(path)
	}

	// No flag: try env override first, then discovery in the cwd.
	if envPath := os.Getenv(loader.DatasetEnvVar); envPath != "" {
		tree, err := loader.LoadTree(envPath)
		return tree, datasource.DataSource{Type: datasource.SourceTypeJSON, Path: envPath, Valid: true}, err
	}
	return datasource.LoadTree("")
}

func runCheckSources(dir string) {
	sources, err := datasource.DiscoverSources(datasource.DiscoveryOptions{
		DataDir:                dir,
		ValidateAfterDiscovery: true,
		IncludeInvalid:         true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		fmt.Println("No sources found.")
		return
	}

	for _, s := range sources {
		fmt.Println(s.String())
	}

	diffs, err := datasource.CheckAllSourcesConsistent(sources, datasource.DefaultDiffOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(diffs) == 0 {
		fmt.Println("All valid sources are consistent.")
		return
	}
	for _, d := range diffs {
		fmt.Print(d.Summary())
	}
	os.Exit(1)
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
