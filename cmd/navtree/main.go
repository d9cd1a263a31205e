package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/navtree/pkg/config"
	"github.com/vanderheijden86/navtree/pkg/export"
	"github.com/vanderheijden86/navtree/pkg/navtree"
	"github.com/vanderheijden86/navtree/pkg/source"
	"github.com/vanderheijden86/navtree/pkg/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// defaultExportFile receives exports triggered from the TUI.
const defaultExportFile = "navtree.md"

type options struct {
	configPath string
	kind       string
	path       string
	depth      int
	forest     bool
	title      string
	logFile    string
	watch      bool
	print      bool
	export     string
	version    bool
	help       bool

	set map[string]bool // flags given on the command line
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("navtree", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: nearest .navtree/config.yaml)")
	fs.StringVar(&opts.kind, "source", "", "Source kind: demo, file, catalog, sqlite, dir")
	fs.StringVar(&opts.path, "path", "", "Entry file, database or directory for the source")
	fs.IntVar(&opts.depth, "depth", 0, "Deepest level shown before any load (catalog, sqlite)")
	fs.BoolVar(&opts.forest, "forest", false, "Show every top-level code as a root")
	fs.StringVar(&opts.title, "title", "", "Window title")
	fs.StringVar(&opts.logFile, "log", "", "Write warnings to this file while the TUI runs")
	fs.BoolVar(&opts.watch, "watch", false, "Reload a file source when it changes")
	fs.BoolVar(&opts.print, "print", false, "Print the tree once instead of starting the TUI")
	fs.StringVar(&opts.export, "export", "", "Export the tree to a file (.txt, .md, .json, .svg) and exit")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.BoolVar(&opts.help, "help", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	path := opts.configPath
	if path == "" {
		if found, ok := config.FindConfig(""); ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		def := config.DefaultConfig()
		cfg = &def
	}

	if opts.set["source"] {
		cfg.Source.Kind = opts.kind
		if !opts.set["path"] {
			cfg.Source.Path = ""
		}
	}
	if opts.set["path"] {
		cfg.Source.Path = opts.path
		if !opts.set["source"] && cfg.Source.Kind == config.KindDemo {
			cfg.Source.Kind = config.KindFile
		}
	}
	if opts.set["depth"] {
		cfg.Source.Depth = opts.depth
	}
	if opts.set["forest"] {
		cfg.Forest = opts.forest
	}
	if opts.set["title"] {
		cfg.Title = opts.title
	}
	if opts.set["log"] {
		cfg.LogFile = opts.logFile
	}
	if opts.set["watch"] {
		cfg.Watch = opts.watch
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// dataSource is the opened backing mapping with its loader.
type dataSource struct {
	entries navtree.Entries
	loader  navtree.Loader
	reload  func() (navtree.Entries, error) // nil when the source cannot reload
	close   func() error
}

func openSource(ctx context.Context, cfg *config.Config) (*dataSource, error) {
	ds := &dataSource{close: func() error { return nil }}
	src := cfg.Source

	switch src.Kind {
	case config.KindDemo:
		ds.entries, ds.loader = source.Demo()

	case config.KindFile:
		entries, err := source.ReadFile(src.Path)
		if err != nil {
			return nil, err
		}
		ds.entries = entries
		ds.reload = func() (navtree.Entries, error) { return source.ReadFile(src.Path) }

	case config.KindCatalog:
		all, err := source.ReadFile(src.Path)
		if err != nil {
			return nil, err
		}
		catalog := source.NewCatalog(all)
		ds.entries = catalog.Initial(src.Depth)
		ds.loader = catalog

	case config.KindSQLite:
		store, err := source.OpenSQLite(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		entries, err := store.Initial(ctx, src.Depth)
		if err != nil {
			store.Close()
			return nil, err
		}
		ds.entries = entries
		ds.loader = store
		ds.reload = func() (navtree.Entries, error) { return store.Initial(context.Background(), src.Depth) }
		ds.close = store.Close

	case config.KindDir:
		dir, err := source.NewDirLoader(src.Path)
		if err != nil {
			return nil, err
		}
		entries, err := dir.Initial()
		if err != nil {
			return nil, err
		}
		ds.entries = entries
		ds.loader = dir

	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
	return ds, nil
}

func newTree(cfg *config.Config, ds *dataSource) *navtree.Tree {
	var opts []navtree.Option
	if cfg.Forest {
		opts = append(opts, navtree.WithForest())
	}
	return navtree.New(ds.entries, ds.loader, opts...)
}

// shouldRunTUI reports whether to start the interactive program. Output
// flags and a non-terminal stdout print instead.
func shouldRunTUI(opts *options, stdoutIsTerminal bool) bool {
	if opts.print || opts.export != "" {
		return false
	}
	return stdoutIsTerminal
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.help {
		fmt.Println("Usage: navtree [options]")
		fmt.Println("\nBrowse a hierarchy of dotted codes; click a label to open or close it.")
		fs.PrintDefaults()
		os.Exit(0)
	}
	if opts.version {
		fmt.Printf("navtree %s\n", version)
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ds, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer ds.close()

	tree := newTree(cfg, ds)

	if opts.export != "" {
		lines := tree.Render()
		if err := export.ExportFile(opts.export, cfg.Title, lines); err != nil {
			return err
		}
		fmt.Printf("Exported %d lines to %s\n", len(lines), opts.export)
		return nil
	}
	if !shouldRunTUI(opts, term.IsTerminal(int(os.Stdout.Fd()))) {
		return export.WriteText(os.Stdout, tree.Render())
	}

	return runTUI(ctx, cfg, ds, tree)
}

func runTUI(ctx context.Context, cfg *config.Config, ds *dataSource, tree *navtree.Tree) error {
	// Warnings would corrupt the screen, so they go to the log file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "navtree")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var appOpts []ui.AppOption
	appOpts = append(appOpts, ui.WithExportPath(defaultExportFile))
	if ds.reload != nil {
		appOpts = append(appOpts, ui.WithReload(ds.reload))
	}
	app := ui.NewApp(tree, cfg.Title, ui.NewStyles(nil, cfg.Theme), appOpts...)

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if cfg.UseAltScreen() {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app, progOpts...)

	if cfg.Watch {
		w, err := source.NewWatcher(cfg.Source.Path, source.DefaultDebounce, func(entries navtree.Entries) {
			p.Send(ui.ReloadMsg{Entries: entries})
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}
