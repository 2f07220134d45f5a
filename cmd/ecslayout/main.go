package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ecs-layout/codegen"
	"github.com/wippyai/ecs-layout/manifest"
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/registry/redisstore"
	"github.com/wippyai/ecs-layout/registry/sqlitestore"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
)

type config struct {
	manifest    string
	width       string
	gen         string
	out         string
	redisAddr   string
	sqlitePath  string
	asJSON      bool
	verify      bool
	register    bool
	verbose     bool
	interactive bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.manifest, "manifest", "", "Path to component manifest (JSON)")
	flag.StringVar(&cfg.width, "width", "", "Pointer width to plan for: 4, 8 or both (default: manifest width)")
	flag.BoolVar(&cfg.asJSON, "json", false, "Print layouts as JSON")
	flag.StringVar(&cfg.gen, "gen", "", "Generate typed views into this Go package")
	flag.StringVar(&cfg.out, "out", "", "Output file for -gen (default stdout)")
	flag.BoolVar(&cfg.verify, "verify", false, "Round-trip every field through a store")
	flag.BoolVar(&cfg.register, "register", false, "Register components with a shared schema store")
	flag.StringVar(&cfg.redisAddr, "redis", "", "Redis address for -register")
	flag.StringVar(&cfg.sqlitePath, "sqlite", "", "SQLite database for -register")
	flag.BoolVar(&cfg.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&cfg.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if cfg.manifest == "" {
		fmt.Fprintln(os.Stderr, "Usage: ecslayout -manifest <components.json> [-width 4|8|both] [-json]")
		fmt.Fprintln(os.Stderr, "       ecslayout -manifest <components.json> -gen <package> [-out file.go]")
		fmt.Fprintln(os.Stderr, "       ecslayout -manifest <components.json> -verify")
		fmt.Fprintln(os.Stderr, "       ecslayout -manifest <components.json> -register -redis <addr> | -sqlite <path>")
		fmt.Fprintln(os.Stderr, "       ecslayout -manifest <components.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if cfg.verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			registry.SetLogger(log)
			store.SetLogger(log)
			defer log.Sync()
		}
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer) error {
	m, err := manifest.Load(cfg.manifest)
	if err != nil {
		return err
	}
	widths, err := parseWidths(cfg.width)
	if err != nil {
		return err
	}

	switch {
	case cfg.interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(cfg.manifest, m, widths)

	case cfg.gen != "":
		return generate(cfg, m, widths)

	case cfg.verify:
		for _, w := range widths {
			ss, err := m.Schemas(w)
			if err != nil {
				return err
			}
			if err := verify(ctx, out, ss); err != nil {
				return err
			}
		}
		return nil

	case cfg.register:
		return register(cfg, m, widths, out)
	}

	plans, err := planAll(m, widths)
	if err != nil {
		return err
	}
	if cfg.asJSON {
		return writeJSON(out, plans)
	}
	return writeText(out, plans, out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())))
}

func generate(cfg config, m *manifest.Manifest, widths []schema.Width) error {
	if len(widths) != 1 {
		return fmt.Errorf("-gen needs a single width, got %d", len(widths))
	}
	ss, err := m.Schemas(widths[0])
	if err != nil {
		return err
	}
	src, err := codegen.Generate(codegen.Options{Package: cfg.gen, Source: cfg.manifest}, ss...)
	if err != nil {
		return err
	}
	if cfg.out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	return os.WriteFile(cfg.out, src, 0o644)
}

func register(cfg config, m *manifest.Manifest, widths []schema.Width, out io.Writer) error {
	var (
		storage registry.SchemaStorage
		where   string
	)
	switch {
	case cfg.redisAddr != "" && cfg.sqlitePath != "":
		return fmt.Errorf("use either -redis or -sqlite, not both")
	case cfg.redisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		defer client.Close()
		storage, where = redisstore.New(client), "redis "+cfg.redisAddr
	case cfg.sqlitePath != "":
		st, err := sqlitestore.Open(cfg.sqlitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer st.Close()
		storage, where = st, "sqlite "+cfg.sqlitePath
	default:
		return fmt.Errorf("-register needs -redis or -sqlite")
	}

	reg := registry.NewLocal(registry.WithStorage(storage))
	for _, w := range widths {
		ss, err := m.Schemas(w)
		if err != nil {
			return err
		}
		for _, s := range ss {
			id, err := registry.Register(reg, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-20s id %-4d width %d  %s\n", s.Name(), id, s.Width(), s.FingerprintHex()[:16])
		}
	}
	fmt.Fprintf(out, "%d components registered with %s\n", reg.Len(), where)
	return nil
}
