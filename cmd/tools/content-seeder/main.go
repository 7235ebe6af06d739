// cmd/tools/content-seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/common/database"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/content"
	"lawfirm-site/pkg/registry"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)

	seedPath := seedCmd.String("path", "configs/site-content.yaml", "Path to seed file")
	seedConfig := seedCmd.String("config", "", "Config file (defaults to configs/config.yaml lookup)")
	seedDefaults := seedCmd.Bool("defaults", true, "Seed compiled-in defaults for sections missing from the file")

	validatePath := validateCmd.String("path", "configs/site-content.yaml", "Path to seed file")

	exportPath := exportCmd.String("path", "configs/site-content.yaml", "Output file (.yaml, .yml or .json)")
	exportSource := exportCmd.String("source", "defaults", "Where documents come from: defaults or db")
	exportConfig := exportCmd.String("config", "", "Config file, used with -source db")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*seedPath)
		if err != nil {
			if !os.IsNotExist(err) || !*seedDefaults {
				fail("Error loading seed file: %v", err)
			}
			fmt.Printf("Seed file %s not found, seeding defaults only\n", *seedPath)
			reg = &registry.SeedRegistry{}
		}
		plans, problems := planSeeds(reg, *seedDefaults)
		if len(problems) > 0 {
			report(problems)
			os.Exit(1)
		}

		store, closeStore := openStore(*seedConfig)
		defer closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		inserted, skipped, err := runSeed(ctx, store, plans)
		if err != nil {
			fail("Seeding failed: %v", err)
		}
		fmt.Printf("Seeding complete: %d inserted, %d already present.\n", inserted, skipped)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			fail("Error loading seed file: %v", err)
		}
		if problems := validateRegistry(reg); len(problems) > 0 {
			report(problems)
			os.Exit(1)
		}
		fmt.Printf("Seed file validation passed. Found %d sections.\n", len(reg.Sections))

	case "export":
		exportCmd.Parse(os.Args[2:])
		var (
			reg *registry.SeedRegistry
			err error
		)
		switch *exportSource {
		case "defaults":
			reg, err = exportDefaults()
		case "db":
			store, closeStore := openStore(*exportConfig)
			defer closeStore()
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			reg, err = exportStore(ctx, content.NewResolver(store, logger.NewNoOpLogger()))
		default:
			fail("Unknown source %q (want defaults or db)", *exportSource)
		}
		if err != nil {
			fail("Export failed: %v", err)
		}
		if err := registry.SaveRegistry(reg, *exportPath); err != nil {
			fail("Export failed: %v", err)
		}
		fmt.Printf("Exported %d sections to %s\n", len(reg.Sections), *exportPath)

	case "help":
		fallthrough
	default:
		help()
	}
}

type seedPlan struct {
	Key       content.Key
	Content   json.RawMessage
	IsDefault bool
}

// validateRegistry checks every section against its schema and reports
// unknown or duplicate keys.
func validateRegistry(reg *registry.SeedRegistry) []error {
	var problems []error
	for _, dup := range reg.Duplicates() {
		problems = append(problems, fmt.Errorf("duplicate section key: %s", dup))
	}
	for _, s := range reg.Sections {
		key, ok := content.ParseKey(s.Key)
		if !ok {
			problems = append(problems, fmt.Errorf("unknown section key: %q", s.Key))
			continue
		}
		raw, err := s.Raw()
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, err := content.Decode(key, raw); err != nil {
			problems = append(problems, fmt.Errorf("section %s: %w", key, err))
		}
	}
	return problems
}

// planSeeds builds one insert per section key in display order. Sections
// the file omits fall back to the compiled-in default when withDefaults is set.
func planSeeds(reg *registry.SeedRegistry, withDefaults bool) ([]seedPlan, []error) {
	if problems := validateRegistry(reg); len(problems) > 0 {
		return nil, problems
	}

	var plans []seedPlan
	for _, key := range content.Keys() {
		if s, ok := reg.Find(string(key)); ok {
			raw, _ := s.Raw()
			doc, _ := content.Decode(key, raw)
			normalized, err := content.Encode(doc)
			if err != nil {
				return nil, []error{err}
			}
			plans = append(plans, seedPlan{Key: key, Content: normalized})
			continue
		}
		if !withDefaults {
			continue
		}
		raw, err := content.Encode(content.Default(key))
		if err != nil {
			return nil, []error{err}
		}
		plans = append(plans, seedPlan{Key: key, Content: raw, IsDefault: true})
	}
	return plans, nil
}

// runSeed inserts each planned section. Existing rows are left untouched.
func runSeed(ctx context.Context, store content.Store, plans []seedPlan) (inserted, skipped int, err error) {
	for _, p := range plans {
		ok, err := store.Seed(ctx, p.Key, p.Content)
		if err != nil {
			return inserted, skipped, fmt.Errorf("seed %s: %w", p.Key, err)
		}
		source := "file"
		if p.IsDefault {
			source = "default"
		}
		if ok {
			inserted++
			fmt.Printf("  + %-15s (%s)\n", p.Key, source)
		} else {
			skipped++
			fmt.Printf("  = %-15s already seeded\n", p.Key)
		}
	}
	return inserted, skipped, nil
}

func exportDefaults() (*registry.SeedRegistry, error) {
	reg := newExport()
	for _, key := range content.Keys() {
		raw, err := content.Encode(content.Default(key))
		if err != nil {
			return nil, err
		}
		seed, err := registry.NewSectionSeed(string(key), raw)
		if err != nil {
			return nil, err
		}
		reg.Sections = append(reg.Sections, seed)
	}
	return reg, nil
}

// exportStore snapshots the live documents. Sections that would be served
// from defaults are exported as those defaults.
func exportStore(ctx context.Context, resolver *content.Resolver) (*registry.SeedRegistry, error) {
	reg := newExport()
	for _, section := range resolver.Sections(ctx) {
		raw, err := content.Encode(section.Document)
		if err != nil {
			return nil, err
		}
		seed, err := registry.NewSectionSeed(string(section.Key), raw)
		if err != nil {
			return nil, err
		}
		reg.Sections = append(reg.Sections, seed)
	}
	return reg, nil
}

func newExport() *registry.SeedRegistry {
	return &registry.SeedRegistry{
		Version:     "1",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// openStore connects to Postgres, and to Redis when the content cache is
// enabled so seeded keys are invalidated.
func openStore(configPath string) (content.Store, func()) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fail("Config load failed: %v", err)
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fail("Postgres setup failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.Ping(ctx); err != nil {
		fail("Postgres unreachable: %v", err)
	}

	var store content.Store = content.NewPostgresStore(pg.DB, config.GetDuration(cfg.Content.QueryTimeout), log)
	closers := []func() error{pg.Close}

	if cfg.Content.CacheEnabled {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err == nil && rdb.Ping(ctx) == nil {
			store = content.NewCachedStore(store, rdb.Client, config.GetDuration(cfg.Content.CacheTTL), log)
			closers = append(closers, rdb.Close)
		} else {
			fmt.Println("Warning: redis unavailable, cached sections expire on their own TTL")
		}
	}

	return store, func() {
		for _, c := range closers {
			_ = c()
		}
	}
}

func report(problems []error) {
	fmt.Println("Seed file validation failed:")
	for _, p := range problems {
		fmt.Printf("  - %v\n", p)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

func help() {
	writeHelp(os.Stdout)
}

func writeHelp(w io.Writer) {
	fmt.Fprint(w, `
Usage: content-seeder <command> [flags]

Commands:
  seed      Insert section documents that are not yet in the database
  validate  Check a seed file against the section schemas
  export    Write section documents to a seed file
  help      Show this help message

Examples:
  content-seeder validate -path configs/site-content.yaml
  content-seeder seed -path configs/site-content.yaml
  content-seeder export -source defaults -path configs/site-content.yaml
  content-seeder export -source db -path backup/site-content.json

Use 'content-seeder <command> -h' for more information about a command.
`)
}
