package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/partsync/partsync/internal/application/assembly"
	"github.com/partsync/partsync/internal/application/sync"
	"github.com/partsync/partsync/internal/domain/supplier"
	"github.com/partsync/partsync/internal/infrastructure/bomfile"
	"github.com/partsync/partsync/internal/infrastructure/config"
	"github.com/partsync/partsync/internal/infrastructure/imagecache"
	"github.com/partsync/partsync/internal/infrastructure/inventree"
	"github.com/partsync/partsync/internal/infrastructure/logger"
	"github.com/partsync/partsync/internal/infrastructure/suppliers"
)

// Build information, injected via -ldflags
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch command := os.Args[1]; command {
	case "config":
		err = runConfig()
	case "add":
		err = runAdd(ctx, os.Args[2:])
	case "bom":
		err = runBom(ctx, os.Args[2:])
	case "sync":
		err = runSync(ctx, os.Args[2:])
	case "version", "-version", "--version":
		printVersion()
	case "help", "-h", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Operation cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// runConfig prints the configuration status without touching the network
func runConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("partsync configuration")
	fmt.Println()

	fmt.Println("InvenTree:")
	if cfg.InvenTreeConfigured() {
		fmt.Printf("  ✅ server: %s\n", cfg.InvenTree.ServerURL)
		fmt.Printf("  ✅ token:  %s\n", mask(cfg.InvenTree.Token))
	} else {
		fmt.Println("  ❌ not configured: set INVENTREE_SERVER_URL and INVENTREE_TOKEN")
	}
	fmt.Println()

	fmt.Println("Digikey:")
	if cfg.DigikeyEnabled() {
		fmt.Printf("  ✅ client ID:     %s\n", prefix(cfg.Digikey.ClientID, 8))
		fmt.Printf("  ✅ client secret: %s\n", mask(cfg.Digikey.ClientSecret))
		fmt.Printf("     token cache:   %s\n", cfg.Digikey.StoragePath)
		if cfg.Digikey.Sandbox {
			fmt.Println("     sandbox:       enabled")
		}
	} else {
		fmt.Println("  ❌ not configured: set DIGIKEY_CLIENT_ID and DIGIKEY_CLIENT_SECRET")
	}
	fmt.Println()

	fmt.Println("Mouser:")
	if cfg.MouserEnabled() {
		fmt.Printf("  ✅ API key: %s\n", mask(cfg.Mouser.APIKey))
	} else {
		fmt.Println("  ❌ not configured: set MOUSER_PART_API_KEY")
	}
	fmt.Println()

	fmt.Printf("Image cache: %s\n", cfg.ImageCache.Dir)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Not ready: %v\n", err)
		return nil
	}
	fmt.Println("Ready to sync.")
	return nil
}

// runAdd syncs a single part from a supplier catalog into the backend
func runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	var (
		supplierName string
		verbose      bool
	)
	fs.StringVar(&supplierName, "supplier", "", "Only query this supplier (digikey, mouser)")
	fs.StringVar(&supplierName, "s", "", "Shorthand for -supplier")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&verbose, "v", false, "Shorthand for -verbose")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: partsync add [flags] <part-number>")
		return errors.New("part number required")
	}
	partNumber := fs.Arg(0)

	code, err := parseSupplierFlag(supplierName)
	if err != nil {
		return err
	}

	app, err := buildApp(ctx, verbose)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Sync.AddPart(ctx, partNumber, code)
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Println("Part synced (new supplier part):")
	} else {
		fmt.Println("Part synced (already present):")
	}
	fmt.Printf("  Manufacturer: %s\n", result.ManufacturerName)
	fmt.Printf("  MPN:          %s\n", result.MPN)
	fmt.Printf("  Supplier:     %s\n", result.SupplierCode.DisplayName())
	fmt.Printf("  SKU:          %s\n", result.SKU)
	if verbose {
		if result.Description != "" {
			fmt.Printf("  Description:  %s\n", result.Description)
		}
		fmt.Printf("  Part ID:           %d\n", result.PartID)
		fmt.Printf("  Supplier part ID:  %d\n", result.SupplierPartID)
	}
	return nil
}

// runBom builds an assembly from a BOM file
func runBom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bom", flag.ExitOnError)
	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&verbose, "v", false, "Shorthand for -verbose")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: partsync bom [flags] <assembly-name> <file>")
		return errors.New("assembly name and BOM file required")
	}
	assemblyName := fs.Arg(0)
	path := fs.Arg(1)

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read BOM file %s: %w", path, err)
	}

	app, err := buildApp(ctx, verbose)
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Printf("Building assembly %q from %s\n", assemblyName, path)
	result, err := app.Assembly.Build(ctx, assemblyName, path, func(r assembly.LineResult) {
		switch r.Status {
		case assembly.LineAdded:
			fmt.Printf("  [%d] added %s\n", r.LineNumber, r.PartNumber)
		case assembly.LineExists:
			fmt.Printf("  [%d] %s already on the BOM\n", r.LineNumber, r.PartNumber)
		case assembly.LineNotFound:
			fmt.Printf("  [%d] %s: %s\n", r.LineNumber, r.PartNumber, r.Message)
		case assembly.LineError:
			fmt.Printf("  [%d] %s: error: %s\n", r.LineNumber, r.PartNumber, r.Message)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println()
	if result.AssemblyCreated {
		fmt.Printf("Assembly %q created (part %d)\n", assemblyName, result.AssemblyPartID)
	} else {
		fmt.Printf("Assembly %q (part %d)\n", assemblyName, result.AssemblyPartID)
	}
	fmt.Printf("  Lines:     %d\n", result.Total)
	fmt.Printf("  Added:     %d\n", result.Added)
	fmt.Printf("  Existing:  %d\n", result.Existing)
	if result.NotFound > 0 {
		fmt.Printf("  Not found: %d\n", result.NotFound)
	}
	if result.Errors > 0 {
		fmt.Printf("  Errors:    %d\n", result.Errors)
	}
	printSkippedLines(result.Skipped)
	return nil
}

// runSync re-validates stored supplier parts against the live catalogs
func runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	var (
		supplierName string
		verbose      bool
	)
	fs.StringVar(&supplierName, "supplier", "", "Only check this supplier (digikey, mouser)")
	fs.StringVar(&supplierName, "s", "", "Shorthand for -supplier")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&verbose, "v", false, "Shorthand for -verbose")
	if err := fs.Parse(args); err != nil {
		return err
	}

	code, err := parseSupplierFlag(supplierName)
	if err != nil {
		return err
	}

	app, err := buildApp(ctx, verbose)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.Sync.ResyncAll(ctx, code, func(r sync.ResyncResult) {
		name := r.SupplierCode.DisplayName()
		switch r.Status {
		case sync.StatusUpToDate:
			if verbose {
				fmt.Printf("  %s %s: up to date\n", name, r.SKU)
			}
		case sync.StatusUpdated:
			fmt.Printf("  %s %s: updated (%s)\n", name, r.SKU, changedFields(r.Changes))
			if verbose {
				for _, field := range sortedFields(r.Changes) {
					change := r.Changes[field]
					fmt.Printf("      %s: %s -> %s\n", field, change.Old, change.New)
				}
			}
		case sync.StatusNotFound:
			fmt.Printf("  %s %s: %s\n", name, r.SKU, r.Message)
		default:
			fmt.Printf("  %s %s: %s: %s\n", name, r.SKU, r.Status, r.Message)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Checked %d supplier parts\n", summary.Total)
	fmt.Printf("  Up to date: %d\n", summary.UpToDate)
	fmt.Printf("  Updated:    %d\n", summary.Updated)
	if summary.NotFound > 0 {
		fmt.Printf("  Not found:  %d\n", summary.NotFound)
	}
	if summary.Errors > 0 {
		fmt.Printf("  Errors:     %d\n", summary.Errors)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

// app bundles the wired services behind the CLI commands
type app struct {
	Logger   *zap.Logger
	Sync     *sync.Service
	Assembly *assembly.Service
}

// buildApp loads and validates configuration, then wires the backend client,
// the configured supplier gateways, and the application services.
func buildApp(ctx context.Context, verbose bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nRun 'partsync config' to see the current status", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(&logger.Config{
		Level:      level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	invConfig := inventree.NewConfig(cfg.InvenTree.ServerURL, cfg.InvenTree.Token)
	invConfig.Timeout = cfg.HTTP.Timeout
	store, err := inventree.NewClient(invConfig)
	if err != nil {
		return nil, err
	}

	info, err := store.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot reach InvenTree at %s: %w", cfg.InvenTree.ServerURL, err)
	}
	log.Debug("connected to InvenTree",
		zap.String("server", info.Server),
		zap.String("version", info.Version),
		zap.Int("api_version", info.APIVersion))

	registry := suppliers.NewGatewayRegistry()
	if cfg.DigikeyEnabled() {
		dkConfig := suppliers.NewDigikeyConfig(cfg.Digikey.ClientID, cfg.Digikey.ClientSecret)
		if cfg.Digikey.Sandbox {
			dkConfig = suppliers.NewSandboxDigikeyConfig(cfg.Digikey.ClientID, cfg.Digikey.ClientSecret)
		}
		dkConfig.StoragePath = cfg.Digikey.StoragePath
		dkConfig.Timeout = cfg.HTTP.Timeout

		gateway, err := suppliers.NewDigikeyAdapter(dkConfig)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(gateway); err != nil {
			return nil, err
		}
	}
	if cfg.MouserEnabled() {
		mouserConfig := suppliers.NewMouserConfig(cfg.Mouser.APIKey)
		mouserConfig.Timeout = cfg.HTTP.Timeout

		gateway, err := suppliers.NewMouserAdapter(mouserConfig)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(gateway); err != nil {
			return nil, err
		}
	}

	// A broken image cache only disables image attachment
	images, err := imagecache.New(cfg.ImageCache.Dir, logger.Named(log, "imagecache"))
	if err != nil {
		log.Warn("image cache disabled", zap.Error(err))
		images = nil
	}

	syncService := sync.NewService(store, registry, images, logger.Named(log, "sync"))
	assemblyService := assembly.NewService(store, syncService, logger.Named(log, "assembly"))

	return &app{
		Logger:   log,
		Sync:     syncService,
		Assembly: assemblyService,
	}, nil
}

// Close flushes buffered log output
func (a *app) Close() {
	_ = logger.Sync(a.Logger)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseSupplierFlag converts the -supplier flag into a supplier code.
// Empty means every configured supplier.
func parseSupplierFlag(name string) (supplier.Code, error) {
	if name == "" {
		return "", nil
	}
	return supplier.ParseCode(name)
}

// printSkippedLines lists rows excluded from the document, at most five
func printSkippedLines(skipped []bomfile.SkippedLine) {
	if len(skipped) == 0 {
		return
	}
	fmt.Printf("  Skipped:   %d\n", len(skipped))
	for i, s := range skipped {
		if i == 5 {
			fmt.Printf("    ... and %d more\n", len(skipped)-5)
			break
		}
		fmt.Printf("    line %d: %s\n", s.LineNumber, s.Reason)
	}
}

// changedFields lists the drifted field names in stable order
func changedFields(changes map[string]sync.Change) string {
	return strings.Join(sortedFields(changes), ", ")
}

// sortedFields returns the change map keys sorted alphabetically
func sortedFields(changes map[string]sync.Change) []string {
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// mask hides a credential, keeping only the last four characters
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// prefix returns at most the first n characters of s
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func printVersion() {
	fmt.Printf("partsync %s\n", version)
	fmt.Printf("  build time: %s\n", buildTime)
	fmt.Printf("  git commit: %s\n", gitCommit)
}

func printUsage() {
	fmt.Println(`partsync - supplier catalog to InvenTree synchronizer

Usage:
  partsync <command> [flags] [arguments]

Commands:
  config                  Show configuration status (no network calls)
  add <part-number>       Sync one part from a supplier catalog
  bom <assembly> <file>   Build an assembly from a BOM file (.tsv or .csv)
  sync                    Re-validate stored supplier parts against live data
  version                 Show version information
  help                    Show this help

Flags (add, sync):
  -supplier, -s string    Only query this supplier (digikey, mouser)
  -verbose, -v            Verbose output

Environment Variables:
  INVENTREE_SERVER_URL, INVENTREE_TOKEN
  DIGIKEY_CLIENT_ID, DIGIKEY_CLIENT_SECRET, DIGIKEY_STORAGE_PATH,
  DIGIKEY_CLIENT_SANDBOX, MOUSER_PART_API_KEY
  PARTSYNC_LOG_LEVEL, PARTSYNC_LOG_FORMAT, PARTSYNC_LOG_OUTPUT,
  PARTSYNC_IMAGE_CACHE, PARTSYNC_HTTP_TIMEOUT

Examples:
  # Check which suppliers are configured
  partsync config

  # Sync one part, searching every configured supplier
  partsync add NE555DR

  # Sync one part from Mouser only, with verbose output
  partsync add -s mouser -v 595-NE555DR

  # Build an assembly from a tab separated BOM
  partsync bom Amplifier boards/amplifier.tsv

  # Re-validate everything previously synced from Digikey
  partsync sync -s digikey`)
}
