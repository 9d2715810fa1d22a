package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithboateng/sentrylint/internal/api"
	"github.com/codewithboateng/sentrylint/internal/fixes"
	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/reporting"
	"github.com/codewithboateng/sentrylint/internal/rulepack"
	"github.com/codewithboateng/sentrylint/internal/scan"
	"github.com/codewithboateng/sentrylint/internal/security"
	"github.com/codewithboateng/sentrylint/internal/settings"
	"github.com/codewithboateng/sentrylint/internal/shared"
	"github.com/codewithboateng/sentrylint/internal/stats"
	"github.com/codewithboateng/sentrylint/internal/storage"
	"github.com/codewithboateng/sentrylint/internal/suppress"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "scan":
		scanCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "fix":
		fixCmd(os.Args[2:])
	case "suppress":
		suppressCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "version":
		fmt.Println("sentrylint IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `sentrylint – source-code security linter

Usage:
  sentrylint scan     --path <src-dir>  --out <reports-dir> [--db ./sentrylint.db] [--rules <dir>] [--include-suppressed] [--config ./configs/sentrylint.yaml]
  sentrylint report   --run <run-id>    --out <reports-dir> [--db ./sentrylint.db] [--config ...]
  sentrylint diff     --base <run-id> --head <run-id> --out <reports-dir> [--db ...] [--config ...]
  sentrylint fix      --file <path> [--dry-run] [--config ...]
  sentrylint suppress --file <path> --line <n> --rule <id> [--config ...]
  sentrylint serve    --addr :8080 [--db ...] [--create-admin user:pass] [--config ...]
  sentrylint version
`)
}

// setup loads config, validates the analyzer settings and publishes the rule
// snapshot. Shared by the commands that analyze source.
func setup(configPath, rulesDir string) (shared.Config, settings.Settings, *scan.Scanner, *slog.Logger) {
	cfg, _ := shared.LoadConfig(configPath)
	st := settings.Validate(cfg.Analyzer)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level, st.LogToConsole)

	if rulesDir == "" {
		rulesDir = cfg.RulesDir()
	}
	snap, skipped, err := rulepack.LoadAndPublish(rulesDir, st.ValidateRulesFiles)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rules load error:", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		logger.Warn("rule skipped", "detail", s)
	}
	return cfg, st, scan.New(st, snap, logger), logger
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to source directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	rulesDir := fs.String("rules", "", "Extra rule pack directory")
	includeSuppressed := fs.Bool("include-suppressed", false, "Keep suppressed findings in the output")
	_ = fs.Parse(args)

	cfg, _, scanner, logger := setup(*configPath, *rulesDir)
	scanner.IncludeSuppressed = *includeSuppressed

	// precedence: flags > config > defaults
	if *inPath == "" && len(cfg.Scan.Sources) > 0 {
		*inPath = cfg.Scan.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "scan: --path (or scan.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "scan: cannot create out dir:", err)
		os.Exit(1)
	}

	run, err := scanner.ScanTree(*inPath)
	if err != nil {
		logger.Error("scan error", "err", err)
		os.Exit(1)
	}
	run.ID = fmt.Sprintf("run-%d", time.Now().Unix())
	run.StartedAt = time.Now().UTC()

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		logger.Error("db schema error", "err", err)
		os.Exit(1)
	}

	// persistent suppressions waive matching findings before reporting
	if recs, err := db.ListSuppressions(true); err == nil && len(recs) > 0 {
		rr := make([]suppress.Record, 0, len(recs))
		for _, r := range recs {
			rr = append(rr, suppress.Record{
				RuleID: r.RuleID, FilePath: r.FilePath,
				PatternSub: r.PatternSub, ExpiresAt: r.ExpiresAt,
			})
		}
		var waived int
		run.Findings, waived = suppress.Apply(run.Findings, rr, time.Now())
		if waived > 0 {
			logger.Info("suppressions applied", "waived", waived)
		}
	}

	if err := db.SaveRun(&run); err != nil {
		logger.Error("db save run error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	sum := stats.Summarize(&run)
	logger.Info("scan complete",
		"run", run.ID,
		"files", sum.Files,
		"findings", sum.Total,
		"json", jsonPath,
		"html", htmlPath,
	)
	fmt.Printf("Scan OK\n  Run: %s\n  Files: %d  Findings: %d (errors=%d warnings=%d info=%d, fixable=%d)\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		run.ID, sum.Files, sum.Total,
		sum.ByLevel["error"], sum.ByLevel["warning"], sum.ByLevel["info"], sum.Fixable,
		jsonPath, htmlPath, filepath.Clean(*dbPath))
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	st := settings.Validate(cfg.Analyzer)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level, st.LogToConsole)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		logger.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	st := settings.Validate(cfg.Analyzer)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level, st.LogToConsole)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		logger.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		logger.Error("load head run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	path, _ := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

// fixCmd applies the overlap-free subset of a file's proposed fixes.
func fixCmd(args []string) {
	fs := flag.NewFlagSet("fix", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	file := fs.String("file", "", "File to fix in place")
	rulesDir := fs.String("rules", "", "Extra rule pack directory")
	dryRun := fs.Bool("dry-run", false, "Print the fixed content instead of writing")
	_ = fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "fix: --file is required")
		os.Exit(2)
	}
	_, _, scanner, logger := setup(*configPath, *rulesDir)

	b, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fix: read:", err)
		os.Exit(1)
	}
	src := string(b)

	fnds := scanner.ScanFile(*file, src, 1)
	set := scan.BuildFixSet(fnds)
	if set.IsEmpty() {
		fmt.Println("Nothing to fix.")
		return
	}
	kept, discarded := set.Reconcile()
	if len(discarded) > 0 {
		logger.Warn("conflicting fixes skipped", "count", len(discarded))
	}
	fixed := fixes.Apply(src, kept)

	if *dryRun {
		fmt.Print(fixed)
		return
	}
	if err := os.WriteFile(*file, []byte(fixed), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "fix: write:", err)
		os.Exit(1)
	}
	fmt.Printf("Fix OK\n  %s: %d applied, %d skipped (overlap)\n", *file, len(kept), len(discarded))
}

// suppressCmd inserts a suppression comment for a rule at a line.
func suppressCmd(args []string) {
	fs := flag.NewFlagSet("suppress", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	file := fs.String("file", "", "Source file")
	line := fs.Int("line", -1, "Zero-based line of the finding")
	rule := fs.String("rule", "", "Rule ID to suppress")
	_ = fs.Parse(args)

	if *file == "" || *rule == "" || *line < 0 {
		fmt.Fprintln(os.Stderr, "suppress: --file, --line and --rule are required")
		os.Exit(2)
	}
	cfg, _ := shared.LoadConfig(*configPath)
	st := settings.Validate(cfg.Analyzer)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level, st.LogToConsole)

	b, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "suppress: read:", err)
		os.Exit(1)
	}
	out := suppress.Insert(string(b), *rule, *line, st, time.Now())
	if err := os.WriteFile(*file, []byte(out), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "suppress: write:", err)
		os.Exit(1)
	}
	fmt.Printf("Suppressed %s at %s:%d\n", *rule, *file, *line+1)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", ":8080", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	createAdmin := fs.String("create-admin", "", "Bootstrap an admin account as user:pass")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level, true)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		logger.Error("db schema error", "err", err)
		os.Exit(1)
	}

	if *createAdmin != "" {
		user, pass, ok := splitCred(*createAdmin)
		if !ok {
			fmt.Fprintln(os.Stderr, "serve: --create-admin expects user:pass")
			os.Exit(2)
		}
		hash, err := security.HashPassword(pass)
		if err != nil {
			logger.Error("hash error", "err", err)
			os.Exit(1)
		}
		if _, err := db.CreateUser(user, hash, "admin"); err != nil {
			logger.Warn("create admin", "err", err)
		}
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: 12 * time.Hour,
	}
	logger.Info("serving", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		logger.Error("serve error", "err", err)
		os.Exit(1)
	}
}

func splitCred(s string) (user, pass string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], s[:i] != "" && s[i+1:] != ""
		}
	}
	return "", "", false
}
