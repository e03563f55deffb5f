// intellator — incremental JSON locale translator.
//
// Translates flat key/value JSON localization files between languages,
// reusing keys already present in the output file and retrying transient
// translation failures.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/intellator/intellator/config"
	"github.com/intellator/intellator/i18n"
	"github.com/intellator/intellator/jsonfile"
	"github.com/intellator/intellator/langcode"
	"github.com/intellator/intellator/plan"
	"github.com/intellator/intellator/report"
	"github.com/intellator/intellator/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "intellator",
		Short: "Incremental JSON locale translator",
		Long: `intellator — incremental JSON locale translator.

Translates flat key/value JSON localization files from a source language to
one or more target languages via Google Translate. Keys already present in
the output file are reused (resume-friendly), failed translations are
retried with backoff, and the run ends with a full per-key report.

Commands:
  translate   Translate a locale file to one or more target languages
  status      Show locale files and per-language key coverage
  version     Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newTranslateCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	// Optional .env for INTELLATOR_* overrides; absence is fine.
	_ = godotenv.Load()
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("intellator version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateFlags struct {
	input      string
	output     string
	source     string
	target     string
	overwrite  bool
	verbose    bool
	noProgress bool
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	proxy      string
	statsJSON  string
}

func newTranslateCmd() *cobra.Command {
	var f translateFlags

	cmd := &cobra.Command{
		Use:   "translate [SOURCE TARGET...]",
		Short: "Translate a locale file to one or more target languages",
		Long: `Translate a flat JSON locale file to one or more target languages.

Positional usage takes language codes: the first is the source, the rest
are targets, and files are <lang>.json in the project root:

  intellator translate en ar          en.json -> ar.json
  intellator translate en ar es de    en.json -> ar.json, es.json, de.json

Flag usage addresses files directly:

  intellator translate -i en.json -o fr.json -s en -t fr

If the output file already exists, translations it contains are reused and
only missing keys are sent to the translation service. Keys whose
translation keeps failing after retries keep their original value, so the
output always covers every source key.

Use --source auto to detect the source language from the file's values.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Input JSON file (default: <source>.json)")
	flags.StringVarP(&f.output, "output", "o", "", "Output JSON file (default: derived from target language)")
	flags.StringVarP(&f.source, "source", "s", "", "Source language code, or 'auto' (default: from config, else en)")
	flags.StringVarP(&f.target, "target", "t", "", "Target language code (default: ar)")
	flags.BoolVar(&f.overwrite, "overwrite", false, "Proceed without prompting when the output file is unusable")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Show the key currently being processed")
	flags.BoolVar(&f.noProgress, "no-progress", false, "Disable the progress bar")
	flags.IntVar(&f.maxRetries, "retries", 0, "Translation attempts per key (default: from config, else 3)")
	flags.DurationVar(&f.retryDelay, "retry-delay", 0, "Backoff unit between attempts (default: 1s)")
	flags.DurationVar(&f.timeout, "timeout", 0, "Per-request timeout (default: 30s)")
	flags.StringVar(&f.proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	flags.StringVar(&f.statsJSON, "stats-json", "", "Also write the statistics record to this path")

	return cmd
}

func runTranslate(cmd *cobra.Command, args []string, f translateFlags) error {
	settings, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	applyFlagOverrides(&settings, cmd, f)

	sourceLang, targets, inputPath, err := resolveRun(args, f, settings)
	if err != nil {
		return err
	}

	logInfo("Reading %s...", inputPath)
	sourceDoc, err := jsonfile.ParseFile(inputPath)
	if err != nil {
		return err
	}
	if sourceDoc.Len() == 0 {
		return fmt.Errorf("%s", i18n.T("No translation keys found in the input file."))
	}

	if sourceLang == "auto" {
		sourceLang = detectSourceLang(sourceDoc)
		if sourceLang == "" {
			return fmt.Errorf("could not detect the source language; pass --source explicitly")
		}
		logInfo("Detected source language: %s (%s)", sourceLang, langcode.DisplayName(sourceLang))
	}

	logInfo("Found %d translation key(s) in parent file.", sourceDoc.Len())

	for i, target := range targets {
		outputPath := outputPathForRun(args, f, settings, inputPath, target, i)
		if err := translateOne(cmd.Context(), sourceDoc, sourceLang, target, outputPath, settings, f); err != nil {
			return err
		}
	}
	return nil
}

// applyFlagOverrides lets explicitly set flags win over config and env.
func applyFlagOverrides(s *config.Settings, cmd *cobra.Command, f translateFlags) {
	flags := cmd.Flags()
	if flags.Changed("retries") {
		s.MaxRetries = f.maxRetries
	}
	if flags.Changed("retry-delay") {
		s.RetryDelay = f.retryDelay
	}
	if flags.Changed("timeout") {
		s.Timeout = f.timeout
	}
	if flags.Changed("proxy") {
		s.Proxy = f.proxy
	}
	if f.overwrite {
		s.Overwrite = true
	}
}

// resolveRun determines the source language, the target languages, and the
// input path from positional arguments, flags, and settings.
func resolveRun(args []string, f translateFlags, settings config.Settings) (source string, targets []string, input string, err error) {
	if len(args) > 0 {
		if len(args) < 2 {
			return "", nil, "", fmt.Errorf("at least two language codes are required (source and target), e.g.: intellator translate en ar")
		}
		source = normalizeSource(args[0])
		for _, t := range args[1:] {
			targets = append(targets, langcode.Resolve(t))
		}
		input = f.input
		if input == "" {
			input = filepath.Join(rootDir, source+".json")
		}
		return source, targets, input, nil
	}

	source = f.source
	if source == "" {
		source = settings.Source
	}
	source = normalizeSource(source)

	target := f.target
	if target == "" {
		if len(settings.Targets) > 0 {
			for _, t := range settings.Targets {
				targets = append(targets, langcode.Resolve(t))
			}
		} else {
			targets = []string{"ar"}
		}
	} else {
		targets = []string{langcode.Resolve(target)}
	}

	input = f.input
	if input == "" {
		input = filepath.Join(rootDir, "en.json")
	}
	return source, targets, input, nil
}

// normalizeSource resolves a language alias but leaves "auto" alone.
func normalizeSource(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return "auto"
	}
	return langcode.Resolve(s)
}

// outputPathForRun picks the output path for one target. An explicit -o
// applies only to the first target; later targets always derive their own.
func outputPathForRun(args []string, f translateFlags, settings config.Settings, inputPath, target string, index int) string {
	if f.output != "" && index == 0 {
		return f.output
	}
	if len(args) > 0 {
		return filepath.Join(rootDir, target+".json")
	}
	return derivedOutputPath(inputPath, target)
}

// derivedOutputPath builds <base>_<target>.json next to the input file.
func derivedOutputPath(inputPath, target string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "_" + target + ".json"
}

// detectSourceLang samples string values from the document and runs
// language detection over them.
func detectSourceLang(doc *jsonfile.Document) string {
	const sampleLimit = 20
	var samples []string
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		if v.IsString() && strings.TrimSpace(v.Str) != "" {
			samples = append(samples, v.Str)
			if len(samples) >= sampleLimit {
				break
			}
		}
	}
	return langcode.Detect(samples)
}

// loadPriorOutput loads an existing output file for key reuse. A missing
// file means a first run. A malformed file falls back to an empty prior
// after confirmation, so a broken output never kills a resumed run.
func loadPriorOutput(path string, overwrite bool) (*jsonfile.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	logInfo("Output file '%s' exists. Loading existing translations...", path)
	prior, err := jsonfile.ParseFile(path)
	if err == nil {
		logInfo("Found %d existing translation(s).", prior.Len())
		return prior, nil
	}

	logWarning("Could not load existing translations: %v", err)
	if !overwrite && isatty.IsTerminal(os.Stdin.Fd()) {
		if !confirm(fmt.Sprintf("Continue and overwrite '%s'? (y/N): ", path)) {
			return nil, fmt.Errorf("%s", i18n.T("Translation cancelled."))
		}
	}
	return nil, nil
}

func translateOne(ctx context.Context, sourceDoc *jsonfile.Document, sourceLang, targetLang, outputPath string, settings config.Settings, f translateFlags) error {
	prior, err := loadPriorOutput(outputPath, settings.Overwrite)
	if err != nil {
		return err
	}

	items := plan.Build(sourceDoc, prior)

	logInfo("Translating %s -> %s (%s -> %s)...",
		sourceLang, targetLang,
		langcode.DisplayName(sourceLang), langcode.DisplayName(targetLang))

	translator := translate.NewGoogleTranslator(sourceLang, targetLang, translate.GoogleOptions{
		Proxy:   settings.Proxy,
		Timeout: settings.Timeout,
	})

	opts := translate.Options{
		MaxRetries: settings.MaxRetries,
		RetryDelay: settings.RetryDelay,
		Verbose:    f.verbose,
		OnLog:      logWarning,
	}

	useColor := isatty.IsTerminal(os.Stderr.Fd())
	if bar := newProgressBar(len(items), f, useColor); bar != nil {
		opts.OnProgress = func(key string, action plan.Action, done, total int) {
			if f.verbose {
				bar.Describe(fmt.Sprintf("%s: %s", action, truncateKey(key, 30)))
			}
			_ = bar.Add(1)
		}
		defer func() { _ = bar.Finish() }()
	}

	merged, stats, err := translate.Run(ctx, items, translator, opts)
	if err != nil {
		return err
	}

	logInfo("Writing content to %s...", outputPath)
	writeErr := merged.WriteFile(outputPath)

	if f.statsJSON != "" {
		if err := writeStatsJSON(f.statsJSON, stats); err != nil {
			logWarning("could not write stats: %v", err)
		}
	}

	report.Render(os.Stderr, report.Summary{
		Stats:      stats,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		OutputPath: outputPath,
	}, useColor)

	if writeErr != nil {
		// Translation work is done and reported; only the sink failed.
		return writeErr
	}

	logSuccess("Output saved to: %s", outputPath)
	return nil
}

func newProgressBar(total int, f translateFlags, tty bool) *progressbar.ProgressBar {
	if f.noProgress || !tty {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func writeStatsJSON(path string, stats *translate.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// truncateKey shortens a key for progress labels.
func truncateKey(key string, max int) string {
	if len(key) <= max {
		return key
	}
	return key[:max] + "..."
}

// confirm reads a y/N answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show locale files and per-language key coverage",
		Long: `Show detected locale files and how many source keys each target
language covers. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	settings, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	localesDir := settings.LocalesDir
	if !filepath.IsAbs(localesDir) {
		localesDir = filepath.Join(rootDir, localesDir)
	}

	langs := config.DetectLanguages(localesDir)
	if len(langs) == 0 {
		logInfo("No locale files found in %s", localesDir)
		return nil
	}

	sourceLang := langcode.Resolve(settings.Source)
	sourcePath := filepath.Join(localesDir, sourceLang+".json")
	sourceDoc, err := jsonfile.ParseFile(sourcePath)
	if err != nil {
		return fmt.Errorf("loading source locale: %w", err)
	}

	rows := make([][]string, 0, len(langs))
	for _, lang := range langs {
		if lang == sourceLang {
			rows = append(rows, []string{lang, langcode.DisplayName(lang), fmt.Sprintf("%d", sourceDoc.Len()), "-", "source"})
			continue
		}

		doc, err := jsonfile.ParseFile(filepath.Join(localesDir, lang+".json"))
		if err != nil {
			rows = append(rows, []string{lang, langcode.DisplayName(lang), "-", "-", "unreadable"})
			continue
		}

		missing := 0
		for _, key := range sourceDoc.Keys() {
			if !doc.Has(key) {
				missing++
			}
		}
		percent := 0
		if sourceDoc.Len() > 0 {
			percent = (sourceDoc.Len() - missing) * 100 / sourceDoc.Len()
		}
		rows = append(rows, []string{
			lang,
			langcode.DisplayName(lang),
			fmt.Sprintf("%d", doc.Len()),
			fmt.Sprintf("%d", missing),
			fmt.Sprintf("%d%%", percent),
		})
	}

	fmt.Fprintln(os.Stderr, report.Table(
		[]string{"Lang", "Name", "Keys", "Missing", "Coverage"},
		rows,
	))
	return nil
}
