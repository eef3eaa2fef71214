package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kavya-labs/kavya-cli/internal/chunker"
	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driving"
	"github.com/kavya-labs/kavya-cli/internal/core/services"
	"github.com/kavya-labs/kavya-cli/internal/readers"
	"github.com/kavya-labs/kavya-cli/internal/writers"
)

var (
	runInput         string
	runOutput        string
	runProvider      string
	runModel         string
	runAPIKey        string
	runBaseURL       string
	runSystemMessage string
	runSeparator     string
	runChunkSize     int
	runDelay         time.Duration
	runMaxRetries    int
	runTemperature   float64
	runMaxTokens     int
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Annotate a poetry document",
	Long: `Reads the input document, splits it into poems on the separator,
groups whole poems into chunks, sends each chunk to the configured LLM
provider, and writes an annotated document interleaving every poem with
its annotation.

The output file is regenerated after every chunk, so an interrupted run
leaves everything completed so far on disk. A chunk that keeps failing is
recorded and skipped; the rest of the document is still processed.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "input document (.docx or .txt)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "annotated output document (.docx or .txt)")
	runCmd.Flags().StringVarP(&runProvider, "provider", "p", "", "LLM provider (groq, openai, google, ollama)")
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "model name (empty selects the provider default)")
	runCmd.Flags().StringVarP(&runAPIKey, "api-key", "k", "", "provider API key")
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "override the provider API endpoint")
	runCmd.Flags().StringVarP(&runSystemMessage, "system-message", "s", "", "file holding the system instruction")
	runCmd.Flags().StringVar(&runSeparator, "separator", "", "poem separator")
	runCmd.Flags().IntVar(&runChunkSize, "chunk-size", 0, "chunk size bound in characters")
	runCmd.Flags().DurationVar(&runDelay, "delay", 0, "pause between provider calls")
	runCmd.Flags().IntVar(&runMaxRetries, "max-retries", -1, "extra attempts after a transient failure")
	runCmd.Flags().Float64Var(&runTemperature, "temperature", 0, "generation temperature")
	runCmd.Flags().IntVar(&runMaxTokens, "max-tokens", 0, "annotation length bound per chunk")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	settings := resolveSettings(cmd)
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	source, err := readers.ForPath(settings.InputPath)
	if err != nil {
		return err
	}
	sink, err := writers.ForPath(settings.OutputPath, settings.Separator)
	if err != nil {
		return err
	}
	prompts, err := newPromptStore(settings.SystemMessagePath)
	if err != nil {
		return err
	}

	llm, err := newLLMService(ctx, settings)
	if err != nil {
		return err
	}
	defer llm.Close() //nolint:errcheck // Best-effort cleanup

	grouper := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithSeparator(settings.Separator),
	)

	pipeline := services.NewPipeline(settings, source, grouper, llm, sink, prompts)

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	printReport(cmd, report)

	if !report.Ok() {
		return fmt.Errorf("%d of %d chunk(s) failed", report.Failed, report.TotalChunks)
	}
	return nil
}

// resolveSettings layers configuration: code defaults, then the config
// file, then explicitly set flags.
func resolveSettings(cmd *cobra.Command) *domain.Settings {
	settings := domain.DefaultSettings()
	if configStore != nil {
		applyConfig(settings, configStore)
	}
	applyRunFlags(settings, cmd)
	settings.Verbose = verboseFlag
	return settings
}

func applyConfig(s *domain.Settings, store driven.ConfigStore) {
	if v := store.GetString(driven.ConfigKeyProvider); v != "" {
		s.Provider = domain.Provider(v)
	}
	if v := store.GetString(driven.ConfigKeyModel); v != "" {
		s.Model = v
	}
	if v := store.GetString(driven.ConfigKeyAPIKey); v != "" {
		s.APIKey = v
	}
	if v := store.GetString(driven.ConfigKeyBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := store.GetString(driven.ConfigKeyInputPath); v != "" {
		s.InputPath = v
	}
	if v := store.GetString(driven.ConfigKeyOutputPath); v != "" {
		s.OutputPath = v
	}
	if v := store.GetString(driven.ConfigKeySystemMessage); v != "" {
		s.SystemMessagePath = v
	}
	if v := store.GetString(driven.ConfigKeySeparator); v != "" {
		s.Separator = v
	}
	if _, ok := store.Get(driven.ConfigKeyTemperature); ok {
		s.Temperature = store.GetFloat(driven.ConfigKeyTemperature)
	}
	if _, ok := store.Get(driven.ConfigKeyMaxTokens); ok {
		s.MaxTokens = store.GetInt(driven.ConfigKeyMaxTokens)
	}
	if _, ok := store.Get(driven.ConfigKeyChunkSize); ok {
		s.ChunkSize = store.GetInt(driven.ConfigKeyChunkSize)
	}
	if _, ok := store.Get(driven.ConfigKeyMaxRetries); ok {
		s.MaxRetries = store.GetInt(driven.ConfigKeyMaxRetries)
	}
	applyConfigDelay(s, store)
}

// applyConfigDelay reads the request delay, accepting either a duration
// string ("1.5s") or a bare number of seconds.
func applyConfigDelay(s *domain.Settings, store driven.ConfigStore) {
	if v := store.GetString(driven.ConfigKeyRequestDelay); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			s.RequestDelay = d
		}
		return
	}
	if _, ok := store.Get(driven.ConfigKeyRequestDelay); ok {
		if secs := store.GetFloat(driven.ConfigKeyRequestDelay); secs >= 0 {
			s.RequestDelay = time.Duration(secs * float64(time.Second))
		}
	}
}

func applyRunFlags(s *domain.Settings, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		s.InputPath = runInput
	}
	if flags.Changed("output") {
		s.OutputPath = runOutput
	}
	if flags.Changed("provider") {
		s.Provider = domain.Provider(runProvider)
	}
	if flags.Changed("model") {
		s.Model = runModel
	}
	if flags.Changed("api-key") {
		s.APIKey = runAPIKey
	}
	if flags.Changed("base-url") {
		s.BaseURL = runBaseURL
	}
	if flags.Changed("system-message") {
		s.SystemMessagePath = runSystemMessage
	}
	if flags.Changed("separator") {
		s.Separator = runSeparator
	}
	if flags.Changed("chunk-size") {
		s.ChunkSize = runChunkSize
	}
	if flags.Changed("delay") {
		s.RequestDelay = runDelay
	}
	if flags.Changed("max-retries") {
		s.MaxRetries = runMaxRetries
	}
	if flags.Changed("temperature") {
		s.Temperature = runTemperature
	}
	if flags.Changed("max-tokens") {
		s.MaxTokens = runMaxTokens
	}
}

func printReport(cmd *cobra.Command, report *driving.RunReport) {
	cmd.Println()
	if report.Ok() {
		cmd.Println(successStyle.Render("Annotation complete"))
	} else {
		cmd.Println(failureStyle.Render("Annotation finished with failures"))
	}
	cmd.Printf("  %s\n", services.Summary(report))
	cmd.Printf("  Run: %s\n", report.RunID)
	cmd.Printf("  Output: %s\n", report.OutputPath)
	cmd.Printf("  Elapsed: %s\n", report.Elapsed.Round(time.Millisecond))
	for _, f := range report.Failures {
		detail := fmt.Sprintf("chunk %d failed after %d attempt(s): %s", f.ChunkIndex, f.Attempts, f.Reason)
		cmd.Printf("  %s\n", faintStyle.Render(detail))
	}
}
