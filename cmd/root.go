package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajvimal/scorecard/internal/analysis"
	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/llm"
	"github.com/rajvimal/scorecard/internal/logging"
	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/review"
	"github.com/rajvimal/scorecard/internal/store"
)

var closeLog = func() {}

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "A cricket-broadcast résumé for the terminal",
	Long: `scorecard presents a résumé as a live cricket broadcast: career innings,
big matches, skill stats and a "third umpire review" that asks an LLM for a
hiring decision while the replay plays out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ~/.config/scorecard/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides SCORECARD_DB env var)")
	pf.String("resume", "", "Path to a résumé YAML file (default: built-in)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Log file (default <data dir>/scorecard.log)")

	_ = viper.BindPFlag("db", pf.Lookup("db"))
	_ = viper.BindPFlag("resume.path", pf.Lookup("resume"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.file", pf.Lookup("log-file"))

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "scorecard"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCORECARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := llm.DefaultConfig()
	viper.SetDefault("llm.provider", "")
	viper.SetDefault("llm.anthropic.api_key", "")
	viper.SetDefault("llm.anthropic.model", defaults.Anthropic.Model)
	viper.SetDefault("llm.openai.api_key", "")
	viper.SetDefault("llm.openai.model", defaults.OpenAI.Model)
	viper.SetDefault("llm.openai.base_url", "")
	viper.SetDefault("llm.gemini.api_key", "")
	viper.SetDefault("llm.gemini.model", defaults.Gemini.Model)
	viper.SetDefault("llm.gemini.base_url", "")
	viper.SetDefault("llm.openrouter.api_key", "")
	viper.SetDefault("llm.openrouter.model", defaults.OpenRouter.Model)
	viper.SetDefault("llm.timeout", defaults.Timeout)
	viper.SetDefault("review.variant", review.Broadcast.Name)
	viper.SetDefault("review.analysis_timeout", review.DefaultAnalysisTimeout)
	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.voice_rate", audio.DefaultVoice.Rate)
	viper.SetDefault("audio.voice_pitch", audio.DefaultVoice.Pitch)
	viper.SetDefault("profile_url", "")

	// A missing config file is fine.
	_ = viper.ReadInConfig()
}

// initLogging installs the file logger as the global zerolog logger.
func initLogging() error {
	file := viper.GetString("log.file")
	if file == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		file = filepath.Join(dir, "scorecard.log")
	}

	logger, closer, err := logging.New(viper.GetString("log.level"), file)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	closeLog = closer
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// resolveDBPath returns the database path using --db (or db in the
// config), then SCORECARD_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func loadResume() (*resume.Resume, error) {
	p := viper.GetString("resume.path")
	if p == "" {
		return resume.Default(), nil
	}
	r, err := resume.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load résumé: %w", err)
	}
	return r, nil
}

// llmConfig reads the provider settings from viper. When no provider is
// configured the standard API key env vars are checked instead.
func llmConfig() (llm.Config, bool) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		cfg, ok := llm.DiscoverConfig()
		if ok {
			cfg.Timeout = viper.GetDuration("llm.timeout")
		}
		return cfg, ok
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.Timeout = viper.GetDuration("llm.timeout")
	cfg.Anthropic.APIKey = viper.GetString("llm.anthropic.api_key")
	cfg.Anthropic.Model = viper.GetString("llm.anthropic.model")
	cfg.OpenAI.APIKey = viper.GetString("llm.openai.api_key")
	cfg.OpenAI.Model = viper.GetString("llm.openai.model")
	cfg.OpenAI.BaseURL = viper.GetString("llm.openai.base_url")
	cfg.Gemini.APIKey = viper.GetString("llm.gemini.api_key")
	cfg.Gemini.Model = viper.GetString("llm.gemini.model")
	cfg.Gemini.BaseURL = viper.GetString("llm.gemini.base_url")
	cfg.OpenRouter.APIKey = viper.GetString("llm.openrouter.api_key")
	cfg.OpenRouter.Model = viper.GetString("llm.openrouter.model")
	return cfg, true
}

// buildAnalyzer returns an LLM-backed analyzer, or the offline one when no
// provider can be built.
func buildAnalyzer(ctx context.Context, events store.EventRepo) review.Analyzer {
	cfg, ok := llmConfig()
	if !ok || cfg.Provider == "mock" {
		log.Info().Msg("no LLM provider configured, using offline analysis")
		return analysis.Offline{Latency: 1500 * time.Millisecond}
	}

	provider, err := llm.NewProvider(ctx, cfg, events, log.Logger)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Provider).Msg("LLM provider unavailable, using offline analysis")
		return analysis.Offline{Latency: 1500 * time.Millisecond}
	}
	return analysis.New(provider, analysis.DefaultConfig())
}

// buildEngine returns the audio engine. Muted engines keep their timing
// but play into a NopSink.
func buildEngine(mute bool) *audio.Engine {
	opts := []audio.Option{audio.WithLogger(log.Logger)}
	if mute || !viper.GetBool("audio.enabled") {
		return audio.NewEngine(opts...)
	}

	voice := audio.Voice{
		Rate:  viper.GetFloat64("audio.voice_rate"),
		Pitch: viper.GetFloat64("audio.voice_pitch"),
	}
	opts = append(opts, audio.WithSink(audio.DetectSink()), audio.WithSpeaker(audio.DetectSpeaker(voice)))
	return audio.NewEngine(opts...)
}

func buildSequencer(variant string, r *resume.Resume, analyzer review.Analyzer, narrator review.Narrator, opts ...review.Option) (*review.Sequencer, error) {
	script, err := review.ScriptByName(variant)
	if err != nil {
		return nil, err
	}
	cfg := review.Config{
		Script:          script,
		Resume:          r,
		AnalysisTimeout: viper.GetDuration("review.analysis_timeout"),
	}
	opts = append(opts, review.WithLogger(log.Logger))
	return review.New(cfg, analyzer, narrator, opts...)
}
