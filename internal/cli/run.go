package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/pipeline"
	"github.com/mvoloshin/personify/internal/reddit"
	"github.com/mvoloshin/personify/internal/rules"
	"github.com/mvoloshin/personify/internal/util"
	"github.com/mvoloshin/personify/internal/worker"
)

var (
	batchMode   bool
	maxPosts    int
	maxComments int
	outputDir   string
	rulesFile   string
	outJSON     bool
	noCache     bool
	runTimeout  time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <username|profile-url|file>",
	Short: "Generate a persona for one user or a batch file",
	Long: `Run fetches a Reddit user's public posts and comments, infers a
persona, and writes a cited text report to the output directory.

With --batch the argument is a file of usernames or profile URLs, one
per line (# comments and blank lines are skipped). Users are processed
strictly one at a time; a failing user is reported and skipped.

Credentials come from the environment (or a local .env file):
  REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET     required
  REDDIT_USERNAME, REDDIT_PASSWORD           optional, password grant
  REDDIT_USER_AGENT                          optional override

Example:
  personify run spez
  personify run https://www.reddit.com/user/spez/
  personify run watchlist.txt --batch --output-dir ./personas
  personify run spez --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&batchMode, "batch", false, "treat the argument as a file of usernames")
	runCmd.Flags().IntVar(&maxPosts, "max-posts", 100, "maximum posts to analyze per user")
	runCmd.Flags().IntVar(&maxComments, "max-comments", 200, "maximum comments to analyze per user")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "./personas", "output directory for persona reports")
	runCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule file replacing the built-in trait rules")
	runCmd.Flags().BoolVar(&outJSON, "json", false, "also write the persona as JSON")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the profile cache (force fresh fetch)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall timeout for the run")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summary")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ruleset, err := loadRuleset()
	if err != nil {
		return err
	}

	client, err := reddit.NewHTTPClient(cfg.Reddit)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, client, ruleset)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if batchMode {
		return runBatch(ctx, p, args[0])
	}
	return runSingle(ctx, p, args[0])
}

func runSingle(ctx context.Context, p *pipeline.Pipeline, arg string) error {
	username, err := util.ExtractUsername(arg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing u/%s (up to %d posts, %d comments)\n", username, maxPosts, maxComments)
	}

	path, err := p.ProcessUser(ctx, username)
	if err != nil {
		return fmt.Errorf("persona for %s: %w", username, err)
	}

	fmt.Fprintf(os.Stderr, "✓ Persona written to %s\n", path)
	return nil
}

func runBatch(ctx context.Context, p *pipeline.Pipeline, file string) error {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Personify Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", runTimeout)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p)
	results, summary, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Username, result.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %s\n", result.Username, result.OutputPath)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Attempted: %d, succeeded: %d, failed: %d\n", summary.Attempted, summary.Succeeded, summary.Failed)
	fmt.Fprintf(os.Stderr, "\n")

	// Per-user failures were reported above; a batch that ran to the end
	// exits zero
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	return nil
}

// buildConfig merges defaults, flags, and credential environment variables
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Reddit.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	cfg.Reddit.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	cfg.Reddit.Username = os.Getenv("REDDIT_USERNAME")
	cfg.Reddit.Password = os.Getenv("REDDIT_PASSWORD")
	if ua := os.Getenv("REDDIT_USER_AGENT"); ua != "" {
		cfg.Reddit.UserAgent = ua
	}
	if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
		return nil, fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET must be set (see https://www.reddit.com/prefs/apps)")
	}

	cfg.Limits.MaxPosts = maxPosts
	cfg.Limits.MaxComments = maxComments
	cfg.Cache.Enabled = !noCache
	cfg.Output.Dir = outputDir
	cfg.Output.JSON = outJSON
	cfg.Output.Verbose = verbose
	cfg.Rules.File = rulesFile

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OPENAI_BASE_URL")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func loadRuleset() (*rules.Ruleset, error) {
	if rulesFile == "" {
		return rules.Default(), nil
	}
	return rules.Load(rulesFile)
}
