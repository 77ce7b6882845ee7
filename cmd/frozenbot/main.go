package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/RGJohana/Bot-Frozen/cmd/frozenbot/chat"
	"github.com/RGJohana/Bot-Frozen/internal/config"
	"github.com/RGJohana/Bot-Frozen/internal/dialogue"
	"github.com/RGJohana/Bot-Frozen/internal/inventory"
	"github.com/RGJohana/Bot-Frozen/internal/logging"
	"github.com/RGJohana/Bot-Frozen/internal/model"
	"github.com/RGJohana/Bot-Frozen/internal/nlp"
	"github.com/RGJohana/Bot-Frozen/internal/weather"
)

// Build metadata, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "frozenbot",
	Short: "FrozenBOT - conversational ordering agent for Frozen SRL",
	Long: `FrozenBOT is the interactive ordering assistant of the Frozen SRL ice
cream shop. It classifies free-text input with a pretrained bag-of-words
intent model and walks order requests through a bounded-attempt dialogue
against the session inventory.

Run without arguments to start the interactive chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive chat owns the terminal; skip the logger there.
		if cmd.Use == "frozenbot" && cmd.CalledAs() == "frozenbot" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

// stockCmd prints the in-stock listing without starting a session.
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Show the products currently in stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		inv := buildInventory(cfg)
		fmt.Println("Los productos en stock son:")
		for _, p := range inv.ListAvailable() {
			fmt.Printf("Producto: %s, Cantidad: %d\n", p.Name, p.Quantity)
		}
		return nil
	},
}

// classifyCmd runs the NLP pipeline over one utterance and dumps every
// intermediate stage. Debugging aid for tuning the model artifacts.
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify an utterance and show the pipeline stages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("frozenbot %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")

	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runChat loads everything the session needs and hands control to the chat
// interface. Artifact loading and the weather probe run concurrently; only
// the artifacts can fail the startup.
func runChat(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(".", logging.Config{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.Close()

	timeout, err := cfg.WeatherTimeout()
	if err != nil {
		return err
	}
	wclient := weather.NewClient(weather.Options{
		APIKey:   cfg.Weather.APIKey,
		Lat:      cfg.Weather.Lat,
		Lon:      cfg.Weather.Lon,
		HotAbove: cfg.Weather.HotAbove,
		Timeout:  timeout,
	})

	var (
		arts *model.Artifacts
		hot  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		arts, err = model.Load(cfg.ModelDir)
		return err
	})
	g.Go(func() error {
		hot = wclient.IsHotNow(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading model artifacts: %w", err)
	}

	logging.Get(logging.CategoryBoot).Info("artifacts loaded: vocab=%d labels=%d", len(arts.Vocab), len(arts.Responses))

	session := dialogue.NewSession(arts, buildInventory(cfg), cfg.Threshold, nil)
	return chat.Run(session, greeting(hot, wclient))
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	arts, err := model.Load(cfg.ModelDir)
	if err != nil {
		return fmt.Errorf("loading model artifacts: %w", err)
	}

	text := strings.Join(args, " ")
	logger.Debug("classifying utterance", zap.String("text", text))

	normalized := nlp.Normalize(text)
	lemmas := nlp.Lemmatize(nlp.Tokenize(normalized), arts.Lemmas)
	vector := nlp.Vectorize(lemmas, arts.Vocab)
	dist, err := arts.Network.Classify(vector)
	if err != nil {
		return fmt.Errorf("classifying: %w", err)
	}

	fmt.Printf("normalized: %q\n", normalized)
	fmt.Printf("lemmas:     %v\n", lemmas)

	type scored struct {
		label int
		p     float64
	}
	ranked := make([]scored, len(dist))
	for i, p := range dist {
		ranked[i] = scored{label: i, p: p}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].p > ranked[j].p })

	fmt.Println("top labels:")
	for _, s := range ranked[:min(5, len(ranked))] {
		marker := " "
		if s.p > cfg.Threshold {
			marker = "*"
		}
		fmt.Printf("  %s label %2d  p=%.4f\n", marker, s.label, s.p)
	}
	return nil
}

func buildInventory(cfg config.Config) *inventory.Inventory {
	products := make([]inventory.Product, len(cfg.Inventory))
	for i, s := range cfg.Inventory {
		products[i] = inventory.Product{Name: s.Name, Quantity: s.Quantity}
	}
	return inventory.New(products)
}

// greeting picks the welcome line from the weather probe result.
func greeting(hot bool, w *weather.Client) string {
	temp, ok := w.Temperature()
	switch {
	case hot:
		return fmt.Sprintf("Bienvenido soy FrozenBOT. Te comento que hoy hace calor, la temperatura en Pehuajó es de %.1fºC. ¿Prefieres algo refrescante?", temp)
	case ok:
		return fmt.Sprintf("Bienvenido soy FrozenBOT. Te comento que el clima no es tan cálido, la temperatura en Pehuajó es de %.1fºC. ¿En qué más puedo ayudarte?", temp)
	default:
		return "Bienvenido soy FrozenBOT. No pude consultar el clima en Pehuajó. ¿En qué puedo ayudarte?"
	}
}
