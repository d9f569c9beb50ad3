// Command deckforge analyzes slide-deck templates and generates styled
// presentations from JSON content.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deckforge/deckforge"
)

var (
	flagVerbose bool
	flagLogJSON bool
	flagConfig  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "deckforge",
		Short:         "Template-driven presentation generator",
		Long:          "deckforge extracts design properties from .pptx templates and assembles styled presentations from JSON content records.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return loadConfig()
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "emit logs as JSON")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./deckforge.yaml)")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

func setupLogging() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if flagLogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig wires viper: an optional config file plus DECKFORGE_*
// environment overrides. A missing config file is fine; a broken one
// is not.
func loadConfig() error {
	viper.SetEnvPrefix("DECKFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else {
		viper.SetConfigName("deckforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		if flagConfig == "" {
			// No explicit config requested; ignore discovery failures.
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", flagConfig, err)
	}
	slog.Debug("loaded config file", "path", viper.ConfigFileUsed())
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "analyze <template.pptx>",
		Short: "Extract structural design data from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := deckforge.Open(args[0])
			if err != nil {
				return err
			}
			analysis := deckforge.AnalyzeTemplate(pres)
			if err := deckforge.SaveJSON(outPath, analysis); err != nil {
				return err
			}
			slog.Info("template analyzed",
				"template", args[0],
				"layouts", len(analysis.Layouts),
				"colors", len(analysis.ColorScheme),
				"output", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "template_analysis.json", "analysis output path")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var (
		templatePath string
		imagePath    string
		outPath      string
		configOut    string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Merge structural and visual analyses into design properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := deckforge.LoadTemplateAnalysis(templatePath)
			if err != nil {
				return err
			}
			image, err := deckforge.LoadImageAnalysis(imagePath)
			if err != nil {
				return err
			}

			spec := deckforge.BuildDesignSpec(template, image)
			if err := deckforge.SaveJSON(outPath, spec); err != nil {
				return err
			}
			if err := deckforge.SaveJSON(configOut, deckforge.BuildDeckConfig(spec)); err != nil {
				return err
			}
			slog.Info("design properties extracted",
				"primary_color", spec.ColorScheme.BrandColors.Primary,
				"font", spec.Typography.PrimaryFontFamily,
				"layouts", len(spec.LayoutTemplates),
				"output", outPath,
				"config", configOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template-analysis", "template_analysis.json", "template analysis input")
	cmd.Flags().StringVar(&imagePath, "image-analysis", "image_analysis.json", "image analysis input")
	cmd.Flags().StringVarP(&outPath, "output", "o", "design_properties.json", "design properties output path")
	cmd.Flags().StringVar(&configOut, "config-output", "enhanced_template_config.json", "reduced deck config output path")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var mappingPath string
	cmd := &cobra.Command{
		Use:   "validate <content.json>",
		Short: "Check a content record against the slide mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := deckforge.LoadContentRecord(args[0])
			if err != nil {
				return err
			}
			mapping, err := loadMapping(mappingPath)
			if err != nil {
				return err
			}

			problems := deckforge.ValidateContent(record, mapping)
			if len(problems) == 0 {
				slog.Info("content record is complete", "content", args[0])
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return fmt.Errorf("content record has %d problem(s)", len(problems))
		},
	}
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "mapping config override (default: built-in plan)")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var (
		configPath   string
		mappingPath  string
		templatePath string
		outPath      string
	)
	cmd := &cobra.Command{
		Use:   "generate <content.json>",
		Short: "Assemble a presentation from a content record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := deckforge.LoadContentRecord(args[0])
			if err != nil {
				return err
			}
			mapping, err := loadMapping(mappingPath)
			if err != nil {
				return err
			}
			config, err := loadDeckConfig(configPath)
			if err != nil {
				return err
			}

			var pres *deckforge.Presentation
			if templatePath != "" {
				pres, err = deckforge.OpenTemplate(templatePath)
				if err != nil {
					return err
				}
			} else {
				pres = deckforge.New()
			}

			assembler := deckforge.NewAssembler(pres, config, slog.Default())
			report := assembler.Assemble(mapping, record)

			if err := pres.SaveAs(outPath); err != nil {
				return err
			}
			slog.Info("presentation generated",
				"output", outPath,
				"slides_planned", report.SlidesPlanned,
				"slides_built", report.SlidesBuilt,
				"skipped", len(report.Skipped),
				"warnings", len(report.Warnings))
			if len(report.Skipped) > 0 {
				return fmt.Errorf("skipped %d slide(s): %s", len(report.Skipped), strings.Join(report.Skipped, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "deck-config", "", "deck config (default: enhanced_template_config.json if present, else built-in)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "mapping config override (default: built-in plan)")
	cmd.Flags().StringVar(&templatePath, "template", "", "template .pptx to take layouts from")
	cmd.Flags().StringVarP(&outPath, "output", "o", "presentation.pptx", "output .pptx path")
	return cmd
}

func loadMapping(path string) (*deckforge.MappingConfig, error) {
	if path == "" {
		return deckforge.DefaultMappingConfig(), nil
	}
	return deckforge.LoadMappingConfig(path)
}

// loadDeckConfig resolves the deck config: an explicit path must load,
// the conventional filename loads opportunistically, and everything
// else falls back to the built-in defaults.
func loadDeckConfig(path string) (*deckforge.DeckConfig, error) {
	if path != "" {
		var cfg deckforge.DeckConfig
		if err := deckforge.LoadJSONInto(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	const conventional = "enhanced_template_config.json"
	if _, err := os.Stat(conventional); err == nil {
		var cfg deckforge.DeckConfig
		if err := deckforge.LoadJSONInto(conventional, &cfg); err != nil {
			return nil, err
		}
		slog.Debug("using deck config", "path", conventional)
		return &cfg, nil
	}
	slog.Debug("no deck config found, using defaults")
	return deckforge.DefaultDeckConfig(), nil
}
