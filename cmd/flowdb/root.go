package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cktlab/flowdb"
	"github.com/cktlab/flowdb/internal/pipeline"
)

var (
	flagWorkDir     string
	flagTech        string
	flagSpacing     string
	flagWidthArea   string
	flagEnclosure   string
	flagWellContact string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "flowdb",
	Short: "analog layout flow driver and database tools",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the layout flow stages in order",
	Run:   run,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <stream file>",
	Short: "parse a GDSII stream file against the technology and report its content",
	Args:  cobra.ExactArgs(1),
	Run:   inspect,
}

// Execute runs the driver command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkDir, "workdir", "w", ".", "working directory for the flow stages")
	rootCmd.PersistentFlags().StringVarP(&flagTech, "tech", "t", "tech.yaml", "technology file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log stage output")
	runCmd.Flags().StringVar(&flagSpacing, "spacing", "", "spacing rule file (overrides the technology file)")
	runCmd.Flags().StringVar(&flagWidthArea, "width-area", "", "width/area rule file (overrides the technology file)")
	runCmd.Flags().StringVar(&flagEnclosure, "enclosure", "", "enclosure rule file (overrides the technology file)")
	runCmd.Flags().StringVar(&flagWellContact, "well-contact", "", "well-contact reference stream file (overrides the technology file)")
	rootCmd.AddCommand(runCmd, inspectCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("flowdb")
	viper.AutomaticEnv()
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func run(cmd *cobra.Command, args []string) {
	log := newLogger()
	tech, err := flowdb.LoadTechDB(flagTech)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load technology")
	}
	rules := tech.Rules()
	if flagSpacing != "" {
		rules.Spacing = flagSpacing
	}
	if flagWidthArea != "" {
		rules.WidthArea = flagWidthArea
	}
	if flagEnclosure != "" {
		rules.Enclosure = flagEnclosure
	}
	if flagWellContact != "" {
		rules.WellContact = flagWellContact
	}
	tech.SetRules(rules)

	err = pipeline.Run(log, flagWorkDir, pipeline.FlowStages(flagWorkDir, tech.Rules()))
	if err != nil {
		if se, ok := err.(*pipeline.StageError); ok && se.Code > 0 {
			os.Exit(se.Code)
		}
		os.Exit(1)
	}
}

func inspect(cmd *cobra.Command, args []string) {
	log := newLogger()
	tech, err := flowdb.LoadTechDB(flagTech)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load technology")
	}
	g := flowdb.NewGraph()
	g.SetTechDB(tech)
	if err := g.ParseGDS(args[0]); err != nil {
		log.Fatal().Err(err).Msg("cannot parse stream file")
	}
	data := g.GdsData()
	log.Info().
		Str("cell", data.CellName()).
		Float64("db_unit", data.DBUnit()).
		Int("polygons", data.NumPolys()).
		Msg("stream parsed")
	for layer := 0; layer < tech.NumLayers(); layer++ {
		shapes := g.Layout().Shapes(layer)
		if len(shapes) == 0 {
			continue
		}
		log.Info().
			Str("layer", tech.LayerName(layer)).
			Int("shapes", len(shapes)).
			Msg("layer content")
	}
}
