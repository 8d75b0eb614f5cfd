package main

import (
	"context"
	"fmt"
	"os"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/importer"
	"Pergola/internal/calc/params"
	"Pergola/internal/repo"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	paramsFile string
	pricesFile string
	pricesXLSX string
	format     string
}

type paramFlag struct {
	key   string
	flag  string
	usage string
}

// Numeric parameters settable from the command line. Keys match the
// mapstructure tags of params.Set.
var floatFlags = []paramFlag{
	{"width", "width", "Span across the trusses, m"},
	{"length", "length", "Run length along the ridge, m"},
	{"height", "height", "Pillar height, m"},
	{"roof_height", "roof-height", "Roof rise above the pillars, m"},
	{"overhang", "overhang", "Roof overhang past the pillars, m"},
	{"pillar_spacing", "pillar-spacing", "Max pillar spacing, m (when --pillars is 0)"},
	{"truss_spacing", "truss-spacing", "Max truss spacing, m (when --trusses is 0)"},
	{"lathing_step", "lathing-step", "Max lathing spacing across the roof, m (0 disables)"},
	{"slab_extension", "slab-extension", "Slab extension past the walls, m"},
	{"slab_thickness_mm", "slab-thickness", "Slab thickness, mm"},
	{"railing_height", "railing-height", "Gazebo railing height, m"},
}

var intFlags = []paramFlag{
	{"pillar_count", "pillars", "Pillars per side"},
	{"truss_count", "trusses", "Number of trusses"},
	{"doors", "doors", "Greenhouse doors"},
	{"vents", "vents", "Greenhouse vents"},
}

var stringFlags = []paramFlag{
	{"family", "family", "canopy, gazebo or greenhouse"},
	{"roof_shape", "roof", "gable, arch, shed or flat"},
	{"bracing", "bracing", "simple, reinforced or lattice"},
	{"foundation", "foundation", "posts or slab"},
	{"pillar_tube", "pillar-tube", "Pillar section, e.g. 80x80"},
	{"truss_tube", "truss-tube", "Truss section, e.g. 40x40"},
	{"lathing_tube", "lathing-tube", "Lathing section, e.g. 40x20"},
	{"roof_material", "roof-material", "Roofing material tag"},
	{"wall_material", "wall-material", "Greenhouse wall material tag"},
	{"color", "color", "Color tag carried to every member"},
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()

	root := &cobra.Command{
		Use:   "pergola",
		Short: "Frame and cost takeoff for canopies, gazebos and greenhouses",
		Long: `Generate the member list of a canopy, gazebo or greenhouse frame and price it.

Parameters come from a YAML, JSON or TOML file (--params), PERGOLA_* environment
variables and flags, in increasing order of precedence.

Examples:
  pergola generate --params shed.yaml
  pergola estimate --family gazebo --width 3 --length 4 --height 2.4 --roof-height 1 --pillars 3 --trusses 3
  pergola report --params greenhouse.yaml --prices prices.yaml -o report.pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.paramsFile, "params", "", "Parameter file (yaml, json or toml)")
	pf.StringVar(&opts.pricesFile, "prices", "", "Price table YAML laid over the defaults")
	pf.StringVar(&opts.pricesXLSX, "prices-xlsx", "", "Price workbook laid over the defaults and --prices")
	pf.StringVar(&opts.format, "format", string(FormatHuman), "Output format (json, human)")
	for _, f := range floatFlags {
		pf.Float64(f.flag, 0, f.usage)
		v.BindPFlag(f.key, pf.Lookup(f.flag))
	}
	for _, f := range intFlags {
		pf.Int(f.flag, 0, f.usage)
		v.BindPFlag(f.key, pf.Lookup(f.flag))
	}
	for _, f := range stringFlags {
		pf.String(f.flag, "", f.usage)
		v.BindPFlag(f.key, pf.Lookup(f.flag))
	}
	pf.Bool("floor", false, "Gazebo floor")
	v.BindPFlag("floor", pf.Lookup("floor"))
	v.SetEnvPrefix("PERGOLA")
	v.AutomaticEnv()

	root.AddCommand(
		newGenerateCmd(opts, v),
		newEstimateCmd(opts, v),
		newReportCmd(opts, v),
		newTubesCmd(opts),
		newPricesCmd(opts),
	)
	return root
}

// loadParams merges the parameter file with environment and flags.
func loadParams(opts *options, v *viper.Viper) (params.Set, error) {
	if opts.paramsFile != "" {
		v.SetConfigFile(opts.paramsFile)
		if err := v.ReadInConfig(); err != nil {
			return params.Set{}, fmt.Errorf("read params: %w", err)
		}
	}
	var p params.Set
	if err := v.Unmarshal(&p); err != nil {
		return params.Set{}, fmt.Errorf("decode params: %w", err)
	}
	return p, nil
}

func loadPrices(ctx context.Context, opts *options) (cost.PriceTable, error) {
	var store repo.PriceStore
	if opts.pricesFile != "" {
		if _, err := os.Stat(opts.pricesFile); err != nil {
			return cost.PriceTable{}, err
		}
		store = repo.NewFilePriceStore(opts.pricesFile)
	}
	table, err := repo.Current(ctx, store)
	if err != nil {
		return cost.PriceTable{}, err
	}
	if opts.pricesXLSX != "" {
		parsed, sum, err := importer.ParseFile(opts.pricesXLSX)
		if err != nil {
			return cost.PriceTable{}, err
		}
		if len(sum.Skipped) > 0 {
			logger.Printf("%s: skipped rows %v", opts.pricesXLSX, sum.Skipped)
		}
		table = table.Merge(parsed)
	}
	return table, nil
}
