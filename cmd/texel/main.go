package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/esimov/texel"
	"github.com/esimov/texel/internal/config"
	"github.com/esimov/texel/internal/logger"
	"github.com/esimov/texel/utils"
	"github.com/spf13/cobra"
)

const helpBanner = `
┌┬┐┌─┐─┐ ┬┌─┐┬
 │ ├┤ ┌┴┬┘├┤ │
 ┴ └─┘┴ └─└─┘┴─┘

Image filters and procedural noise textures.
    Version: %s
`

// Version indicates the current build version.
var Version string

// options holds the flags shared by every command.
type options struct {
	envFile   string
	logLevel  string
	workers   int
	noSpinner bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cfg, err := config.FromEnv()
	if err != nil {
		cfg = &config.Config{Workers: config.ClampWorkers(0), LogLevel: "info", OutputDir: "output"}
	}

	rootCmd := &cobra.Command{
		Use:           "texel",
		Long:          fmt.Sprintf(helpBanner, Version),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			*cfg = *loaded
			if !cmd.Flags().Changed("log-level") {
				opts.logLevel = cfg.LogLevel
			}
			if !cmd.Flags().Changed("conc") {
				opts.workers = cfg.Workers
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env", ".env", "Environment file holding the TEXEL_* defaults")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.IntVar(&opts.workers, "conc", cfg.Workers, "Number of files to process concurrently")
	flags.BoolVar(&opts.noSpinner, "no-spinner", false, "Disable the progress indicator")

	rootCmd.AddCommand(
		newFilterCmd(opts, texel.NormalMapFilter, "Generate a normal map from a height map"),
		newFilterCmd(opts, texel.BoxBlurFilter, "Apply a uniform box blur"),
		newFilterCmd(opts, texel.RadialBlurFilter, "Apply a radial blur around a center point"),
		newFilterCmd(opts, texel.GaussianBlurFilter, "Apply a gaussian blur"),
		newNoiseCmd(opts, cfg),
		newFBMCmd(opts),
	)
	return rootCmd
}

func (o *options) logger() logger.Logger {
	return logger.NewConsoleLogger(logger.ParseLevel(o.logLevel))
}

func (o *options) spinner(action string) *utils.Spinner {
	if o.noSpinner {
		return nil
	}
	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ TEXEL", utils.StatusMessage),
		utils.DecorateText("⇢ "+action+"...", utils.DefaultMessage),
	)
	return utils.NewSpinner(msg, time.Millisecond*80)
}

func newFilterCmd(opts *options, f texel.Filter, short string) *cobra.Command {
	var (
		src, dst string
		cx, cy   int
	)
	proc := texel.NewProcessor(f)

	cmd := &cobra.Command{
		Use:   string(f) + " --in <source> --out <destination>",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f == texel.RadialBlurFilter && cmd.Flags().Changed("cx") {
				proc.Center = &image.Point{X: cx, Y: cy}
			}
			log := opts.logger()
			proc.Logger = log

			op := &texel.Ops{
				Src:     src,
				Dst:     dst,
				Workers: opts.workers,
				Spinner: opts.spinner("applying the " + string(f) + " filter"),
				Logger:  log,
			}
			return op.Execute(proc)
		},
	}

	cmd.Flags().StringVar(&src, "in", texel.PipeName, "Source image, directory or URL")
	cmd.Flags().StringVar(&dst, "out", texel.PipeName, "Destination image or directory")

	switch f {
	case texel.NormalMapFilter:
		cmd.Flags().Float64Var(&proc.Strength, "strength", texel.DefaultNormalStrength, "Normal map strength")
	case texel.BoxBlurFilter:
		cmd.Flags().IntVar(&proc.Radius, "radius", texel.DefaultBlurRadius, "Blur radius")
	case texel.RadialBlurFilter:
		cmd.Flags().Float64Var(&proc.Strength, "strength", texel.DefaultRadialStrength, "Radial blur strength")
		cmd.Flags().IntVar(&cx, "cx", 0, "Blur center X (defaults to the image center)")
		cmd.Flags().IntVar(&cy, "cy", 0, "Blur center Y (defaults to the image center)")
		cmd.MarkFlagsRequiredTogether("cx", "cy")
	case texel.GaussianBlurFilter:
		cmd.Flags().Float64Var(&proc.Sigma, "sigma", texel.DefaultSigma, "Gaussian standard deviation")
	}
	return cmd
}

func newNoiseCmd(opts *options, cfg *config.Config) *cobra.Command {
	var (
		batch  texel.NoiseBatch
		seed   uint64
		filter string
	)

	cmd := &cobra.Command{
		Use:   "noise [--out <dir>] [--count <n>] [--fbm]",
		Short: "Generate white noise images and their fractal Brownian motion composite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				batch.Seed = &seed
			} else {
				batch.Seed = cfg.Seed
			}
			if !cmd.Flags().Changed("out") {
				batch.Dir = cfg.OutputDir
			}
			batch.FBM.Resample = texel.Resample(filter)
			batch.Logger = opts.logger()

			report := utils.NewReporter(os.Stderr)
			now := time.Now()
			paths, err := batch.Run()
			for _, path := range paths {
				report.Saved(path)
			}
			if err != nil {
				return err
			}
			report.Elapsed(time.Since(now))
			return nil
		},
	}

	cmd.Flags().StringVar(&batch.Dir, "out", cfg.OutputDir, "Destination directory")
	cmd.Flags().IntVar(&batch.Width, "width", texel.DefaultNoiseWidth, "Noise image width")
	cmd.Flags().IntVar(&batch.Height, "height", texel.DefaultNoiseHeight, "Noise image height")
	cmd.Flags().IntVar(&batch.Count, "count", 1, "Number of noise images to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random generator (random when omitted)")
	cmd.Flags().BoolVar(&batch.Composite, "fbm", false, "Also composite the noise images into fbm.png")
	cmd.Flags().IntVar(&batch.Octaves, "octaves", texel.DefaultOctaves, "Number of most recent noise images used as octaves")
	cmd.Flags().StringVar(&filter, "filter", string(texel.Linear), "Octave resampling filter (linear, nearest)")
	return cmd
}

func newFBMCmd(opts *options) *cobra.Command {
	var (
		dst    string
		filter string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "fbm --out <destination> <octave>...",
		Short: "Composite octave images with fractal Brownian motion, the first one being the base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := opts.logger()
			spinner := opts.spinner("compositing the octaves")
			if spinner != nil {
				spinner.Start()
			}
			err := texel.CompositeFiles(dst, args, &texel.FBMOptions{
				Resample: texel.Resample(filter),
				Strict:   strict,
			})
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				log.Error("fbm", err, logger.Fields{"octaves": len(args)})
				return err
			}
			utils.NewReporter(os.Stderr).Saved(dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&dst, "out", "fbm.png", "Destination image")
	cmd.Flags().StringVar(&filter, "filter", string(texel.Linear), "Octave resampling filter (linear, nearest)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject octaves whose size differs from the base octave")
	return cmd
}
