package haste

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/geometry"
	"github.com/ciechowoj/haste-go/pkg/imageio"
	"github.com/ciechowoj/haste-go/pkg/integrator"
	"github.com/ciechowoj/haste-go/pkg/renderer"
	"github.com/ciechowoj/haste-go/pkg/scene"
	"github.com/ciechowoj/haste-go/pkg/stats"
)

// renderFlags collects the render subcommand's spec.md §6 flags before
// they are folded into a config.Options.
type renderFlags struct {
	technique  string
	resolution string
	camera     int
	parallel   bool
	batch      bool
	verbose    bool
}

func newRenderCommand() *cobra.Command {
	opts := config.Default()
	flags := renderFlags{technique: "pt", resolution: "512x512"}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene progressively with PT, BPT, VCM or UPG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneName := "default"
			if len(args) == 1 {
				sceneName = args[0]
			}

			technique, err := parseTechnique(flags.technique)
			if err != nil {
				return config.NewExitError(1, err)
			}
			opts.Technique = technique

			width, height, err := parseResolution(flags.resolution)
			if err != nil {
				return config.NewExitError(1, err)
			}
			opts.Width, opts.Height = width, height
			opts.CameraID = flags.camera

			return runRender(cmd, sceneName, opts, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.technique, "technique", flags.technique, "transport technique: pt, bpt, vcm, upg")
	f.IntVar(&opts.NumPhotons, "num-photons", opts.NumPhotons, "photons traced per VCM/UPG pass")
	f.IntVar(&opts.MaxGather, "max-gather", opts.MaxGather, "maximum photons gathered per query")
	f.Float64Var(&opts.MaxRadius, "max-radius", opts.MaxRadius, "initial photon gather radius")
	f.Float64Var(&opts.Beta, "beta", opts.Beta, "MIS power heuristic exponent")
	f.Float64Var(&opts.Roulette, "roulette", opts.Roulette, "Russian roulette survival probability")
	f.IntVar(&opts.MinSubpath, "min-subpath", opts.MinSubpath, "bounces exempt from Russian roulette")
	f.IntVar(&opts.NumSamples, "num-samples", 0, "samples per pixel (0 = use scene default)")
	f.Float64Var(&opts.NumSeconds, "num-seconds", 0, "wall-clock render budget in seconds (0 = unlimited)")
	f.IntVar(&opts.NumJobs, "num-jobs", opts.NumJobs, "worker goroutines (0 = auto-detect)")
	f.IntVar(&opts.Snapshot, "snapshot", 0, "save an intermediate snapshot every N passes (0 = disabled)")
	f.IntVar(&flags.camera, "camera", 0, "camera index override")
	f.StringVar(&flags.resolution, "resolution", flags.resolution, "output resolution WxH")
	f.BoolVar(&flags.parallel, "parallel", false, "accepted for compatibility; has no effect (tiles are always rendered by the worker pool)")
	f.BoolVar(&flags.batch, "batch", false, "disable tile progress callbacks (non-interactive runs)")
	f.StringVar(&opts.Output, "output", "", "output image path (.hst binary format; default: output/<scene>/render_<timestamp>.hst)")
	f.StringVar(&opts.Reference, "reference", "", "reference image to compute error metrics against")
	f.BoolVar(&flags.verbose, "verbose", true, "use structured (zap) logging instead of quiet plain-text output")

	return cmd
}

func parseTechnique(s string) (config.Technique, error) {
	switch strings.ToLower(s) {
	case "pt":
		return config.TechniquePT, nil
	case "bpt":
		return config.TechniqueBPT, nil
	case "vcm", "upg":
		return config.TechniqueVCM, nil
	default:
		return 0, fmt.Errorf("unknown technique %q (want pt, bpt, vcm or upg)", s)
	}
}

func parseResolution(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid resolution %q (want WIDTHxHEIGHT)", s)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution width %q: %w", parts[0], err)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution height %q: %w", parts[1], err)
	}
	return width, height, nil
}

func runRender(cmd *cobra.Command, sceneName string, opts config.Options, flags renderFlags) error {
	sceneObj, err := createScene(sceneName, opts)
	if err != nil {
		return config.NewExitError(1, err)
	}
	// Built-in scenes that accept a camera override already render at
	// opts.Width/opts.Height; scenes with a fixed camera (Cornell, PBRT
	// imports) dictate their own resolution, so the render buffer follows
	// the scene rather than clipping or stretching it.
	opts.Width = sceneObj.CameraConfig.Width
	opts.Height = int(float64(opts.Width) / sceneObj.CameraConfig.AspectRatio)
	sceneObj.SamplingConfig.Width = opts.Width
	sceneObj.SamplingConfig.Height = opts.Height

	logger, err := selectLogger(flags.verbose)
	if err != nil {
		return config.NewExitError(3, err)
	}

	newIntegrator := func() integrator.Integrator {
		switch opts.Technique {
		case config.TechniqueBPT:
			return integrator.NewBDPTIntegrator(sceneObj.SamplingConfig)
		case config.TechniqueVCM:
			return integrator.NewVCMIntegrator(sceneObj.SamplingConfig, opts.MaxRadius, opts.NumPhotons)
		default:
			return integrator.NewPathTracingIntegrator(sceneObj.SamplingConfig)
		}
	}

	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.NumWorkers = opts.NumJobs
	if progressiveConfig.NumWorkers == 1 {
		progressiveConfig.NumWorkers = 0 // config.Default's NumJobs=1 means "don't override auto-detect"
	}
	if opts.NumSamples > 0 {
		progressiveConfig.MaxSamplesPerPixel = opts.NumSamples
	}

	progressiveRT := renderer.NewProgressiveRaytracer(sceneObj, opts.Width, opts.Height, progressiveConfig, logger, newIntegrator)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.NumSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.NumSeconds*float64(time.Second)))
		defer cancel()
	}

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = filepath.Join("output", sceneDirName(sceneName), fmt.Sprintf("render_%s.hst", time.Now().Format("20060102_150405")))
	}

	passChan, _, errChan := progressiveRT.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: !flags.batch})

	var finalStats renderer.RenderStats
	var rendered bool

	for passChan != nil || errChan != nil {
		select {
		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			finalStats = result.Stats
			rendered = true

			if opts.Snapshot > 0 && result.PassNumber%opts.Snapshot == 0 && !result.IsLast {
				snapshotPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + fmt.Sprintf("_pass_%02d.png", result.PassNumber)
				if err := writePreviewPNG(snapshotPath, result); err != nil {
					logger.Printf("failed to write snapshot %s: %v\n", snapshotPath, err)
				}
			}

			if result.IsLast {
				if err := saveRenderOutput(outputPath, result, sceneObj, opts); err != nil {
					return config.NewExitError(2, err)
				}
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				return config.NewExitError(3, err)
			}
		}
	}

	if !rendered {
		return config.NewExitError(3, fmt.Errorf("render produced no passes"))
	}

	cmd.Printf("Samples per pixel: %.1f (range %d - %d)\n", finalStats.AverageSamples, finalStats.MinSamples, finalStats.MaxSamplesUsed)
	cmd.Printf("Saved to %s\n", outputPath)

	if opts.Reference != "" {
		if err := printErrorAgainstReference(cmd, outputPath, opts.Reference); err != nil {
			logger.Printf("failed to compare against reference: %v\n", err)
		}
	}

	return nil
}

func selectLogger(verbose bool) (core.Logger, error) {
	if !verbose {
		return renderer.NewDefaultLogger(), nil
	}
	return renderer.NewZapLogger()
}

// saveRenderOutput persists the final pass both as the renderer's own binary
// format (carrying the run's full option metadata, for avg/errors/sub/merge/
// filter/time to consume) and as an 8-bit PNG preview beside it.
func saveRenderOutput(outputPath string, result renderer.PassResult, sceneObj *scene.Scene, opts config.Options) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	img := imageio.NewImage(sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height)
	bounds := result.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := result.Image.RGBAAt(x, y)
			img.AbsAt(x, y).Add(toLinear(c))
		}
	}
	img.Metadata = opts.ToMetadata()
	img.Metadata["total_time"] = fmt.Sprint(time.Now().Unix())

	if err := imageio.Save(outputPath, img, imageio.BinaryCodec()); err != nil {
		return err
	}

	previewPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".png"
	f, err := os.Create(previewPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, result.Image)
}

func writePreviewPNG(path string, result renderer.PassResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, result.Image)
}

// toLinear undoes the 8-bit sRGB-gamma encoding vec3ToColor applied, so the
// persisted binary image stores (approximately) the linear radiance the
// renderer produced rather than its tonemapped preview.
func toLinear(c color.RGBA) core.Vec3 {
	gamma := func(u uint8) float64 {
		x := float64(u) / 255.0
		return x * x // inverse of the renderer's approx. 1/2.2 ~ 2 gamma encode
	}
	return core.Vec3{X: gamma(c.R), Y: gamma(c.G), Z: gamma(c.B)}
}

func printErrorAgainstReference(cmd *cobra.Command, outputPath, referencePath string) error {
	out, err := imageio.Load(outputPath, imageio.BinaryCodec())
	if err != nil {
		return err
	}
	ref, err := imageio.Load(referencePath, imageio.BinaryCodec())
	if err != nil {
		return err
	}
	rms, abs := stats.AggregateError(out.Flatten(), ref.Flatten())
	cmd.Printf("rms=%f abs=%f (against %s)\n", rms, abs, referencePath)
	return nil
}

func createScene(sceneName string, opts config.Options) (*scene.Scene, error) {
	if pbrtScene, err := tryLoadPBRTScene(sceneName); err == nil && pbrtScene != nil {
		return pbrtScene, nil
	}

	// Scenes built around a fixed camera (Cornell) ignore this; the rest
	// merge it over their defaults via geometry.MergeCameraConfig.
	override := geometry.CameraConfig{Width: opts.Width, AspectRatio: float64(opts.Width) / float64(opts.Height)}

	switch sceneName {
	case "cornell":
		return scene.NewCornellScene(), nil
	case "spheregrid":
		return scene.NewSphereGridScene(override), nil
	case "trianglemesh":
		return scene.NewTriangleMeshScene(32, override), nil
	case "dragon":
		return scene.NewDragonScene(true, override), nil
	case "caustic-glass":
		return scene.NewCausticGlassScene(true, renderer.NewDefaultLogger(), override), nil
	case "cylinder-test":
		return scene.NewCylinderTestScene(override), nil
	case "cone-test":
		return scene.NewConeTestScene(override), nil
	case "default", "":
		return scene.NewDefaultScene(override), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", sceneName)
	}
}

// tryLoadPBRTScene treats sceneName as a .pbrt file path (direct, or under
// scenes/) before falling back to the built-in scene switch.
func tryLoadPBRTScene(sceneName string) (*scene.Scene, error) {
	candidates := []string{
		sceneName,
		filepath.Join("scenes", sceneName+".pbrt"),
		filepath.Join("scenes", sceneName),
	}

	for _, path := range candidates {
		if !strings.HasSuffix(path, ".pbrt") {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return scene.NewPBRTScene(path)
	}

	return nil, nil
}

func sceneDirName(sceneName string) string {
	if strings.Contains(sceneName, "/") || strings.HasSuffix(sceneName, ".pbrt") {
		return strings.TrimSuffix(filepath.Base(sceneName), ".pbrt")
	}
	return sceneName
}
