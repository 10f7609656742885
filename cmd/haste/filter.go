package haste

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/imageio"
)

// newFilterCommand mirrors original_source/exr.cpp's filter_exr: a NaN
// pixel (the renderer's discard marker for numerical errors, see
// pkg/stats.Counters) is replaced by the average of its non-NaN 3x3
// neighbors; a pixel with no valid neighbors, or that isn't NaN to begin
// with, passes through unchanged.
func newFilterCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "filter <image>",
		Short: "Replace NaN pixels with an average of their neighbors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.Load(args[0], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}

			result := imageio.NewImage(img.XWindow, img.YWindow)
			result.Metadata = img.Metadata

			for y := 0; y < img.YWindow; y++ {
				for x := 0; x < img.XWindow; x++ {
					src := img.RelAt(x, y)
					dst := result.AbsAt(x, y)
					if !isNaNPixel(*src) {
						dst.Merge(*src)
						continue
					}

					sum, count := core.Vec3{}, 0
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dx == 0 && dy == 0 {
								continue
							}
							nx, ny := x+dx, y+dy
							if nx < 0 || ny < 0 || nx >= img.XWindow || ny >= img.YWindow {
								continue
							}
							neighbor := img.RelAt(nx, ny)
							if isNaNPixel(*neighbor) {
								continue
							}
							c := neighbor.Color()
							sum.X += c.X
							sum.Y += c.Y
							sum.Z += c.Z
							count++
						}
					}

					if count > 0 {
						dst.Add(sum.Multiply(1.0 / float64(count)))
					} else {
						dst.Merge(*src)
					}
				}
			}

			if output == "" {
				return config.NewExitError(1, fmt.Errorf("haste: --output is required"))
			}
			if err := imageio.Save(output, result, imageio.BinaryCodec()); err != nil {
				return config.NewExitError(2, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output image path")
	return cmd
}

func isNaNPixel(p imageio.Pixel) bool {
	return math.IsNaN(p.R) || math.IsNaN(p.G) || math.IsNaN(p.B)
}
