package haste

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/imageio"
)

// newAvgCommand mirrors original_source/exr.cpp's exr_average: the mean
// radiance of every pixel in the window, printed as a single RGB triple.
func newAvgCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "avg <image>",
		Short: "Print the average color of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.Load(args[0], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}

			flat := img.Flatten()
			if len(flat)%3 != 0 {
				return config.NewExitError(3, fmt.Errorf("haste: flattened pixel buffer length %d is not a multiple of 3", len(flat)))
			}

			r := make([]float64, 0, len(flat)/3)
			g := make([]float64, 0, len(flat)/3)
			b := make([]float64, 0, len(flat)/3)
			for i := 0; i+2 < len(flat); i += 3 {
				r = append(r, flat[i])
				g = append(g, flat[i+1])
				b = append(b, flat[i+2])
			}

			cmd.Printf("average: (%f, %f, %f)\n", stat.Mean(r, nil), stat.Mean(g, nil), stat.Mean(b, nil))
			return nil
		},
	}
}
