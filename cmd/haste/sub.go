package haste

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/imageio"
)

// newSubCommand mirrors original_source/exr.cpp's subtract_exr: a per-pixel
// component-wise difference, stamped with a "difference" technique label so
// downstream errors/avg calls can tell a diff image apart from a render.
func newSubCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sub <first> <second>",
		Short: "Subtract one image from another, pixel by pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := imageio.Load(args[0], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}
			second, err := imageio.Load(args[1], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}
			if first.XWindow != second.XWindow || first.YWindow != second.YWindow {
				return config.NewExitError(1, fmt.Errorf(
					"haste: image windows do not match (%dx%d vs %dx%d)",
					first.XWindow, first.YWindow, second.XWindow, second.YWindow))
			}

			result := imageio.NewImage(first.XWindow, first.YWindow)
			for y := 0; y < first.YWindow; y++ {
				for x := 0; x < first.XWindow; x++ {
					a := first.RelAt(x, y).Color()
					b := second.RelAt(x, y).Color()
					diff := result.AbsAt(x, y)
					diff.Add(a)
					diff.R -= b.X
					diff.G -= b.Y
					diff.B -= b.Z
				}
			}
			result.Metadata = map[string]string{
				"technique": "difference (subtract_exr)",
				"first":     args[0],
				"second":    args[1],
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
