package haste

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/imageio"
)

// newMergeCommand combines two progressive accumulators covering the same
// pixel grid by summing their (r,g,b,n) state rather than averaging already-
// averaged colors, so a merged image's later Color() call still divides by
// the correct total sample count (Pixel.Merge's doc comment, grounded on
// original_source/Application.cpp's merge subcommand).
func newMergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <first> <second>",
		Short: "Merge two progressive render accumulators by summing samples",
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
					merged := result.AbsAt(x, y)
					merged.Merge(*first.RelAt(x, y))
					merged.Merge(*second.RelAt(x, y))
				}
			}
			result.Metadata = mergeMetadata(first.Metadata, second.Metadata)

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

// mergeMetadata keeps the first image's metadata, falling back to the
// second's for any key the first doesn't set.
func mergeMetadata(first, second map[string]string) map[string]string {
	out := make(map[string]string, len(first)+len(second))
	for k, v := range second {
		out[k] = v
	}
	for k, v := range first {
		out[k] = v
	}
	return out
}
