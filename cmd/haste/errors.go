package haste

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/imageio"
	"github.com/ciechowoj/haste-go/pkg/stats"
)

// newErrorsCommand mirrors original_source/exr.cpp's compute_errors: the
// RMS and mean-absolute error between two images, accompanied by each
// image's own technique/total_time metadata.
func newErrorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "errors <image> <reference>",
		Short: "Print RMS and absolute error between two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.Load(args[0], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}
			ref, err := imageio.Load(args[1], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}

			if img.XWindow != ref.XWindow || img.YWindow != ref.YWindow {
				return config.NewExitError(1, fmt.Errorf(
					"haste: image windows do not match (%dx%d vs %dx%d)",
					img.XWindow, img.YWindow, ref.XWindow, ref.YWindow))
			}

			rms, abs := stats.AggregateError(img.Flatten(), ref.Flatten())

			cmd.Printf("%s: technique=%s total_time=%s\n", args[0], img.Metadata["technique"], img.Metadata["total_time"])
			cmd.Printf("%s: technique=%s total_time=%s\n", args[1], ref.Metadata["technique"], ref.Metadata["total_time"])
			cmd.Printf("rms=%f abs=%f\n", rms, abs)
			return nil
		},
	}
}
