package haste

import (
	"github.com/spf13/cobra"

	"github.com/ciechowoj/haste-go/pkg/config"
	"github.com/ciechowoj/haste-go/pkg/imageio"
)

// newTimeCommand mirrors original_source/exr.cpp's print_time: the
// persisted total_time and technique metadata an image was saved with,
// without touching pixel data at all.
func newTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "time <image>",
		Short: "Print an image's recorded render time and technique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.Load(args[0], imageio.BinaryCodec())
			if err != nil {
				return config.NewExitError(2, err)
			}

			cmd.Printf("technique: %s\n", img.Metadata["technique"])
			cmd.Printf("total_time: %s\n", img.Metadata["total_time"])
			cmd.Printf("num_samples: %s\n", img.Metadata["num_samples"])
			return nil
		},
	}
}
