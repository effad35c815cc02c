package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"

	"github.com/spf13/cobra"
)

var passDescriptions = map[postprocess.Kind]string{
	postprocess.KindBayerDither:    "4x4 ordered dither, luminance to black or white",
	postprocess.KindPrewitt:        "Prewitt edge magnitude of the input luminance",
	postprocess.KindPrewittNormals: "Prewitt edge magnitude of the input normals",
	postprocess.KindFilter:         "convolution with the configured kernel",
}

func newPassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the post-process passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range postprocess.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", k, passDescriptions[k])
			}
			return w.Flush()
		},
	}
}
