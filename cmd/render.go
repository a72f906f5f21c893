package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/glitch"
	"github.com/Zachkp/portfolio/internal/shader"
)

var (
	renderOut    string
	renderWidth  int
	renderHeight int
	renderSeed   uint64
	renderTime   float64
	renderTicks  int
)

var renderCmd = &cobra.Command{
	Use:       "render glitch|voronoi|flow",
	Short:     "Render a playground visual to a PNG file",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: renderKinds(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderWidth <= 0 || renderHeight <= 0 {
			return fmt.Errorf("width and height must be positive")
		}
		out := renderOut
		if out == "" {
			out = args[0] + ".png"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		if args[0] == "glitch" {
			grid := glitch.NewGrid(renderWidth, renderHeight, glitch.Options{Smooth: true, Seed: renderSeed})
			for range renderTicks {
				grid.Tick()
				grid.Step()
			}
			err = glitch.WritePNG(f, grid)
		} else {
			err = shader.WritePNG(f, shader.Kind(args[0]), renderWidth, renderHeight, renderTime, uint32(renderSeed))
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}
		fmt.Printf("wrote %s (%dx%d)\n", out, renderWidth, renderHeight)
		return nil
	},
}

func renderKinds() []string {
	kinds := []string{"glitch"}
	for _, k := range shader.Kinds() {
		kinds = append(kinds, string(k))
	}
	return kinds
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file (default <kind>.png)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1280, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 720, "image height in pixels")
	renderCmd.Flags().Uint64Var(&renderSeed, "seed", 1, "random seed")
	renderCmd.Flags().Float64Var(&renderTime, "t", 0, "animation time for shader patterns")
	renderCmd.Flags().IntVar(&renderTicks, "ticks", 30, "glitch updates to apply before rendering")
	rootCmd.AddCommand(renderCmd)
}
