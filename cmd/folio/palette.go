package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/folio/internal/scene"
)

func newPaletteCmd(root *rootFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "palette [section]",
		Short: "Print the resolved background palettes",
		Long: `Palette prints the gradient stops and particle colours of each section
for the configured colour mode (override with --mode, or --all for both).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), root, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			sections := scene.Sections()
			if len(args) == 1 {
				section, err := scene.ParseSection(args[0])
				if err != nil {
					return err
				}
				sections = []scene.Section{section}
			}
			modes := []scene.ColorMode{app.Config.Mode()}
			if all {
				modes = []scene.ColorMode{scene.ModeDark, scene.ModeLight}
			}

			palettes := make([]scene.Palette, 0, len(sections)*len(modes))
			for _, mode := range modes {
				for _, section := range sections {
					palettes = append(palettes, scene.Resolve(section, mode))
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(palettes); err != nil {
				return fmt.Errorf("encode palettes: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Print both colour modes")
	return cmd
}
