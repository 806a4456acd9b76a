package main

import (
	"fmt"

	"github.com/brewhouse/beanfall"
	"github.com/spf13/cobra"
)

var genAssetCmd = &cobra.Command{
	Use:   "gen-asset [path]",
	Short: "Write a procedural coffee bean model.",
	Long: "`gen-asset` writes a binary glTF bean with the part and material " +
		"names the scene looks for. The default path is " + beanfall.DefaultAssetPath + ".",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := beanfall.DefaultAssetPath
		if len(args) == 1 {
			path = args[0]
		}
		parts, _ := cmd.Flags().GetStringSlice("parts")
		if err := beanfall.WriteBeanModel(path, parts...); err != nil {
			return err
		}

		// Read it back through the cache to prove it loads.
		model, err := beanfall.NewAssetCache().Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d parts, %d triangles\n", path, len(model.Parts), model.Triangles())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genAssetCmd)
	genAssetCmd.Flags().StringSlice("parts", nil, "part names (default Object_2..Object_5)")
}
