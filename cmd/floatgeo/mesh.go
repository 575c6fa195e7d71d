package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/floating-geometry/internal/mesh"
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Print the vertex and edge tables",
	RunE:  runMesh,
}

func runMesh(cmd *cobra.Command, args []string) error {
	m := mesh.Icosahedron(cfg.Geometry.Radius)
	if err := m.Validate(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "vertex\tx\ty\tz\t\n")
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t\n", i, v.X, v.Y, v.Z)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d edges, length %.3f, circumradius %.3f\n",
		len(m.Edges), m.EdgeLength(), m.Circumradius())
	for i, e := range m.Edges {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d: %2d - %2d\n", i, e[0], e[1])
	}
	return nil
}
