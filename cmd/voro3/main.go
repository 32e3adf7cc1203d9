// Command voro3 evaluates Voronoi scene scripts and prints the
// resulting cell records or relaxed site positions as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/voro3/pkg/script"
	"github.com/chazu/voro3/pkg/voronoi"
)

var relaxSteps int

var rootCmd = &cobra.Command{
	Use:   "voro3",
	Short: "Voronoi tessellation queries over scripted scenes",
	Long: `voro3 evaluates a small Lisp scene dialect describing a bounding box,
labeled sites, and boundary walls, then answers Voronoi cell queries
against the scene.

Example scene:

  (box :min (vec3 0 0 0) :max (vec3 10 10 10))
  (site 0 2 2 2)
  (site 1 8 8 8)
  (wall-sphere :center (vec3 5 5 5) :radius 6)`,
	SilenceUsage: true,
}

var cellsCmd = &cobra.Command{
	Use:   "cells <scene-file>",
	Short: "Compute every site's cell and print the records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := evalScene(args[0])
		if err != nil {
			return err
		}
		return emitJSON(ctx.AllCells())
	},
}

var relaxCmd = &cobra.Command{
	Use:   "relax <scene-file>",
	Short: "Run Lloyd relaxation steps and print the final positions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := evalScene(args[0])
		if err != nil {
			return err
		}
		var pts []voronoi.Point3
		for i := 0; i < relaxSteps; i++ {
			pts = ctx.Relax()
			for id, p := range pts {
				ctx.AddPoint(id, p)
			}
		}
		return emitJSON(pts)
	},
}

// evalScene reads and evaluates a scene script into a query context.
func evalScene(path string) (*voronoi.Context3D, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	eng := script.NewEngine()
	ctx, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("evaluate scene: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return nil, fmt.Errorf("scene evaluation failed with %d error(s)", len(evalErrs))
	}
	return ctx, nil
}

// emitJSON writes v to stdout as indented JSON.
func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	relaxCmd.Flags().IntVarP(&relaxSteps, "steps", "n", 1, "number of relaxation steps")
	rootCmd.AddCommand(cellsCmd, relaxCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
