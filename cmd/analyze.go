package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/infra/logger"
	"github.com/kerguelen/boatgrid/pkg/export"
	"github.com/kerguelen/boatgrid/project"
)

var (
	projectPath  string
	exportFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a project file and print the report",
	RunE:  analyzeProject,
}

func init() {
	analyzeCmd.Flags().StringVarP(&projectPath, "file", "f", "project.json", "project file")
	analyzeCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeProject(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	eng, err := engine.New(proj.Settings, engine.WithLogger(logger.New("analyze")))
	if err != nil {
		return err
	}
	res := eng.Analyze(proj.Nodes, proj.Connections)

	switch exportFormat {
	case "json":
		return export.WriteJSON(os.Stdout, res)
	case "csv":
		return export.WriteCableCSV(os.Stdout, res.Cables)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
