package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/project"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a project file; exits non-zero when the circuit has errors",
	RunE:  validateProject,
}

func init() {
	validateCmd.Flags().StringVarP(&projectPath, "file", "f", "project.json", "project file")
	rootCmd.AddCommand(validateCmd)
}

func validateProject(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	eng, err := engine.New(proj.Settings)
	if err != nil {
		return err
	}
	res := eng.Analyze(proj.Nodes, proj.Connections)

	for _, f := range res.Validation.Errors {
		fmt.Printf("error: %s: %s\n", f.Type, f.Message)
	}
	for _, f := range res.Validation.Warnings {
		fmt.Printf("warning: %s: %s\n", f.Type, f.Message)
	}
	if !res.Validation.IsValid {
		return fmt.Errorf("circuit is invalid: %d error(s)", len(res.Validation.Errors))
	}
	fmt.Println("circuit is valid")
	return nil
}
