package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the registered agents and their capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := buildLogger(cfg)
		mesh, closer := buildMesh(cfg, logger)
		if closer != nil {
			defer closer.Close()
		}

		for _, cap := range mesh.Capabilities() {
			fmt.Printf("%-10s %s\n", cap.Role, cap.Description)
			fmt.Printf("%-10s capabilities: %s\n", "", strings.Join(cap.Capabilities, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
