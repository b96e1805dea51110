package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carmesh/carmesh/core"
)

var (
	queryBudget int
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Answer one query and print the result",
	Args:  cobra.MinimumNArgs(1),
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

		env, err := mesh.Handle(cmd.Context(), strings.Join(args, " "), func(q *core.Query) {
			if queryBudget > 0 {
				q.MaxBudget = queryBudget
			}
		})
		if err != nil {
			return err
		}

		if queryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(env)
		}

		fmt.Println(env.Summary)
		for _, entry := range env.Payload {
			fmt.Printf("\n[%s] %s\n", entry.Key, entry.Summary)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVar(&queryBudget, "budget", 0, "maximum price in rupees")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the full envelope as JSON")
	rootCmd.AddCommand(queryCmd)
}
