package commands

import (
	"fmt"
	"text/tabwriter"

	v1 "github.com/falcomnl/api-controller/internal/api/rest/v1"
	"github.com/falcomnl/api-controller/pkg/controller"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// InitRoutesCommands registers the routes command.
func InitRoutesCommands(rootCmd *cobra.Command) error {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the resource routes",
		RunE:  runRoutes,
	}
	cmd.Flags().String("base-path", "/api/v1", "Prefix for every route")
	rootCmd.AddCommand(cmd)
	return nil
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	basePath, err := cmd.Flags().GetString("base-path")
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	routes, err := v1.SetupRoutes(gin.New(), basePath, v1.Dependencies{})
	if err != nil {
		return err
	}
	return printRoutes(cmd, routes)
}

func printRoutes(cmd *cobra.Command, routes []controller.Route) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tOPERATION")
	for _, r := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Operation)
	}
	return w.Flush()
}
