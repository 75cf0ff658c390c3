/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for maslul.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/maslul/cmd/resolve"
	"bennypowers.dev/maslul/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "maslul",
	Short: "Resolve module requests to filesystem paths",
	Long:  `maslul resolves import and require requests to absolute filesystem paths, following a configurable superset of the Node.js resolution algorithm.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
