/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for maslul.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/maslul/config"
	maslulfs "bennypowers.dev/maslul/fs"
	"bennypowers.dev/maslul/internal/logger"
	"bennypowers.dev/maslul/resolver"
)

// Cmd is the resolve cobra command. It resolves one request string to
// an absolute path and prints it.
var Cmd = &cobra.Command{
	Use:   "resolve <request>",
	Short: "Resolve a module request to a filesystem path",
	Long: `Resolve a module request (./relative, /absolute, or a bare package
name) to an absolute filesystem path, following the node-style
resolution algorithm configured in .config/maslul.{yaml,yml,json}.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("from", "C", ".", "Directory to resolve from")
	Cmd.Flags().StringSlice("extensions", nil, "Extensions tried for files")
	Cmd.Flags().StringSlice("conditions", nil, "Active condition names for exports/imports")
	Cmd.Flags().StringSlice("mainFields", nil, "Description file fields holding the main entry")
	Cmd.Flags().StringSlice("modules", nil, "Module directory names or absolute roots")
	Cmd.Flags().Bool("symlinks", true, "Canonicalize symlinks in the result")
	Cmd.Flags().Bool("enforce-extension", false, "Reject extensionless terminal files")
	Cmd.Flags().Bool("describe", false, "Print the attempt log")
	Cmd.Flags().Bool("json", false, "Print the result as JSON")

	for _, flag := range []string{"extensions", "conditions", "mainFields", "modules", "symlinks", "enforce-extension"} {
		if err := viper.BindPFlag(flag, Cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	request := args[0]

	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	from, err = homedir.Expand(from)
	if err != nil {
		return fmt.Errorf("error expanding directory: %w", err)
	}
	if !filepath.IsAbs(from) {
		if wd, err := os.Getwd(); err == nil {
			from = filepath.Join(wd, from)
		}
	}

	osfs := maslulfs.NewOSFileSystem()
	cfg := config.LoadOrDefault(osfs, from)
	filesystem := maslulfs.NewCached(osfs, time.Duration(cfg.CacheSeconds)*time.Second)

	opts, err := cfg.ToOptions(filesystem)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// CLI flags take precedence over the config file.
	if viper.IsSet("extensions") && len(viper.GetStringSlice("extensions")) > 0 {
		opts.Extensions = viper.GetStringSlice("extensions")
	}
	if viper.IsSet("conditions") && len(viper.GetStringSlice("conditions")) > 0 {
		opts.ConditionNames = viper.GetStringSlice("conditions")
	}
	if viper.IsSet("mainFields") && len(viper.GetStringSlice("mainFields")) > 0 {
		opts.MainFields = viper.GetStringSlice("mainFields")
	}
	if viper.IsSet("modules") && len(viper.GetStringSlice("modules")) > 0 {
		opts.Modules = viper.GetStringSlice("modules")
	}
	if cmd.Flags().Changed("symlinks") {
		symlinks := viper.GetBool("symlinks")
		opts.Symlinks = &symlinks
	}
	if cmd.Flags().Changed("enforce-extension") {
		opts.EnforceExtension = viper.GetBool("enforce-extension")
	}

	r, err := resolver.New(opts)
	if err != nil {
		return err
	}

	rc := resolver.NewResolveContext()
	describe, _ := cmd.Flags().GetBool("describe")
	if describe {
		rc.Log = func(message string) {
			logger.Info("%s", message)
		}
	}

	result, err := r.Resolve(nil, from, request, rc)
	if err != nil {
		var notFound *resolver.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%s", notFound.Error())
		}
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		out, err := json.MarshalIndent(map[string]any{
			"path":     result.Path,
			"query":    result.Query,
			"fragment": result.Fragment,
			"ignored":  result.Ignored,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if result.Ignored {
		fmt.Println("(ignored)")
		return nil
	}
	fmt.Println(result.Path + result.Query + result.Fragment)
	return nil
}
