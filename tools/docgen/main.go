/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/orien/stackpreview/cmd"
	"github.com/orien/stackpreview/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	outputDir := flag.String("out", filepath.Join("docs", "reference", "cli"), "markdown output directory")
	manDir := flag.String("man", "", "also write man pages to this directory")
	flag.Parse()

	root := cmd.RootCommand()
	disableAutoGenTag(root)

	if err := regenerate(*outputDir, ".md"); err != nil {
		log.Fatalf("prepare markdown directory: %v", err)
	}
	if err := doc.GenMarkdownTreeCustom(root, *outputDir, filePrepender, linkHandler); err != nil {
		log.Fatalf("generate markdown documentation: %v", err)
	}

	if *manDir == "" {
		return
	}

	if err := regenerate(*manDir, ".1"); err != nil {
		log.Fatalf("prepare man directory: %v", err)
	}
	header := &doc.GenManHeader{
		Title:   strings.ToUpper(version.Name),
		Section: "1",
		Source:  version.Name + " " + version.Short(),
	}
	if err := doc.GenManTree(root, header, *manDir); err != nil {
		log.Fatalf("generate man pages: %v", err)
	}
}

// regenerate creates dir and removes previously generated files with the given extension
func regenerate(dir, ext string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func disableAutoGenTag(c *cobra.Command) {
	c.DisableAutoGenTag = true
	for _, child := range c.Commands() {
		disableAutoGenTag(child)
	}
}

func filePrepender(filename string) string {
	return ""
}

// linkHandler produces extension-less links for the documentation site
func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(strings.ReplaceAll(base, " ", "-"))
}
