// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/config"
	"github.com/aicli/ai/pkg/env"
	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/values"
)

const keyInteractive = "init.service.interactive"

func initFlags() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.TrueFalse("--interactive", keyInteractive, "001"),
		parser.TrueFalse("--yes", "init.service.cognitiveservices.terms.agree", "00001"),
	}
}

func initOpenAI() []*parser.Descriptor {
	return []*parser.Descriptor{
		ChatEndpoint.Parser(),
		ChatKey.Parser(),
		ChatModelName.Parser(),
		ChatModelDeploymentName.Parser(),
		ChatFunction.Parser(),
	}
}

func initSearch() []*parser.Descriptor {
	return []*parser.Descriptor{
		SearchEndpoint.Parser(),
		SearchKey.Parser(),
		SearchIndexName.Parser(),
		SearchEmbeddingModelName.Parser(),
		SearchEmbeddingDeploymentName.Parser(),
	}
}

func initResource() []*parser.Descriptor {
	return []*parser.Descriptor{
		Subscription.Parser(),
		ResourceGroupName.Parser(),
		RegionLocation.Parser(),
		ResourceRef.Parser(),
	}
}

func initProject() []*parser.Descriptor {
	return []*parser.Descriptor{
		ProjectName.Parser(),
		ProjectConnectionName.Parser(),
		ProjectConnectionEndpoint.Parser(),
	}
}

func (c *commands) initCommands() []command.Spec {
	all := [][]*parser.Descriptor{initFlags(), initResource(), initOpenAI(), initSearch(), initProject()}
	return []command.Spec{
		{
			Name:    "init",
			Summary: "Initialize AI services for this directory",
			Table:   table("init", all...),
			Run:     c.runInit(nil),
		},
		{
			Name:     "init.openai",
			Summary:  "Initialize the Azure OpenAI connection",
			Usage:    "[--interactive false --endpoint ENDPOINT --key KEY]",
			Examples: []string{"ai init openai --interactive false --endpoint https://example.openai.azure.com --key KEY"},
			Table:    table("init.openai", initFlags(), initResource(), initOpenAI()),
			Run:      c.runInit([]Token{ChatEndpoint, ChatKey}),
		},
		{
			Name:    "init.search",
			Summary: "Initialize the Azure OpenAI and AI Search connections",
			Usage:   "[--interactive false --endpoint ENDPOINT --key KEY --search-endpoint ENDPOINT --search-key KEY]",
			Table:   table("init.search", initFlags(), initResource(), initOpenAI(), initSearch()),
			Run:     c.runInit([]Token{ChatEndpoint, ChatKey, SearchEndpoint, SearchKey}),
		},
		{
			Name:    "init.resource",
			Summary: "Initialize the AI resource",
			Usage:   "[--interactive false --subscription SUBSCRIPTION --resource NAME]",
			Table:   table("init.resource", initFlags(), initResource()),
			Run:     c.runInit([]Token{Subscription, ResourceRef}),
		},
		{
			Name:    "init.project",
			Summary: "Initialize the AI project and its connections",
			Usage:   "[--interactive false --subscription SUBSCRIPTION --resource NAME --name PROJECT]",
			Table:   table("init.project", all...),
			Run:     c.runInit([]Token{Subscription, ResourceRef, ProjectName}),
		},
	}
}

// runInit returns the handler for an init command. Interactive setup
// needs the console picker, which is not linked. Non-interactive setup
// demands the given tokens and saves every value the command's table
// bound into the directory config.
func (c *commands) runInit(demand []Token) command.Handler {
	return func(ctx context.Context, inv *command.Invocation) error {
		v := inv.Values
		if v.Bool(keyInteractive, true) {
			return &NotLinkedError{Command: inv.Name, What: "interactive setup; pass --interactive false"}
		}
		if demand == nil {
			return fmt.Errorf("ERROR: 'ai init' is interactive only.\n\n  TRY:   ai init openai --interactive false\n         ai init search --interactive false")
		}
		action := "Initializing " + strings.TrimPrefix(inv.Name, "init.")
		for _, t := range demand {
			if _, err := t.Demand(v, action, strings.ReplaceAll(inv.Name, ".", " ")); err != nil {
				return err
			}
		}

		spec, _ := c.reg.Lookup(inv.Name)
		loc, err := config.LoadOrCreate(c.workDir())
		if err != nil {
			return err
		}
		n := 0
		for _, key := range tableKeys(spec.Table) {
			if !persisted(key) {
				continue
			}
			if val := v.GetOrDefault(key, ""); val != "" {
				loc.Config.Set(key, val)
				n++
			}
		}
		if err := config.Save(loc); err != nil {
			return err
		}
		inv.Log.Info("saved config", "path", loc.Path, "values", n)
		if quiet(v) {
			return nil
		}
		fmt.Fprintf(inv.Stdout, "Saved %d values to %s\n\n", n, loc.Path)
		env.Print(inv.Stdout, env.FromValues(v, c.opts.Getenv))
		return nil
	}
}

// persisted reports whether init saves key: command flags and per-run
// switches stay out of the config.
func persisted(key string) bool {
	for _, p := range []string{"x.", "display.", "init."} {
		if strings.HasPrefix(key, p) {
			return false
		}
	}
	return !values.Reserved(key)
}
