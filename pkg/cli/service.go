// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/display"
	"github.com/aicli/ai/pkg/parser"
)

func serviceCommands() []command.Spec {
	return []command.Spec{
		{
			Name:     "service.resource.create",
			Summary:  "Create an AI resource",
			Usage:    "--subscription SUBSCRIPTION --location LOCATION --name NAME [--group GROUP]",
			Examples: []string{"ai service resource create --subscription SUB --location eastus --name my-hub"},
			Table: table("service.resource.create", []*parser.Descriptor{
				Subscription.Parser(),
				RegionLocation.Parser(),
				ResourceGroupName.Parser(),
				ResourceName.Parser(),
				ResourceDisplayName.Parser(),
				ResourceDescription.Parser(),
			}),
			Run: runCreateResource,
		},
		{
			Name:    "service.resource.list",
			Summary: "List AI resources",
			Usage:   "--subscription SUBSCRIPTION",
			Table:   table("service.resource.list", []*parser.Descriptor{Subscription.Parser()}),
			Run:     runList("Listing AI resources"),
		},
		{
			Name:    "service.project.create",
			Summary: "Create an AI project",
			Usage:   "--subscription SUBSCRIPTION --location LOCATION --resource RESOURCE --name NAME [--group GROUP]",
			Table: table("service.project.create", []*parser.Descriptor{
				Subscription.Parser(),
				RegionLocation.Parser(),
				ResourceGroupName.Parser(),
				ProjectName.Parser(),
				ResourceRef.Parser(),
				ProjectDisplayName.Parser(),
				ProjectDescription.Parser(),
			}),
			Run: runCreateProject,
		},
		{
			Name:    "service.project.list",
			Summary: "List AI projects",
			Usage:   "--subscription SUBSCRIPTION",
			Table:   table("service.project.list", []*parser.Descriptor{Subscription.Parser()}),
			Run:     runList("Listing AI projects"),
		},
	}
}

func runCreateResource(ctx context.Context, inv *command.Invocation) error {
	const action, cmd = "Creating AI resource", "service resource create"
	v := inv.Values
	if _, err := Subscription.Demand(v, action, cmd); err != nil {
		return err
	}
	if _, err := RegionLocation.Demand(v, action, cmd); err != nil {
		return err
	}
	name, err := ResourceName.Demand(v, action, cmd)
	if err != nil {
		return err
	}
	ResourceGroupName.Set(v, ResourceGroupName.GetOrDefault(v, name+"-rg"))
	ResourceDisplayName.Set(v, ResourceDisplayName.GetOrDefault(v, name))
	ResourceDescription.Set(v, ResourceDescription.GetOrDefault(v, name))
	return provision(inv, action, name)
}

func runCreateProject(ctx context.Context, inv *command.Invocation) error {
	const action, cmd = "Creating AI project", "service project create"
	v := inv.Values
	if _, err := Subscription.Demand(v, action, cmd); err != nil {
		return err
	}
	if _, err := RegionLocation.Demand(v, action, cmd); err != nil {
		return err
	}
	if _, err := ResourceRef.Demand(v, action, cmd); err != nil {
		return err
	}
	name, err := ProjectName.Demand(v, action, cmd)
	if err != nil {
		return err
	}
	ResourceGroupName.Set(v, ResourceGroupName.GetOrDefault(v, name+"-rg"))
	ProjectDisplayName.Set(v, ProjectDisplayName.GetOrDefault(v, name))
	ProjectDescription.Set(v, ProjectDescription.GetOrDefault(v, name))
	return provision(inv, action, name)
}

func runList(action string) command.Handler {
	return func(ctx context.Context, inv *command.Invocation) error {
		sub, err := Subscription.Demand(inv.Values, action, display.Words(inv.Name))
		if err != nil {
			return err
		}
		return provision(inv, action, sub)
	}
}

func provision(inv *command.Invocation, action, target string) error {
	inv.Log.Info(action, "target", target,
		"group", ResourceGroupName.GetOrDefault(inv.Values, ""),
		"location", RegionLocation.GetOrDefault(inv.Values, ""))
	if !quiet(inv.Values) {
		fmt.Fprintf(inv.Stdout, "%s '%s'\n", action, target)
	}
	return &NotLinkedError{Command: inv.Name, What: "Azure provisioning"}
}
