// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"strings"

	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/values"
)

// Token is a named value shared by several commands: the option that
// sets it, where it is stored, and how to ask the user for it.
type Token struct {
	Option  string // "--group"
	Key     string // "service.resource.group.name"
	Pattern string // requirement pattern for Key
	Display string // "group"
	Example string // "GROUP"
	// Short is the name accepted by "ai config --set", if any.
	Short string
}

var (
	Subscription = Token{
		Option: "--subscription", Key: "service.subscription", Pattern: "01",
		Display: "subscription", Example: "SUBSCRIPTION", Short: "subscription",
	}
	ResourceGroupName = Token{
		Option: "--group", Key: "service.resource.group.name", Pattern: "0010",
		Display: "group", Example: "GROUP", Short: "group",
	}
	RegionLocation = Token{
		Option: "--location", Key: "service.region.location", Pattern: "001",
		Display: "location", Example: "LOCATION", Short: "location",
	}
	ResourceName = Token{
		Option: "--name", Key: "service.resource.name", Pattern: "001",
		Display: "name", Example: "NAME", Short: "resource",
	}
	// ResourceRef names the resource from commands where --name names
	// something else.
	ResourceRef = ResourceName.As("--resource", "011")

	ResourceDisplayName = Token{
		Option: "--display-name", Key: "service.resource.display.name", Pattern: "0011",
		Display: "display name", Example: "NAME",
	}
	ResourceDescription = Token{
		Option: "--description", Key: "service.resource.description", Pattern: "001",
		Display: "description", Example: "DESCRIPTION",
	}
	ProjectName = Token{
		Option: "--name", Key: "service.project.name", Pattern: "001",
		Display: "name", Example: "NAME", Short: "project",
	}
	ProjectDisplayName = Token{
		Option: "--display-name", Key: "service.project.display.name", Pattern: "0011",
		Display: "display name", Example: "NAME",
	}
	ProjectDescription = Token{
		Option: "--description", Key: "service.project.description", Pattern: "001",
		Display: "description", Example: "DESCRIPTION",
	}
	ProjectConnectionName = Token{
		Option: "--connection-name", Key: "service.project.connection.name", Pattern: "0011",
		Display: "connection name", Example: "NAME",
	}
	ProjectConnectionEndpoint = Token{
		Option: "--connection-endpoint", Key: "service.project.connection.endpoint", Pattern: "0011",
		Display: "connection endpoint", Example: "ENDPOINT",
	}
	ChatEndpoint = Token{
		Option: "--endpoint", Key: "chat.endpoint", Pattern: "01",
		Display: "chat endpoint", Example: "ENDPOINT", Short: "chat.endpoint",
	}
	ChatKey = Token{
		Option: "--key", Key: "chat.key", Pattern: "01",
		Display: "chat key", Example: "KEY", Short: "chat.key",
	}
	ChatFunction = Token{
		Option: "--chat-function", Key: "chat.function", Pattern: "01",
		Display: "chat function", Example: "MODULE:FUNCTION",
	}
	ChatModelName = Token{
		Option: "--model", Key: "chat.model.name", Pattern: "010",
		Display: "chat model name", Example: "NAME", Short: "chat.model",
	}
	ChatModelDeploymentName = Token{
		Option: "--deployment", Key: "chat.model.deployment.name", Pattern: "0010",
		Display: "chat deployment name", Example: "NAME", Short: "chat.deployment",
	}
	SearchEndpoint = Token{
		Option: "--search-endpoint", Key: "search.endpoint", Pattern: "11",
		Display: "search endpoint", Example: "ENDPOINT", Short: "search.endpoint",
	}
	SearchKey = Token{
		Option: "--search-key", Key: "search.key", Pattern: "11",
		Display: "search key", Example: "KEY", Short: "search.key",
	}
	SearchIndexName = Token{
		Option: "--index", Key: "search.index.name", Pattern: "010",
		Display: "search index name", Example: "NAME", Short: "search.index",
	}
	SearchEmbeddingModelName = Token{
		Option: "--search-embedding-model", Key: "search.embedding.model.name", Pattern: "0111",
		Display: "embedding model name", Example: "NAME",
	}
	SearchEmbeddingDeploymentName = Token{
		Option: "--search-embedding-deployment", Key: "search.embedding.model.deployment.name", Pattern: "01010",
		Display: "embedding deployment name", Example: "NAME",
	}
)

// Tokens lists every named token, in the order config --set resolves
// short names.
var Tokens = []Token{
	Subscription, ResourceGroupName, RegionLocation,
	ResourceName, ResourceDisplayName, ResourceDescription,
	ProjectName, ProjectDisplayName, ProjectDescription,
	ProjectConnectionName, ProjectConnectionEndpoint,
	ChatEndpoint, ChatKey, ChatFunction, ChatModelName, ChatModelDeploymentName,
	SearchEndpoint, SearchKey, SearchIndexName,
	SearchEmbeddingModelName, SearchEmbeddingDeploymentName,
}

// ExpandShort maps a short name such as "group" to its full key. Names
// that are not short names are returned unchanged.
func ExpandShort(name string) string {
	for _, t := range Tokens {
		if t.Short != "" && strings.EqualFold(t.Short, name) {
			return t.Key
		}
	}
	return name
}

// As returns a copy of t spelled with another option and pattern.
func (t Token) As(option, pattern string) Token {
	t.Option, t.Pattern = option, pattern
	return t
}

// Usage is the option as it would be typed, e.g. "--group GROUP".
func (t Token) Usage() string {
	return t.Option + " " + t.Example
}

// Parser declares the descriptor that binds the token.
func (t Token) Parser(opts ...parser.Option) *parser.Descriptor {
	base := []parser.Option{parser.Display(t.Display), parser.Example(t.Usage())}
	return parser.New(t.Option, t.Key, t.Pattern, "1", append(base, opts...)...)
}

// Demand returns the token's value or an error telling the user how to
// supply it.
func (t Token) Demand(v *values.Store, action, command string) (string, error) {
	return v.Demand(t.Key, t.Display, t.Usage(), action, command)
}

func (t Token) GetOrDefault(v *values.Store, def string) string {
	return v.GetOrDefault(t.Key, def)
}

func (t Token) Set(v *values.Store, value string) {
	v.Reset(t.Key, value)
}
