// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env maps named values onto the environment variables the Azure
// SDKs and the generated samples read.
package env

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/display"
	"github.com/aicli/ai/pkg/fileutil"
	"github.com/aicli/ai/pkg/values"
)

// Environment holds one value per variable. The env tag names the
// variable; the key tag lists the store keys it is read from, first
// non-empty wins. Fields without a key tag are only passed through from
// the process environment.
type Environment struct {
	SubscriptionID string `env:"AZURE_SUBSCRIPTION_ID" key:"service.subscription"`
	ResourceGroup  string `env:"AZURE_RESOURCE_GROUP" key:"service.resource.group.name"`
	ResourceName   string `env:"AZURE_AI_RESOURCE_NAME" key:"service.resource.name"`
	ProjectName    string `env:"AZURE_AI_PROJECT_NAME" key:"service.project.name"`

	OpenAIKey           string `env:"AZURE_OPENAI_KEY" key:"chat.key"`
	OpenAIAPIKey        string `env:"AZURE_OPENAI_API_KEY" key:"chat.key"`
	OpenAIEndpoint      string `env:"AZURE_OPENAI_ENDPOINT" key:"chat.endpoint"`
	ChatDeployment      string `env:"AZURE_OPENAI_CHAT_DEPLOYMENT" key:"chat.model.deployment.name"`
	EvalDeployment      string `env:"AZURE_OPENAI_EVALUATION_DEPLOYMENT" key:"chat.evaluation.model.deployment.name,chat.model.deployment.name"`
	EmbeddingDeployment string `env:"AZURE_OPENAI_EMBEDDING_DEPLOYMENT" key:"search.embedding.model.deployment.name"`
	ChatModel           string `env:"AZURE_OPENAI_CHAT_MODEL" key:"chat.model.name"`
	EvalModel           string `env:"AZURE_OPENAI_EVALUATION_MODEL" key:"chat.evaluation.model.name,chat.model.name"`
	EmbeddingModel      string `env:"AZURE_OPENAI_EMBEDDING_MODEL" key:"search.embedding.model.name"`

	SearchEndpoint  string `env:"AZURE_AI_SEARCH_ENDPOINT" key:"search.endpoint"`
	SearchIndexName string `env:"AZURE_AI_SEARCH_INDEX_NAME" key:"search.index.name"`
	SearchKey       string `env:"AZURE_AI_SEARCH_KEY" key:"search.key"`

	SpeechEndpoint string `env:"AZURE_AI_SPEECH_ENDPOINT" key:"speech.endpoint"`
	SpeechKey      string `env:"AZURE_AI_SPEECH_KEY" key:"speech.key"`
	SpeechRegion   string `env:"AZURE_AI_SPEECH_REGION" key:"speech.region"`

	AssistantID string `env:"ASSISTANT_ID" key:"assistant.id"`

	// Older search SDKs read these names.
	CognitiveSearchTarget string `env:"AZURE_COGNITIVE_SEARCH_TARGET" key:"search.endpoint"`
	CognitiveSearchKey    string `env:"AZURE_COGNITIVE_SEARCH_KEY" key:"search.key"`

	ClientID     string `env:"AZURE_CLIENT_ID"`
	TenantID     string `env:"AZURE_TENANT_ID"`
	SystemPrompt string `env:"AZURE_OPENAI_SYSTEM_PROMPT"`
	OpenAIKeyAlt string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL_NAME"`
	OpenAIOrgID  string `env:"OPENAI_ORG_ID"`
}

// FromValues builds an Environment from store. A variable already set in
// the process environment (as seen through getenv) wins over the store.
// A nil getenv means os.Getenv.
func FromValues(store *values.Store, getenv func(string) string) *Environment {
	if getenv == nil {
		getenv = os.Getenv
	}
	e := &Environment{}
	re := reflect.ValueOf(e).Elem()
	rt := re.Type()
	for i := 0; i < re.NumField(); i++ {
		f := rt.Field(i)
		name := f.Tag.Get("env")
		if name == "" {
			continue
		}
		if v := getenv(name); v != "" {
			re.Field(i).SetString(v)
			continue
		}
		for _, key := range strings.Split(f.Tag.Get("key"), ",") {
			if key == "" {
				continue
			}
			if v := store.GetOrDefault(key, ""); v != "" {
				re.Field(i).SetString(v)
				break
			}
		}
	}
	return e
}

// Pairs returns the non-empty variables sorted by name.
func Pairs(e any) []values.Pair {
	re := reflect.ValueOf(e)
	if re.Kind() == reflect.Ptr {
		re = re.Elem()
	}
	ret := re.Type()
	var out []values.Pair
	for i := 0; i < re.NumField(); i++ {
		field := re.Field(i)
		tag := ret.Field(i).Tag.Get("env")
		if tag == "" || field.IsZero() {
			continue
		}
		out = append(out, values.Pair{Key: tag, Value: fmt.Sprint(field.Interface())})
	}
	slices.SortFunc(out, func(a, b values.Pair) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// Write writes an environment file with the given name and content.
func Write(name string, e any) error {
	err := fileutil.WriteFile(name, 0o600, func(w io.Writer) error {
		return marshalEnv(w, e)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func marshalEnv(o io.Writer, e any) error {
	for _, p := range Pairs(e) {
		if _, err := fmt.Fprintf(o, "%s=%s\n", p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Print lists the variables with secrets masked.
func Print(w io.Writer, e any) {
	for _, p := range Pairs(e) {
		fmt.Fprintf(w, "  %s = %s\n", p.Key, display.Mask(p.Key, p.Value))
	}
}

// Exports writes one POSIX shell export line per variable.
func Exports(w io.Writer, e any) {
	for _, p := range Pairs(e) {
		fmt.Fprintf(w, "export %s=%s\n", p.Key, shellQuote(p.Value))
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
