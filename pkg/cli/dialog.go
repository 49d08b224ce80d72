// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/parser"
)

const (
	resultText        = "output.all.recognizer.recognized.result.text"
	resultITNText     = "output.all.recognizer.recognized.result.itn.text"
	resultLexicalText = "output.all.recognizer.recognized.result.lexical.text"
)

func dialogCommands() []command.Spec {
	return []command.Spec{
		{
			Name:           "dialog.bot",
			Summary:        "Talk to a bot through the dialog service",
			Usage:          "--botId ID [--url FILE | --microphone] [--once | --continuous]",
			Examples:       []string{"ai dialog bot --botId my-bot --url hello.wav --once"},
			ValuesRequired: true,
			Table:          dialogTable("dialog.bot", parser.New("--botId", "dialog.bot.id", "001", "1")),
			Run:            runDialog,
		},
		{
			Name:           "dialog.customcommands",
			Summary:        "Run a Custom Commands application",
			Usage:          "--appId ID [--url FILE | --microphone] [--once | --continuous]",
			Examples:       []string{"ai dialog customcommands --appId 00000000-0000-0000-0000-000000000000 --continuous"},
			ValuesRequired: true,
			Table: dialogTable("dialog.customcommands",
				parser.New("--appId", "dialog.customcommands.appid", "001", "1")),
			Run: runDialog,
		},
	}
}

// dialogTable is shared by the dialog commands; they differ only in how
// the dialog application is identified.
func dialogTable(name string, app *parser.Descriptor) *parser.Table {
	descs := []*parser.Descriptor{
		parser.New("", "x.command.expand.file.name", "11111", "1", parser.Hidden()),
	}
	descs = append(descs, speechConnection()...)
	descs = append(descs,
		parser.TrueFalse("", "service.config.content.logging.enabled", "00011;00110"),
		parser.New("--embedded", "embedded.config.embedded", "001", "1;0", parser.OneOf("true", "false"), parser.Default("true")),
		app,
		parser.New("--languages", "source.language.config", "100;010", "1"),
		parser.New("--profanity", "service.output.config.profanity.option", "00010", "1", parser.OneOf("masked", "raw", "removed")),
		parser.TrueFalse("", "service.output.config.word.level.timing", "000101"),
		parser.New("--property", "config.string.property", "001", "2;1"),
		parser.New("--properties", "config.string.properties", "001", "+"),
	)
	descs = append(descs, audioInput()...)
	descs = append(descs, audioOutput()...)
	descs = append(descs,
		parser.New("", "luis.key", "11", "1"),
		parser.New("", "luis.region", "11", "1"),
		parser.New("", "luis.appid", "11", "1"),
		parser.New("", "luis.intent", "11", "2;1"),
		parser.New("--allintents", "luis.allintents", "01", "1;0", parser.OneOf("true", "false"), parser.Default("true")),
	)
	descs = append(descs, recognitionModes()...)
	descs = append(descs, transcriptChecks()...)
	if strings.HasSuffix(name, ".customcommands") {
		descs = append(descs, parser.New("", "check.jmes", "10", "1"))
	}
	descs = append(descs,
		parser.TrueFalse("", "output.overwrite", "11"),
		parser.TrueFalse("", "output.audio.input.id", "1101;1011"),
	)
	return table(name, diagnostics(), descs)
}

func audioInput() []*parser.Descriptor {
	file := parser.Implies("audio.input.type", "file")
	mic := parser.Implies("audio.input.type", "microphone")
	return []*parser.Descriptor{
		parser.New("", "audio.input.id.url", "0011", "1"),
		parser.New("--id", "audio.input.id", "001", "1"),
		parser.New("--url", "audio.input.file", "001", "1", file),
		parser.New("--urls", "audio.input.files", "001", "+", parser.Implies("x.command.expand.file.name", "audio.input.file")),
		parser.New("--format", "audio.input.format", "001", "1", parser.OneOf("any", "mp3", "ogg", "flac", "alaw", "opus"), file),
		parser.New("", "audio.input.microphone.geometry", "0001", "1", mic),
		parser.New("", "audio.input.microphone.device", "0010", "1;0", mic),
		parser.New("", "audio.input.type", "011", "1", parser.OneOf("file", "files", "microphone")),
		parser.New("", "audio.input.file", "010", "1", file),
		parser.New("--rtf", "audio.input.real.time.factor", "00110", "1"),
		parser.New("--fast", "audio.input.fast.lane", "0010", "1"),
		parser.New("--phrases", "grammar.phrase.list", "011", "+"),
		parser.New("", "grammar.recognition.factor.phrase", "0110", "1"),
	}
}

func audioOutput() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.New("--speakers", "audio.output.speaker.device", "0010", "0", parser.Implies("audio.output.type", "speaker")),
		parser.New("", "audio.output.file", "110", "1", parser.Implies("audio.output.type", "file")),
		parser.New("", "audio.output.type", "111", "1", parser.OneOf("file", "speaker")),
	}
}

func recognitionModes() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.New("", "recognize.keyword.file", "010", "1", parser.Implies("recognize.method", "keyword")),
		parser.New("", "recognize.timeout", "01", "1"),
		parser.New("--recognize", "recognize.method", "10", "1", parser.OneOf("keyword", "continuous", "once")),
		parser.New("--continuous", "recognize.method", "10", "0", parser.Default("continuous")),
		parser.New("--once", "recognize.method", "10", "0", parser.Default("once")),
		parser.New("--ini", "ini.file", "10", "1"),
		parser.New("", "wer.sr.url", "101", "1"),
		parser.New("", "transcript.lexical.text", "110", "1"),
		parser.New("", "transcript.itn.text", "110", "1"),
		parser.New("", "transcript.text", "10", "1"),
	}
}

// transcriptChecks declares the check.sr.transcript family. Each check
// also turns on the recognizer output it inspects.
func transcriptChecks() []*parser.Descriptor {
	check := func(key, pattern, count, output string) *parser.Descriptor {
		return parser.New("", key, pattern, count, parser.Implies(output, "true"))
	}
	return []*parser.Descriptor{
		check("check.sr.transcript.text.wer", "10001", "2;1", resultText),
		check("check.sr.transcript.itn.text.wer", "100101", "2;1", resultITNText),
		check("check.sr.transcript.lexical.text.wer", "100101", "2;1", resultLexicalText),

		check("check.sr.transcript.text.in", "10011", "+", resultText),
		check("check.sr.transcript.text.contains", "10011", "1", resultText),
		check("check.sr.transcript.text.not.in", "100111", "+", resultText),
		check("check.sr.transcript.text.not.contains", "100111", "1", resultText),
		check("check.sr.transcript.text", "1001", "2;1", resultText),

		check("check.sr.transcript.itn.text.in", "100101", "+", resultITNText),
		check("check.sr.transcript.itn.text.contains", "100101", "1", resultITNText),
		check("check.sr.transcript.itn.text.not.in", "1001011", "+", resultITNText),
		check("check.sr.transcript.itn.text.not.contains", "1001011", "1", resultITNText),
		check("check.sr.transcript.itn.text", "10010", "2;1", resultITNText),

		check("check.sr.transcript.lexical.text.in", "100101", "+", resultLexicalText),
		check("check.sr.transcript.lexical.text.contains", "100101", "1", resultLexicalText),
		check("check.sr.transcript.lexical.text.not.in", "1001011", "+", resultLexicalText),
		check("check.sr.transcript.lexical.text.not.contains", "1001011", "1", resultLexicalText),
		check("check.sr.transcript.lexical.text", "10010", "2;1", resultLexicalText),
	}
}

// runDialog validates what a dialog session needs before reporting that
// the speech runtime is not linked.
func runDialog(ctx context.Context, inv *command.Invocation) error {
	v := inv.Values
	if v.GetOrDefault("service.config.key", "") == "" && v.GetOrDefault("service.config.token.value", "") == "" {
		return fmt.Errorf("ERROR: Missing speech key or token.\n\n  TRY:   ai %s --key KEY --region REGION", strings.ReplaceAll(inv.Name, ".", " "))
	}
	if v.GetOrDefault("service.config.region", "") == "" && v.GetOrDefault("service.config.endpoint.uri", "") == "" && v.GetOrDefault("service.config.host.uri", "") == "" {
		return fmt.Errorf("ERROR: Missing speech region or endpoint.\n\n  TRY:   ai %s --region REGION", strings.ReplaceAll(inv.Name, ".", " "))
	}
	inv.Log.Info("dialog session",
		"input", v.GetOrDefault("audio.input.type", "microphone"),
		"method", v.GetOrDefault("recognize.method", "continuous"))
	return &NotLinkedError{Command: inv.Name, What: "speech runtime"}
}
