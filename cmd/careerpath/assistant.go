package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/assistant"
	"github.com/jonathan/careerpath/internal/config"
	"github.com/jonathan/careerpath/internal/llm"
	"github.com/jonathan/careerpath/internal/types"
)

// newAssistant builds the configured chat provider. The returned func releases it.
func newAssistant(ctx context.Context, a *app) (assistant.ResponseProvider, func(), error) {
	scripted := assistant.NewScripted()
	scripted.Delay = a.cfg.Assistant.Delay

	if a.cfg.Assistant.Mode != config.AssistantGemini {
		return scripted, func() {}, nil
	}

	client, err := llm.NewClient(ctx, &a.cfg.Assistant.LLM, a.cfg.Assistant.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	fallback := *scripted
	fallback.Delay = 0
	return assistant.NewGemini(client, &fallback, a.logger), func() {
		if err := client.Close(); err != nil {
			a.logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}, nil
}

var chatResumeFile string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the resume assistant",
	Long:  "Start an interactive conversation with the resume assistant. An empty line or EOF ends it.",
	RunE:  runChat,
}

var tipCmd = &cobra.Command{
	Use:   "tip <step>",
	Short: "Show the assistant's tip for a resume wizard step",
	Args:  cobra.ExactArgs(1),
	RunE:  runTip,
}

func init() {
	chatCmd.Flags().StringVar(&chatResumeFile, "resume", "", "Resume JSON file to discuss")
	rootCmd.AddCommand(chatCmd, tipCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var resume *types.Resume
	if chatResumeFile != "" {
		if resume, err = readResume(chatResumeFile); err != nil {
			return err
		}
	}

	provider, closeProvider, err := newAssistant(ctx, a)
	if err != nil {
		return err
	}
	defer closeProvider()

	out := cmd.OutOrStdout()
	conv := assistant.NewConversation(provider, resume)
	fmt.Fprintf(out, "assistant> %s\n", conv.Messages()[0].Text)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		reply, err := conv.Send(ctx, line)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "assistant is unavailable: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "assistant> %s\n", reply)
	}
	return scanner.Err()
}

func runTip(cmd *cobra.Command, args []string) error {
	var step int
	if _, err := fmt.Sscanf(args[0], "%d", &step); err != nil {
		return fmt.Errorf("invalid step %q", args[0])
	}
	tip := assistant.StepTip(step)
	if tip == "" {
		return fmt.Errorf("no tip for step %d", step)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tip)
	return nil
}

func readResume(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	r := types.NewResume()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	r.DedupeSkills()
	return r, nil
}
