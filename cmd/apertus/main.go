package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-go-golems/apertus/pkg/chat"
	"github.com/go-go-golems/apertus/pkg/chat/serde"
	"github.com/go-go-golems/apertus/pkg/formatter"
)

var (
	logLevel string

	enableThinking      bool
	toolsFile           string
	addGenerationPrompt bool
	outputFile          string
	indentOutput        bool
)

var rootCmd = &cobra.Command{
	Use:   "apertus",
	Short: "Render and parse conversations in the Apertus chat format",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", logLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <conversation-file>",
	Short: "Render a conversation file to chat-template text",
	Long: `Render a JSON or YAML conversation file to the token-delimited text
form consumed by the model.

Examples:
  apertus render conversation.json
  apertus render conversation.yaml --thinking --generation-prompt
  apertus render conversation.json --tools tools.json --output prompt.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var parseCmd = &cobra.Command{
	Use:   "parse <text-file>",
	Short: "Parse rendered chat-template text back into a conversation",
	Long: `Parse a previously rendered text file back into a conversation and
print it as JSON. The parse is lossy: structured assistant content comes back
as plain strings, grouped system, then users, then assistants.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var convertCmd = &cobra.Command{
	Use:   "convert <conversation-file>",
	Short: "Convert a conversation between JSON and YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")

	renderCmd.Flags().BoolVar(&enableThinking, "thinking", false, "Enable the deliberation (inner) section")
	renderCmd.Flags().StringVar(&toolsFile, "tools", "", "JSON file with a list of tool schemas")
	renderCmd.Flags().BoolVar(&addGenerationPrompt, "generation-prompt", false, "Append the assistant start token")
	renderCmd.Flags().StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	parseCmd.Flags().BoolVar(&indentOutput, "indent", false, "Indent the JSON output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(convertCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	conv, err := loadConversation(args[0])
	if err != nil {
		return err
	}

	options := []formatter.Option{formatter.WithThinking(enableThinking)}
	if toolsFile != "" {
		tools, err := loadTools(toolsFile)
		if err != nil {
			return err
		}
		options = append(options, formatter.WithTools(tools...))
	}

	f, err := formatter.New(options...)
	if err != nil {
		return err
	}

	rendered, err := f.FormatConversation(conv, addGenerationPrompt)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(rendered), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", outputFile)
		}
		log.Info().Str("path", outputFile).Msg("wrote rendered conversation")
		return nil
	}
	fmt.Println(rendered)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}

	conv := formatter.ParseConversation(string(raw))

	var document string
	if indentOutput {
		document, err = conv.ToJSONIndent("  ")
	} else {
		document, err = conv.ToJSON()
	}
	if err != nil {
		return err
	}
	fmt.Println(document)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	conv, err := loadConversation(path)
	if err != nil {
		return err
	}

	if isYAMLPath(path) {
		document, err := conv.ToJSONIndent("  ")
		if err != nil {
			return err
		}
		fmt.Println(document)
		return nil
	}

	out, err := serde.ToYAML(conv, serde.Options{})
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func loadConversation(path string) (chat.Conversation, error) {
	if isYAMLPath(path) {
		return serde.LoadConversationYAML(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return chat.ConversationFromJSON(string(raw))
}

func loadTools(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var tools []map[string]any
	if err := json.Unmarshal(raw, &tools); err != nil {
		return nil, errors.Wrapf(err, "failed to decode tools from %s", path)
	}
	return tools, nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
