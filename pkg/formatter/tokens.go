package formatter

// Delimiter tokens of the Apertus chat template. The formatter depends only
// on their existence, locating them by exact substring search.
const (
	BosToken = "<s>"

	SystemStart    = "<|system_start|>"
	SystemEnd      = "<|system_end|>"
	DeveloperStart = "<|developer_start|>"
	DeveloperEnd   = "<|developer_end|>"
	UserStart      = "<|user_start|>"
	UserEnd        = "<|user_end|>"
	AssistantStart = "<|assistant_start|>"
	AssistantEnd   = "<|assistant_end|>"

	InnerPrefix = "<|inner_prefix|>"
	InnerSuffix = "<|inner_suffix|>"
	ToolsPrefix = "<|tools_prefix|>"
	ToolsSuffix = "<|tools_suffix|>"
)
