// Static capability catalogs for the supported providers.
//
// These catalogs are the authoritative source for context windows,
// output caps, feature flags, and intelligence scores. Aliases are
// unique within each provider; across providers the registry resolves
// in registration order, first match wins.

package llm

const mb = 1024 * 1024

var geminiCatalog = []ModelCapability{
	{
		ModelName:                "gemini-2.5-pro",
		FriendlyName:             "Gemini 2.5 Pro",
		Aliases:                  []string{"pro", "gemini-pro", "gemini pro"},
		ContextWindow:            1_048_576,
		MaxOutputTokens:          65_536,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      true,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        18,
		AllowCodeGeneration:      true,
		Provider:                 ProviderGemini,
	},
	{
		ModelName:                "gemini-2.5-flash",
		FriendlyName:             "Gemini 2.5 Flash",
		Aliases:                  []string{"flash", "gemini-flash"},
		ContextWindow:            1_048_576,
		MaxOutputTokens:          65_536,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      true,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        10,
		AllowCodeGeneration:      true,
		Provider:                 ProviderGemini,
	},
	{
		ModelName:               "gemini-2.0-flash-lite",
		FriendlyName:            "Gemini 2.0 Flash Lite",
		Aliases:                 []string{"flashlite", "flash-lite"},
		ContextWindow:           1_048_576,
		MaxOutputTokens:         8_192,
		SupportsSystemPrompts:   true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsJSONMode:        true,
		SupportsTemperature:     true,
		IntelligenceScore:       6,
		AllowCodeGeneration:     true,
		Provider:                ProviderGemini,
	},
}

var openaiCatalog = []ModelCapability{
	{
		ModelName:                "gpt-5",
		FriendlyName:             "GPT-5",
		Aliases:                  []string{"gpt5"},
		ContextWindow:            400_000,
		MaxOutputTokens:          128_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      false,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        16,
		AllowCodeGeneration:      true,
		Provider:                 ProviderOpenAI,
	},
	{
		ModelName:                "o3",
		FriendlyName:             "O3",
		ContextWindow:            200_000,
		MaxOutputTokens:          100_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      false,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        14,
		AllowCodeGeneration:      true,
		Provider:                 ProviderOpenAI,
	},
	{
		ModelName:                "o4-mini",
		FriendlyName:             "O4 Mini",
		Aliases:                  []string{"mini", "o4mini"},
		ContextWindow:            200_000,
		MaxOutputTokens:          100_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      false,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        11,
		AllowCodeGeneration:      true,
		Provider:                 ProviderOpenAI,
	},
	{
		ModelName:               "gpt-4.1",
		FriendlyName:            "GPT-4.1",
		Aliases:                 []string{"gpt4.1"},
		ContextWindow:           1_000_000,
		MaxOutputTokens:         32_768,
		SupportsSystemPrompts:   true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsJSONMode:        true,
		SupportsImages:          true,
		SupportsTemperature:     true,
		MaxImageBytes:           20 * mb,
		IntelligenceScore:       13,
		AllowCodeGeneration:     true,
		Provider:                ProviderOpenAI,
	},
}

var anthropicCatalog = []ModelCapability{
	{
		ModelName:                "claude-opus-4-5-20251101",
		FriendlyName:             "Claude Opus 4.5",
		Aliases:                  []string{"opus", "claude-opus"},
		ContextWindow:            200_000,
		MaxOutputTokens:          64_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         false,
		SupportsImages:           true,
		SupportsTemperature:      true,
		MaxImageBytes:            5 * mb,
		IntelligenceScore:        17,
		AllowCodeGeneration:      true,
		Provider:                 ProviderAnthropic,
	},
	{
		ModelName:                "claude-sonnet-4-20250514",
		FriendlyName:             "Claude Sonnet 4",
		Aliases:                  []string{"sonnet", "claude-sonnet"},
		ContextWindow:            200_000,
		MaxOutputTokens:          64_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         false,
		SupportsImages:           true,
		SupportsTemperature:      true,
		MaxImageBytes:            5 * mb,
		IntelligenceScore:        13,
		AllowCodeGeneration:      true,
		Provider:                 ProviderAnthropic,
	},
	{
		ModelName:               "claude-haiku-4-20250514",
		FriendlyName:            "Claude Haiku 4",
		Aliases:                 []string{"haiku", "claude-haiku"},
		ContextWindow:           200_000,
		MaxOutputTokens:         32_000,
		SupportsSystemPrompts:   true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsJSONMode:        false,
		SupportsImages:          true,
		SupportsTemperature:     true,
		MaxImageBytes:           5 * mb,
		IntelligenceScore:       8,
		AllowCodeGeneration:     true,
		Provider:                ProviderAnthropic,
	},
}

var xaiCatalog = []ModelCapability{
	{
		ModelName:                "grok-4",
		FriendlyName:             "GROK-4",
		Aliases:                  []string{"grok", "grok4"},
		ContextWindow:            256_000,
		MaxOutputTokens:          256_000,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsJSONMode:         true,
		SupportsImages:           true,
		SupportsTemperature:      true,
		MaxImageBytes:            20 * mb,
		IntelligenceScore:        15,
		AllowCodeGeneration:      true,
		Provider:                 ProviderXAI,
	},
	{
		ModelName:               "grok-3-fast",
		FriendlyName:            "GROK-3 Fast",
		Aliases:                 []string{"grokfast", "grok3fast"},
		ContextWindow:           131_072,
		MaxOutputTokens:         32_768,
		SupportsSystemPrompts:   true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsJSONMode:        true,
		SupportsTemperature:     true,
		IntelligenceScore:       9,
		AllowCodeGeneration:     true,
		Provider:                ProviderXAI,
	},
}

var openrouterCatalog = []ModelCapability{
	{
		ModelName:                "deepseek/deepseek-r1",
		FriendlyName:             "DeepSeek R1",
		Aliases:                  []string{"deepseek-r1", "r1"},
		ContextWindow:            65_536,
		MaxOutputTokens:          32_768,
		SupportsExtendedThinking: true,
		SupportsSystemPrompts:    true,
		SupportsStreaming:        true,
		SupportsJSONMode:         true,
		SupportsTemperature:      true,
		IntelligenceScore:        12,
		AllowCodeGeneration:      true,
		Provider:                 ProviderOpenRouter,
	},
	{
		ModelName:               "mistralai/mistral-large-2411",
		FriendlyName:            "Mistral Large",
		Aliases:                 []string{"mistral", "mistral-large"},
		ContextWindow:           128_000,
		MaxOutputTokens:         32_768,
		SupportsSystemPrompts:   true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsJSONMode:        true,
		SupportsTemperature:     true,
		IntelligenceScore:       10,
		AllowCodeGeneration:     true,
		Provider:                ProviderOpenRouter,
	},
	{
		ModelName:             "meta-llama/llama-3.3-70b-instruct",
		FriendlyName:          "Llama 3.3 70B",
		Aliases:               []string{"llama", "llama3"},
		ContextWindow:         131_072,
		MaxOutputTokens:       16_384,
		SupportsSystemPrompts: true,
		SupportsStreaming:     true,
		SupportsJSONMode:      true,
		SupportsTemperature:   true,
		IntelligenceScore:     8,
		AllowCodeGeneration:   true,
		Provider:              ProviderOpenRouter,
	},
}

// CatalogFor returns the static capability catalog for a provider type.
func CatalogFor(provider ProviderType) []ModelCapability {
	switch provider {
	case ProviderGemini:
		return geminiCatalog
	case ProviderOpenAI:
		return openaiCatalog
	case ProviderAnthropic:
		return anthropicCatalog
	case ProviderXAI:
		return xaiCatalog
	case ProviderOpenRouter:
		return openrouterCatalog
	default:
		return nil
	}
}
