package domain

import "time"

const unknownDescription = "Unknown"

// DatasetFormat identifies how the food dataset file is laid out.
type DatasetFormat string

// Available dataset formats.
const (
	// DatasetFormatArray is a JSON array (or newline-delimited JSON) read as a stream.
	DatasetFormatArray DatasetFormat = "array"

	// DatasetFormatDocument is one JSON document holding a nested list, parsed whole.
	DatasetFormatDocument DatasetFormat = "document"

	// DatasetFormatSQLite is a SQLite file produced by "ration dataset import".
	DatasetFormatSQLite DatasetFormat = "sqlite"
)

// IsValid returns true if the dataset format is recognised.
func (f DatasetFormat) IsValid() bool {
	switch f {
	case DatasetFormatArray, DatasetFormatDocument, DatasetFormatSQLite:
		return true
	default:
		return false
	}
}

// DefaultMatchField returns the record field searched by default for the format.
func (f DatasetFormat) DefaultMatchField() string {
	if f == DatasetFormatDocument {
		return "description"
	}
	return "food"
}

// Description returns a human-readable description of the format.
func (f DatasetFormat) Description() string {
	switch f {
	case DatasetFormatArray:
		return "JSON array (streamed)"
	case DatasetFormatDocument:
		return "JSON document (parsed whole)"
	case DatasetFormatSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// AIProvider identifies a text-generation service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// OutputFormat selects the shape requested from the generator.
type OutputFormat string

// Available output formats.
const (
	// OutputFormatHTML asks for an HTML list fragment.
	OutputFormatHTML OutputFormat = "html"

	// OutputFormatText asks for plain text grouped in blank-line separated blocks.
	OutputFormatText OutputFormat = "text"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	return f == OutputFormatHTML || f == OutputFormatText
}

// ServerSettings configures the HTTP gateway.
type ServerSettings struct {
	// Port is the TCP port to listen on.
	Port int `json:"port"`

	// AllowedOrigins lists CORS origins. "*" allows any.
	AllowedOrigins []string `json:"allowed_origins"`
}

// DatasetSettings configures the food dataset.
type DatasetSettings struct {
	// Path is the dataset file location.
	Path string `json:"path"`

	// Format is the dataset layout.
	Format DatasetFormat `json:"format"`

	// MatchField is the gjson path of the searched text field.
	MatchField string `json:"match_field"`

	// ListPath is the gjson path of the record list (document format only).
	ListPath string `json:"list_path,omitempty"`

	// MaxMatches caps search results.
	MaxMatches int `json:"max_matches"`
}

// LLMSettings configures the text-generation provider.
type LLMSettings struct {
	// Provider is the generation service.
	Provider AIProvider `json:"provider"`

	// Model is the model name.
	Model string `json:"model,omitempty"`

	// APIKey authenticates cloud providers.
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the API endpoint.
	BaseURL string `json:"base_url,omitempty"`

	// OutputFormat selects the prompt variant.
	OutputFormat OutputFormat `json:"output_format"`

	// Timeout bounds each generation request. Zero uses the provider default.
	Timeout time.Duration `json:"timeout,omitempty"`

	// RequestsPerSecond limits outbound calls. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`

	// Burst is the limiter burst size.
	Burst int `json:"burst"`

	// PostProcessors names the cleaners run over generated text.
	// Empty selects the defaults for OutputFormat.
	PostProcessors []string `json:"postprocessors,omitempty"`
}

// IsConfigured returns true if the provider can be constructed.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Settings is the resolved application configuration.
type Settings struct {
	Server  ServerSettings  `json:"server"`
	Dataset DatasetSettings `json:"dataset"`
	LLM     LLMSettings     `json:"llm"`
}

// Defaults.
const (
	DefaultPort            = 8080
	DefaultDatasetPath     = "food.json"
	DefaultDocumentList    = "BrandedFoods"
	DefaultCaloriesPath    = "labelNutrients.calories.value"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultLimiterBurst    = 1
	DefaultGenerationLimit = 0
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Port:           DefaultPort,
			AllowedOrigins: []string{"*"},
		},
		Dataset: DatasetSettings{
			Path:       DefaultDatasetPath,
			Format:     DatasetFormatArray,
			MatchField: DatasetFormatArray.DefaultMatchField(),
			ListPath:   DefaultDocumentList,
			MaxMatches: DefaultMaxMatches,
		},
		LLM: LLMSettings{
			Provider:          AIProviderGemini,
			Model:             DefaultGeminiModel,
			OutputFormat:      OutputFormatHTML,
			RequestsPerSecond: DefaultGenerationLimit,
			Burst:             DefaultLimiterBurst,
		},
	}
}
