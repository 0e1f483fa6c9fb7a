package ai

// ProviderName identifies an AI provider.
type ProviderName string

// Provider name constants
const (
	ProviderNameGoogle ProviderName = "google"
)

// String returns the string representation of the provider name.
func (p ProviderName) String() string {
	return string(p)
}

// IsValid checks if the provider name is supported.
func (p ProviderName) IsValid() bool {
	switch p {
	case ProviderNameGoogle:
		return true
	default:
		return false
	}
}

// AllProviderNames returns all supported provider names.
func AllProviderNames() []ProviderName {
	return []ProviderName{
		ProviderNameGoogle,
	}
}

// ProviderModelName identifies a concrete model offered by a provider.
type ProviderModelName string

// Model name constants
const (
	ModelGeminiFlash ProviderModelName = "gemini-2.5-flash"
	ModelGeminiPro   ProviderModelName = "gemini-2.5-pro"
	ModelGeminiLite  ProviderModelName = "gemini-2.0-flash"
)
