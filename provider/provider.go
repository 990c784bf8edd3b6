// Package provider defines the pluggable backend pattern shared by the
// diarization and transcription packages: a base Provider interface, named
// factories, and a generic registry of runtime-selectable instances.
package provider

import "context"

// Provider is the base interface all backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
