package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/motorlend/motorlend/internal/domain/port"
)

// ---------------------------------------------------------------------------
// VIN Decoder Adapter – structured for real integration
// ---------------------------------------------------------------------------

// VinDecoderConfig holds configuration for the VIN decoder adapter.
type VinDecoderConfig struct {
	// BaseURL is the base URL for the decoding provider API.
	BaseURL string
	// APIKey is the authentication credential for the provider API.
	APIKey string
	// Timeout is the per-request deadline.
	Timeout time.Duration
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoff is the base backoff duration between retries.
	RetryBackoff time.Duration
}

// DefaultVinDecoderConfig returns sensible defaults for development.
func DefaultVinDecoderConfig() VinDecoderConfig {
	return VinDecoderConfig{
		BaseURL:      "https://api.vindecoder.example.com",
		APIKey:       "dev-api-key",
		Timeout:      5 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// HTTPClient defines the interface for calls to the decoding provider.
// This enables testing with mock implementations.
type HTTPClient interface {
	FetchVehicleIdentity(ctx context.Context, vin string) (port.DecodedVIN, error)
}

// VinDecoderAdapter resolves a VIN to its vehicle identity. It implements
// port.VinDecoderClient and is designed to be swapped with a real HTTP-based
// implementation when integrating with NHTSA or a commercial decoder.
type VinDecoderAdapter struct {
	config VinDecoderConfig
	client HTTPClient // nil = use simulated responses
}

// NewVinDecoderAdapter creates a new adapter with the given configuration.
// If client is nil, simulated responses are used (suitable for
// development/testing).
func NewVinDecoderAdapter(config VinDecoderConfig, client HTTPClient) *VinDecoderAdapter {
	return &VinDecoderAdapter{config: config, client: client}
}

// Decode resolves a VIN to make, model and year. It implements
// port.VinDecoderClient.
func (a *VinDecoderAdapter) Decode(ctx context.Context, vin string) (port.DecodedVIN, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return port.DecodedVIN{}, fmt.Errorf("vin is required")
	}

	if a.client != nil {
		identity, err := a.fetchWithRetry(ctx, vin)
		if err != nil {
			return port.DecodedVIN{}, fmt.Errorf("vin decoder request failed: %w", err)
		}
		return identity, nil
	}

	return a.simulateDecode(vin), nil
}

// fetchWithRetry calls the provider API with exponential backoff.
func (a *VinDecoderAdapter) fetchWithRetry(ctx context.Context, vin string) (port.DecodedVIN, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := a.config.RetryBackoff * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return port.DecodedVIN{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		identity, err := a.client.FetchVehicleIdentity(ctx, vin)
		if err == nil {
			return identity, nil
		}
		lastErr = err
	}

	return port.DecodedVIN{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}

var simulatedCatalog = []struct {
	Make   string
	Models []string
}{
	{"Toyota", []string{"Camry", "Corolla", "RAV4"}},
	{"Honda", []string{"Civic", "Accord", "CR-V"}},
	{"Ford", []string{"F-150", "Escape", "Explorer"}},
	{"Tesla", []string{"Model 3", "Model Y"}},
	{"BMW", []string{"3 Series", "X5"}},
	{"Mercedes-Benz", []string{"C-Class", "GLC"}},
}

// simulateDecode derives a deterministic vehicle identity from the VIN hash,
// making results reproducible for testing.
func (a *VinDecoderAdapter) simulateDecode(vin string) port.DecodedVIN {
	h := sha256.Sum256([]byte(vin))

	entry := simulatedCatalog[int(binary.BigEndian.Uint16(h[:2]))%len(simulatedCatalog)]
	model := entry.Models[int(binary.BigEndian.Uint16(h[2:4]))%len(entry.Models)]
	year := time.Now().UTC().Year() - int(binary.BigEndian.Uint16(h[4:6])%12)

	return port.DecodedVIN{
		VIN:   vin,
		Make:  entry.Make,
		Model: model,
		Year:  year,
	}
}
