// Package config loads tournament configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	ProviderBot = "bot"
	ProviderLLM = "llm"

	MinSeats = 2
	MaxSeats = 10
)

// Config is the complete tournament configuration
type Config struct {
	Tournament TournamentSettings `hcl:"tournament,block"`
	Provider   ProviderSettings   `hcl:"provider,block"`
	Seats      []SeatConfig       `hcl:"seat,block"`
}

// TournamentSettings contains the table rules
type TournamentSettings struct {
	StartingChips   int    `hcl:"starting_chips,optional"`
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	MaxHands        int    `hcl:"max_hands,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	Seed            int64  `hcl:"seed,optional"`
}

// ProviderSettings selects where decisions come from
type ProviderSettings struct {
	Kind      string `hcl:"kind,optional"`
	BaseURL   string `hcl:"base_url,optional"`
	Model     string `hcl:"model,optional"`
	APIKeyEnv string `hcl:"api_key_env,optional"`
	Retries   int    `hcl:"retries,optional"`
	Backoff   string `hcl:"backoff,optional"`
	Rationale bool   `hcl:"rationale,optional"`
}

// SeatConfig defines one player
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Persona  string `hcl:"persona,optional"`
	Strategy string `hcl:"strategy,optional"`
	Provider string `hcl:"provider,optional"` // overrides provider.kind for this seat
}

// Default returns the configuration used when no file exists: four bots
// with 1000 chips at 10/20 blinds, capped at 500 hands.
func Default() *Config {
	c := &Config{
		Tournament: TournamentSettings{MaxHands: 500},
		Seats: []SeatConfig{
			{Name: "Player 1", Strategy: "calling-station"},
			{Name: "Player 2", Strategy: "aggressive"},
			{Name: "Player 3", Strategy: "tight"},
			{Name: "Player 4", Strategy: "random"},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source held in memory.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

// file mirrors Config with optional top-level blocks.
type file struct {
	Tournament *TournamentSettings `hcl:"tournament,block"`
	Provider   *ProviderSettings   `hcl:"provider,block"`
	Seats      []SeatConfig        `hcl:"seat,block"`
}

func decode(body hcl.Body) (*Config, error) {
	var f file
	if diags := gohcl.DecodeBody(body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{Seats: f.Seats}
	if f.Tournament != nil {
		c.Tournament = *f.Tournament
	}
	if f.Provider != nil {
		c.Provider = *f.Provider
	}
	if len(c.Seats) == 0 {
		c.Seats = Default().Seats
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	t := &c.Tournament
	if t.StartingChips == 0 {
		t.StartingChips = 1000
	}
	if t.SmallBlind == 0 && t.BigBlind == 0 {
		t.SmallBlind, t.BigBlind = 10, 20
	}
	if t.BigBlind == 0 {
		t.BigBlind = t.SmallBlind * 2
	}
	if t.SmallBlind == 0 {
		t.SmallBlind = t.BigBlind / 2
	}
	if t.DecisionTimeout == "" {
		t.DecisionTimeout = "30s"
	}

	p := &c.Provider
	if p.Kind == "" {
		p.Kind = ProviderBot
	}
	if p.BaseURL == "" {
		p.BaseURL = "https://openrouter.ai/api/v1"
	}
	if p.Model == "" {
		p.Model = "google/gemini-2.0-flash-001"
	}
	if p.APIKeyEnv == "" {
		p.APIKeyEnv = "OPENROUTER_API_KEY"
	}
	if p.Backoff == "" {
		p.Backoff = "500ms"
	}

	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = "calling-station"
		}
		if c.Seats[i].Provider == "" {
			c.Seats[i].Provider = p.Kind
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Tournament
	if n := len(c.Seats); n < MinSeats || n > MaxSeats {
		return fmt.Errorf("need between %d and %d seats, got %d", MinSeats, MaxSeats, n)
	}
	if t.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if t.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if t.BigBlind < t.SmallBlind {
		return fmt.Errorf("big blind must be at least the small blind")
	}
	if t.MaxHands < 0 {
		return fmt.Errorf("max hands cannot be negative")
	}
	if d, err := time.ParseDuration(t.DecisionTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid decision timeout %q", t.DecisionTimeout)
	}

	if c.Provider.Retries < 0 {
		return fmt.Errorf("provider retries cannot be negative")
	}
	if d, err := time.ParseDuration(c.Provider.Backoff); err != nil || d < 0 {
		return fmt.Errorf("invalid provider backoff %q", c.Provider.Backoff)
	}

	names := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("seat name cannot be empty")
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate seat %q", s.Name)
		}
		names[s.Name] = true
		switch s.Provider {
		case ProviderBot, ProviderLLM:
		default:
			return fmt.Errorf("seat %s: invalid provider %q", s.Name, s.Provider)
		}
	}
	return nil
}

// DecisionTimeout returns the parsed per-decision deadline. Call after Validate.
func (c *Config) DecisionTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Tournament.DecisionTimeout)
	return d
}

// Backoff returns the parsed initial retry delay. Call after Validate.
func (c *Config) Backoff() time.Duration {
	d, _ := time.ParseDuration(c.Provider.Backoff)
	return d
}

// UsesLLM reports whether any seat asks a language model for decisions.
func (c *Config) UsesLLM() bool {
	for _, s := range c.Seats {
		if s.Provider == ProviderLLM {
			return true
		}
	}
	return false
}
