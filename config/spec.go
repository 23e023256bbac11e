package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atmterminated/Pixel-Arena/arena"
)

// AttackSpec tunes the basic attack's timing curve. The script receives the
// millisecond values through its params map.
type AttackSpec struct {
	Script      string `yaml:"script"`
	WindupMS    int    `yaml:"windup_ms"`
	MaxChargeMS int    `yaml:"max_charge_ms"`
	RecoveryMS  int    `yaml:"recovery_ms"`
}

// AbilitySpec tunes the ability's timing curve.
type AbilitySpec struct {
	Script     string  `yaml:"script"`
	DurationMS int     `yaml:"duration_ms"`
	DashSpeed  float64 `yaml:"dash_speed"`
}

// HitboxSpec sizes the directional attack hitboxes. Reach is the distance from
// the character's center to the hitbox center along the facing direction.
type HitboxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Reach  float64 `yaml:"reach"`
}

// CharacterSpec is the full tuning sheet for one character, loaded from yaml.
type CharacterSpec struct {
	Name              string      `yaml:"name"`
	MoveSpeed         float64     `yaml:"move_speed"`
	AttackDamage      float64     `yaml:"attack_damage"`
	MaxHealth         float64     `yaml:"max_health"`
	AbilityCooldownMS int         `yaml:"ability_cooldown_ms"`
	Attack            AttackSpec  `yaml:"attack"`
	Ability           AbilitySpec `yaml:"ability"`
	Hitbox            HitboxSpec  `yaml:"hitbox"`
}

// LoadCharacterSpec loads and validates a character spec by file name.
func LoadCharacterSpec(name string) (*CharacterSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}

	var spec CharacterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}

	return &spec, nil
}

// Validate rejects specs that would produce a character that can't act.
func (s *CharacterSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("nil spec")
	}
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.MoveSpeed <= 0 {
		return fmt.Errorf("move_speed must be positive, got %v", s.MoveSpeed)
	}
	if s.AttackDamage <= 0 {
		return fmt.Errorf("attack_damage must be positive, got %v", s.AttackDamage)
	}
	if s.MaxHealth <= 0 {
		return fmt.Errorf("max_health must be positive, got %v", s.MaxHealth)
	}
	if s.AbilityCooldownMS < 0 {
		return fmt.Errorf("ability_cooldown_ms must not be negative, got %d", s.AbilityCooldownMS)
	}
	if s.Attack.Script == "" {
		return fmt.Errorf("missing attack.script")
	}
	if s.Ability.Script == "" {
		return fmt.Errorf("missing ability.script")
	}
	if s.Hitbox.Width <= 0 || s.Hitbox.Height <= 0 {
		return fmt.Errorf("hitbox must have positive size, got %vx%v", s.Hitbox.Width, s.Hitbox.Height)
	}
	return nil
}

// Stats converts the spec to the state machine's tuning struct.
func (s *CharacterSpec) Stats() arena.Stats {
	return arena.Stats{
		MoveSpeed:       s.MoveSpeed,
		AttackDamage:    s.AttackDamage,
		MaxHealth:       s.MaxHealth,
		AbilityCooldown: time.Duration(s.AbilityCooldownMS) * time.Millisecond,
	}
}

// AttackParams builds the params map the attack script sees.
func (s *CharacterSpec) AttackParams() map[string]any {
	return map[string]any{
		"windup_ms":     s.Attack.WindupMS,
		"max_charge_ms": s.Attack.MaxChargeMS,
		"recovery_ms":   s.Attack.RecoveryMS,
	}
}

// AbilityParams builds the params map the ability script sees.
func (s *CharacterSpec) AbilityParams() map[string]any {
	return map[string]any{
		"duration_ms": s.Ability.DurationMS,
		"dash_speed":  s.Ability.DashSpeed,
	}
}
