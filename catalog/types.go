// Package catalog holds the resolver's static, data-driven content:
// abilities, classes, items, pet templates, effect templates, and
// balance constants.
// Record shapes are stable, so a test suite or designer can fixture
// content from YAML without reading Go source.
package catalog

import "gopkg.in/yaml.v3"

// DamageType is physical or magic.
type DamageType string

// Recognized damage types.
const (
	DamagePhysical DamageType = "physical"
	DamageMagic    DamageType = "magic"
)

// TargetMode selects single-target vs area resolution.
const (
	TargetEnemy    = "enemy"
	TargetAoEEnemy = "aoe_enemy"
)

// Dice describes an ability's damage dice, e.g. {Notation: "2d6", PowerOn: "atk"}.
// PowerOn is informational (which stat the flat `power` term in
// base_damage represents) and is not itself multiplied by Scaling.
type Dice struct {
	Notation string `yaml:"type"`
	PowerOn  string `yaml:"power_on,omitempty"`
}

// EffectApplication is one entry in an ability's self_effects/
// target_effects/on_hit_effects/stealth_on_hit_effects lists.
type EffectApplication struct {
	ID        string         `yaml:"id"`
	Chance    int            `yaml:"chance,omitempty"` // percent; 0 or absent means always
	Duration  int            `yaml:"duration,omitempty"`
	Overrides map[string]any `yaml:"overrides,omitempty"`
	Log       string         `yaml:"log,omitempty"`
}

// AbsorbSpec is an ability's absorb block.
type AbsorbSpec struct {
	Flat       int    `yaml:"flat,omitempty"`
	Scaling    string `yaml:"scaling,omitempty"` // stat name, e.g. "int"
	ScaleBy    float64 `yaml:"scale_by,omitempty"`
	Dice       string `yaml:"dice,omitempty"`
	EffectID   string `yaml:"effect_id,omitempty"`
	SourceName string `yaml:"source_name,omitempty"`
}

// DotSpec is an ability's dot block.
type DotSpec struct {
	ID              string  `yaml:"id"`
	Duration        int     `yaml:"duration"`
	School          string  `yaml:"school"`
	FromDealtDamage bool    `yaml:"from_dealt_damage,omitempty"`
	Scaling         string  `yaml:"scaling,omitempty"`
	ScaleBy         float64 `yaml:"scale_by,omitempty"`
	Dice            string  `yaml:"dice,omitempty"`
	Mode            string  `yaml:"mode,omitempty"` // "ramp" for agony-style DoTs
}

// HPSacrificeSpec trades a fraction of the caster's current HP for an
// effect, e.g. a warlock healthstone-style cost.
type HPSacrificeSpec struct {
	Pct        float64 `yaml:"pct"`
	MinHPLeave int     `yaml:"min_hp_leave"`
}

// GrantAbsorbFromSacrificeSpec converts hp_sacrifice into an absorb
// layer sized as a multiple of the sacrificed amount.
type GrantAbsorbFromSacrificeSpec struct {
	Mult     float64 `yaml:"mult"`
	EffectID string  `yaml:"effect_id"`
	Duration int     `yaml:"duration"`
}

// Ability is the full ability record.
type Ability struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	Cost map[string]int `yaml:"cost,omitempty"`

	Dice       *Dice              `yaml:"dice,omitempty"`
	Scaling    map[string]float64 `yaml:"scaling,omitempty"`
	FlatDamage int                `yaml:"flat_damage,omitempty"`
	DamageType DamageType         `yaml:"damage_type,omitempty"`

	Tags    []string `yaml:"tags,omitempty"`
	Classes []string `yaml:"classes,omitempty"`

	Cooldown          int      `yaml:"cooldown"`
	Charges           int      `yaml:"charges,omitempty"`
	SharedCooldownWith []string `yaml:"shared_cooldown_with,omitempty"`

	Hits                    int  `yaml:"hits,omitempty"`
	AlwaysCrit              bool `yaml:"always_crit,omitempty"`
	IgnorePhysicalReduction bool `yaml:"ignore_physical_reduction,omitempty"`

	OnHitEffects        []EffectApplication `yaml:"on_hit_effects,omitempty"`
	SelfEffects         []EffectApplication `yaml:"self_effects,omitempty"`
	TargetEffects       []EffectApplication `yaml:"target_effects,omitempty"`
	StealthOnHitEffects []EffectApplication `yaml:"stealth_on_hit_effects,omitempty"`

	// Effect is the legacy single mitigation block, used as a fallback
	// when SelfEffects is empty.
	Effect *EffectApplication `yaml:"effect,omitempty"`

	RequiresForm           string  `yaml:"requires_form,omitempty"`
	RequiresEffect         string  `yaml:"requires_effect,omitempty"`
	RequiresWeapon         string  `yaml:"requires_weapon,omitempty"`
	RequiresTargetHPBelow  float64 `yaml:"requires_target_hp_below,omitempty"`
	RequiresCircle         bool    `yaml:"requires_circle,omitempty"`
	ConsumeEffect          string  `yaml:"consume_effect,omitempty"`

	ResourceGain map[string]ResourceGainRaw `yaml:"resource_gain,omitempty"`

	HealOnHit    int     `yaml:"heal_on_hit,omitempty"`
	HealScaling  string  `yaml:"heal_scaling,omitempty"`
	HealScaleBy  float64 `yaml:"heal_scale_by,omitempty"`
	HealDice     string  `yaml:"heal_dice,omitempty"`

	StealthBonus map[string]any `yaml:"stealth_bonus,omitempty"`

	AllowWhileStunned bool `yaml:"allow_while_stunned,omitempty"`
	PriorityDefensive bool `yaml:"priority_defensive,omitempty"`
	PriorityControl   bool `yaml:"priority_control,omitempty"`

	TargetMode string `yaml:"target_mode,omitempty"`

	Absorb *AbsorbSpec `yaml:"absorb,omitempty"`
	Dot    *DotSpec    `yaml:"dot,omitempty"`

	HealFromDealtDamage bool    `yaml:"heal_from_dealt_damage,omitempty"`
	HealFromDamage      float64 `yaml:"heal_from_damage,omitempty"`

	HPSacrifice               *HPSacrificeSpec              `yaml:"hp_sacrifice,omitempty"`
	GrantAbsorbFromSacrifice  *GrantAbsorbFromSacrificeSpec `yaml:"grant_absorb_from_sacrifice,omitempty"`
}

// ResourceGainRaw is the union type a YAML resource_gain value can take:
// either the string "damage"/"damage_x3" or a flat integer.
type ResourceGainRaw struct {
	Kind string
	Flat int
}

// UnmarshalYAML accepts either a bare string ("damage", "damage_x3") or
// an integer literal for resource_gain entries.
func (r *ResourceGainRaw) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!str" {
		return value.Decode(&r.Kind)
	}
	return value.Decode(&r.Flat)
}

// HasTag reports whether the ability carries the given tag.
func (a *Ability) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ChargesOrDefault returns a.Charges, defaulting to 1.
func (a *Ability) ChargesOrDefault() int {
	if a.Charges <= 0 {
		return 1
	}
	return a.Charges
}

// ClassGateOK reports whether classID may use this ability. An empty
// Classes list means unrestricted.
func (a *Ability) ClassGateOK(classID string) bool {
	if len(a.Classes) == 0 {
		return true
	}
	for _, c := range a.Classes {
		if c == classID {
			return true
		}
	}
	return false
}

// Class is the class record.
type Class struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	BaseStats map[string]int     `yaml:"base_stats"`
	Resources map[string]int     `yaml:"resources"`
	ResourceDisplay string       `yaml:"resource_display,omitempty"`
	ResourceNotes   string       `yaml:"resource_notes,omitempty"`
	StartingEffects []string     `yaml:"starting_effects,omitempty"`
}

// Item is the item record.
type Item struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Slot       string         `yaml:"slot"`
	Mods       map[string]int `yaml:"mods,omitempty"`
	DamageType DamageType     `yaml:"damage_type,omitempty"`
	Classes    []string       `yaml:"classes,omitempty"`
	MissChance int            `yaml:"miss_chance,omitempty"`
	Passives   []Passive      `yaml:"passives,omitempty"`
}

// ClassGateOK reports whether classID may equip this item. An empty
// Classes list means unrestricted.
func (it *Item) ClassGateOK(classID string) bool {
	if len(it.Classes) == 0 {
		return true
	}
	for _, c := range it.Classes {
		if c == classID {
			return true
		}
	}
	return false
}

// PassiveTrigger selects when an item passive evaluates.
const (
	TriggerOnHit      = "on_hit"
	TriggerEndOfTurn  = "end_of_turn"
	TriggerOnDamage   = "on_damage"
)

// Passive is one item-passive behavior. Recognized types:
// Burn, StrikeAgain, VoidBlade, LightningBlast, HealOnHit,
// EmpowerNextOffense, DuplicateOffensiveSpell, DamageBonusAboveHP,
// DamageBonusBelowHP, HealSelf, AbsorbSelf).
type Passive struct {
	Type    string  `yaml:"type"`
	Trigger string  `yaml:"trigger"`
	Chance  int     `yaml:"chance,omitempty"`

	EffectID string  `yaml:"effect_id,omitempty"`
	Duration int     `yaml:"duration,omitempty"`
	Amount   int     `yaml:"amount,omitempty"`
	ScaleBy  float64 `yaml:"scale_by,omitempty"`
	School   string  `yaml:"school,omitempty"`

	// HPThreshold gates DamageBonusAboveHP/DamageBonusBelowHP: the
	// caster's hp/hp_max must be above (or below) this fraction.
	HPThreshold float64 `yaml:"hp_threshold,omitempty"`
	Multiplier  float64 `yaml:"multiplier,omitempty"`
}

// PetTemplate is the pet template record.
type PetTemplate struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	HP         int    `yaml:"hp"`
	School     string `yaml:"school"`
	Duration   int    `yaml:"duration,omitempty"`
	MaxCount   int    `yaml:"max_count"`
	BehaviorID string `yaml:"behavior_id"`
}

// EffectTemplate is the effect template record.
type EffectTemplate struct {
	ID       string             `yaml:"id"`
	Type     string             `yaml:"type"`
	Name     string             `yaml:"name"`
	Duration int                `yaml:"duration"`

	Flags map[string]bool `yaml:"flags,omitempty"`
	Mods  map[string]int  `yaml:"mods,omitempty"`
	Regen map[string]int  `yaml:"regen,omitempty"`
	Value float64         `yaml:"value,omitempty"`

	Dispellable bool   `yaml:"dispellable,omitempty"`
	Category    string `yaml:"category,omitempty"`
	School      string `yaml:"school,omitempty"`

	BreakOnDamageOver int     `yaml:"break_on_damage_over,omitempty"`
	DamageMult        float64 `yaml:"damage_mult,omitempty"`
	DotMode           string  `yaml:"dot_mode,omitempty"`
}

// Defaults holds the per-turn regen and other balance constants.
type Defaults struct {
	MPRegenPerTurn     int `yaml:"mp_regen_per_turn"`
	EnergyRegenPerTurn int `yaml:"energy_regen_per_turn"`
}

// Caps holds the stat clamp bounds applied at prep.
type Caps struct {
	CritMin int `yaml:"crit_min"`
	CritMax int `yaml:"crit_max"`
	AccMin  int `yaml:"acc_min"`
	AccMax  int `yaml:"acc_max"`
}
