package model

// EffectCategory groups an effect for dispel/UI purposes.
type EffectCategory string

// Recognized categories.
const (
	CategoryBuff  EffectCategory = "buff"
	CategoryDebuff EffectCategory = "debuff"
	CategoryDot   EffectCategory = "dot"
	CategoryStatus EffectCategory = "status"
)

// EffectType narrows how an effect record is interpreted by the effect
// engine. An effect record may carry more than one kind of
// payload (e.g. a status effect with both flags and mods), but Type
// documents its primary role for dispatch and dispel filtering.
type EffectType string

// Recognized effect types.
const (
	EffectStatus       EffectType = "status"
	EffectMitigation   EffectType = "mitigation"
	EffectStatMods     EffectType = "stat_mods"
	EffectBurn         EffectType = "burn"
	EffectDot          EffectType = "dot"
	EffectItemPassive  EffectType = "item_passive"
	EffectForm         EffectType = "form"
	EffectStealth      EffectType = "stealth"
	EffectAbsorb       EffectType = "absorb"
)

// PermanentDuration marks an effect as permanent until cleansed.
const PermanentDuration = 999

// Effect is a single tagged record. Every mechanic the
// effect engine understands (flags, stat mods, regen, mitigation
// value, DoT ticking, school, dispel eligibility, source, lifesteal)
// is a field here rather than a polymorphic type, matching the
// data-driven catalogs this game's templates are authored as.
type Effect struct {
	ID       string         `json:"id"`
	Type     EffectType     `json:"type,omitempty"`
	Name     string         `json:"name,omitempty"`
	Duration int            `json:"duration"`
	Category EffectCategory `json:"category,omitempty"`

	Flags map[string]bool `json:"flags,omitempty"`
	Mods  map[string]int  `json:"mods,omitempty"`
	Regen map[string]int  `json:"regen,omitempty"`

	// Value is a mitigation fraction in [0, 1] for EffectMitigation records.
	Value float64 `json:"value,omitempty"`

	TickDamage int    `json:"tick_damage,omitempty"`
	School     string `json:"school,omitempty"`

	Dispellable bool `json:"dispellable,omitempty"`

	SourceSID     string  `json:"source_sid,omitempty"`
	SourceItem    string  `json:"source_item,omitempty"`
	LifestealPct  float64 `json:"lifesteal_pct,omitempty"`

	// DotMode distinguishes flat DoTs from ramping ones like agony.
	// Empty means flat.
	DotMode string `json:"dot_mode,omitempty"`

	// Exploded marks a single-shot effect (shield_of_vengeance) that has
	// already detonated, so Phase G does not fire it twice.
	Exploded bool `json:"exploded,omitempty"`
}

// HasFlag reports whether the effect sets the named boolean flag.
func (e *Effect) HasFlag(flag string) bool {
	if e == nil || e.Flags == nil {
		return false
	}
	return e.Flags[flag]
}

// IsPermanent reports whether the effect bypasses duration ticking:
// item-passive and burn-typed effects are exempt.
func (e *Effect) IsPermanent() bool {
	return e.Type == EffectItemPassive || e.Type == EffectBurn || e.Duration >= PermanentDuration
}
