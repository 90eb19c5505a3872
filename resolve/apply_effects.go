package resolve

import (
	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
)

// effectApplications returns a's self_effects (or target_effects),
// falling back to the legacy single "effect" mitigation block when the
// list is empty: older ability records carry a lone mitigation block
// where newer ones use self_effects.
func effectApplications(list []catalog.EffectApplication, legacy *catalog.EffectApplication) []catalog.EffectApplication {
	if len(list) > 0 {
		return list
	}
	if legacy != nil {
		return []catalog.EffectApplication{*legacy}
	}
	return nil
}

// applyEffectList applies each EffectApplication in entries to target,
// honoring each entry's chance roll, and returns the applied effect ids
// plus any per-entry log lines.
func applyEffectList(cat *catalog.Catalog, rng dice.Roller, target *model.PlayerState, entries []catalog.EffectApplication) (applied []string, logs []string) {
	for _, entry := range entries {
		if entry.Chance > 0 && !dice.Percent(rng, entry.Chance) {
			continue
		}
		overrides := entry.Overrides
		if entry.Duration > 0 {
			if overrides == nil {
				overrides = make(map[string]any, 1)
			} else {
				merged := make(map[string]any, len(overrides)+1)
				for k, v := range overrides {
					merged[k] = v
				}
				overrides = merged
			}
			overrides["duration"] = entry.Duration
		}
		effects.ApplyEffectByID(cat, target, entry.ID, overrides)
		applied = append(applied, entry.ID)
		if entry.Log != "" {
			logs = append(logs, entry.Log)
		}
	}
	return applied, logs
}
