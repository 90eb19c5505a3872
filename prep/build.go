// Package prep turns a locked-in PlayerBuild into a fully initialized
// PlayerState: class base stats, resource maxima,
// equipped-item mods and passives, stat caps, and class starting
// effects.
package prep

import (
	"strconv"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rpgerr"
	"github.com/duelcore/resolver/rules"
)

// poolKeys are the resource-pool mod keys that adjust pool maxima
// rather than the Stats map.
var poolKeys = map[string]bool{
	"hp": true, "hp_max": true,
	"mp": true, "mp_max": true,
	"energy": true, "energy_max": true,
	"rage": true, "rage_max": true,
}

// Build constructs a fresh PlayerState for sid from build, following the
// prep steps in order. Build is idempotent: calling it
// twice on an identical build produces identical states,
// since it only ever derives state from build and cat, never from any
// prior PlayerState.
func Build(cat *catalog.Catalog, sid string, build model.PlayerBuild) (*model.PlayerState, error) {
	class := cat.Classes[build.ClassID]
	if class == nil {
		return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "prep: unknown class %q", build.ClassID)
	}

	ps := &model.PlayerState{
		SID:       sid,
		Build:     build,
		Stats:     make(map[string]int),
		Cooldowns: make(map[string][]int),
		Pets:      make(map[string]*model.PetState),
	}

	// Step 1: class base stats, plus the stats every class carries even
	// when its record omits them.
	for stat, v := range class.BaseStats {
		ps.Stats[stat] = v
	}
	if _, ok := ps.Stats[model.StatInt]; !ok {
		ps.Stats[model.StatInt] = 0
	}
	ps.Stats[model.StatPhysicalReduction] = 0
	ps.Stats[model.StatMagicResist] = 0

	// Step 2: class resource maxima become both current and max.
	ps.Res.HP, ps.Res.HPMax = class.Resources[model.PoolHP], class.Resources[model.PoolHP]
	ps.Res.MP, ps.Res.MPMax = class.Resources[model.PoolMP], class.Resources[model.PoolMP]
	ps.Res.Energy, ps.Res.EnergyMax = class.Resources[model.PoolEnergy], class.Resources[model.PoolEnergy]
	ps.Res.Rage, ps.Res.RageMax = class.Resources[model.PoolRage], class.Resources["rage_max"]
	if ps.Res.RageMax == 0 {
		ps.Res.RageMax = class.Resources[model.PoolRage]
	}

	// Step 3: equipped items whose class restriction (if any) permits
	// this class contribute their mods.
	equipped := equippedItems(cat, build)
	for _, item := range equipped {
		if !item.ClassGateOK(build.ClassID) {
			continue
		}
		for stat, delta := range item.Mods {
			if poolKeys[stat] {
				applyPoolMod(ps, stat, delta)
				continue
			}
			ps.Stats[stat] += delta
		}
	}

	// Step 4: clamp crit/acc to catalog caps.
	ps.Stats[model.StatCrit] = rules.Clamp(ps.Stats[model.StatCrit], cat.Caps.CritMin, cat.Caps.CritMax)
	ps.Stats[model.StatAcc] = rules.Clamp(ps.Stats[model.StatAcc], cat.Caps.AccMin, cat.Caps.AccMax)

	// Step 5: attach each qualifying item's passive(s) as item-passive
	// effects with duration 999. The effect record's id just marks which
	// item-slot instance it came from; the actual behavior (Burn,
	// StrikeAgain, ...) lives on the item's Passives list and is looked
	// up via SourceItem whenever the effect engine dispatches triggers.
	for _, item := range equipped {
		if !item.ClassGateOK(build.ClassID) || len(item.Passives) == 0 {
			continue
		}
		for i := range item.Passives {
			ps.Effects = append(ps.Effects, &model.Effect{
				ID:         item.ID + ":passive:" + strconv.Itoa(i),
				Type:       model.EffectItemPassive,
				Name:       item.Name,
				Duration:   model.PermanentDuration,
				SourceItem: item.ID,
			})
		}
	}

	// Step 6: class starting effects.
	for _, id := range class.StartingEffects {
		effects.ApplyEffectByID(cat, ps, id, nil)
	}

	// Step 7: empty pets/cooldowns/combat totals already zero-valued
	// by the struct literal above.

	return ps, nil
}

func applyPoolMod(ps *model.PlayerState, stat string, delta int) {
	switch stat {
	case "hp", "hp_max":
		ps.Res.HPMax += delta
		ps.Res.HP += delta
	case "mp", "mp_max":
		ps.Res.MPMax += delta
		ps.Res.MP += delta
	case "energy", "energy_max":
		ps.Res.EnergyMax += delta
		ps.Res.Energy += delta
	case "rage", "rage_max":
		ps.Res.RageMax += delta
		ps.Res.Rage += delta
	}
}

func equippedItems(cat *catalog.Catalog, build model.PlayerBuild) []*catalog.Item {
	var out []*catalog.Item
	for _, slot := range []model.Slot{model.SlotWeapon, model.SlotArmor, model.SlotTrinket} {
		id := build.ItemIn(slot)
		if id == "" {
			continue
		}
		if item := cat.Items[id]; item != nil {
			out = append(out, item)
		}
	}
	return out
}
