package match

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rpgerr"
)

// PlayerSnapshot is the per-player view emitted to the transport:
// resources, class-gated equipped items, UI-facing effects, the
// form-dependent primary resource, pets, remaining cooldowns, and a
// tail of the match log.
type PlayerSnapshot struct {
	SID             string
	Resources       model.Resources
	PrimaryResource PrimaryResource
	EquippedItems   []ItemView
	Effects         []EffectView
	Pets            []PetView
	Cooldowns       []CooldownView
	LogTail         []string
}

// PrimaryResource names the one resource pool a class's UI highlights.
// Druids show energy while shapeshifted into cat form and mana
// otherwise (catalog/fixtures/classes.yaml's druid resource_notes);
// every other class just shows its class record's resource_display.
type PrimaryResource struct {
	Name    string
	Current int
	Max     int
}

// ItemView is one class-gated equipped item.
type ItemView struct {
	Slot model.Slot
	ID   string
	Name string
}

// EffectView is one UI-facing active effect.
type EffectView struct {
	ID       string
	Name     string
	Duration int
	Category model.EffectCategory
}

// PetView is one owned pet.
type PetView struct {
	ID    string
	Name  string
	HP    int
	HPMax int
}

// CooldownView reports the remaining-turn counts for an ability's
// occupied charge slots.
type CooldownView struct {
	AbilityID string
	Slots     []int
}

// Snapshot builds sid's transport-facing view. It
// returns an error when sid is not in the match, or before combat has
// started, since no PlayerState exists until LockIn builds one.
func (m *Match) Snapshot(sid string, logTail int) (*PlayerSnapshot, error) {
	if !m.isPlayer(sid) {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s is not in this match.", sid))
	}
	ps := m.State.State[sid]
	if ps == nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s has no combat state yet.", sid))
	}

	snap := &PlayerSnapshot{
		SID:             sid,
		Resources:       ps.Res,
		PrimaryResource: primaryResource(m.Cat, ps),
		LogTail:         tail(m.State.Log, logTail),
	}

	for _, slot := range []model.Slot{model.SlotWeapon, model.SlotArmor, model.SlotTrinket} {
		id := ps.Build.ItemIn(slot)
		if id == "" {
			continue
		}
		item := m.Cat.Items[id]
		if item == nil || !item.ClassGateOK(ps.Build.ClassID) {
			continue
		}
		snap.EquippedItems = append(snap.EquippedItems, ItemView{Slot: slot, ID: id, Name: item.Name})
	}

	for _, e := range ps.Effects {
		if e.Type == model.EffectItemPassive {
			continue
		}
		snap.Effects = append(snap.Effects, EffectView{ID: e.ID, Name: e.Name, Duration: e.Duration, Category: e.Category})
	}

	for _, id := range sortedPetIDs(ps.Pets) {
		p := ps.Pets[id]
		snap.Pets = append(snap.Pets, PetView{ID: p.ID, Name: p.Name, HP: p.HP, HPMax: p.HPMax})
	}

	for _, id := range sortedCooldownIDs(ps.Cooldowns) {
		snap.Cooldowns = append(snap.Cooldowns, CooldownView{AbilityID: id, Slots: ps.Cooldowns[id]})
	}

	return snap, nil
}

// primaryResource picks the one resource pool a class's UI highlights.
// A druid in cat form shows energy instead of its class record's
// default mana display, since cat-form abilities spend energy; every
// other class (and every other druid form) uses the class default.
func primaryResource(cat *catalog.Catalog, ps *model.PlayerState) PrimaryResource {
	class := cat.Classes[ps.Build.ClassID]
	display := ""
	if class != nil {
		display = class.ResourceDisplay
	}
	if effects.CurrentFormID(ps) == "cat_form" {
		display = "energy"
	}

	switch display {
	case "energy":
		return PrimaryResource{Name: "energy", Current: ps.Res.Energy, Max: ps.Res.EnergyMax}
	case "rage":
		return PrimaryResource{Name: "rage", Current: ps.Res.Rage, Max: ps.Res.RageMax}
	case "mana":
		return PrimaryResource{Name: "mana", Current: ps.Res.MP, Max: ps.Res.MPMax}
	default:
		return PrimaryResource{Name: display, Current: ps.Res.Get(display), Max: ps.Res.Max(display)}
	}
}

func tail(log []string, n int) []string {
	if n <= 0 || n >= len(log) {
		return append([]string(nil), log...)
	}
	return append([]string(nil), log[len(log)-n:]...)
}

func sortedPetIDs(pets map[string]*model.PetState) []string {
	ids := make([]string, 0, len(pets))
	for id := range pets {
		ids = append(ids, id)
	}
	insertionSort(ids)
	return ids
}

func sortedCooldownIDs(cooldowns map[string][]int) []string {
	ids := make([]string, 0, len(cooldowns))
	for id := range cooldowns {
		ids = append(ids, id)
	}
	insertionSort(ids)
	return ids
}

func insertionSort(ids []string) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
