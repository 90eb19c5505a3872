// Package combatlog formats the resolver's structured log lines:
// turn headers, action lines with damage-instance
// token substitution and absorb annotations, and the fixed
// post-combat summary template.
package combatlog

import (
	"fmt"
	"strings"

	"github.com/duelcore/resolver/model"
)

// TurnHeader renders the per-turn header line; exactly one is appended
// per turn.
func TurnHeader(turn int) string {
	return fmt.Sprintf("Turn %d", turn)
}

// CastLine renders the primary action line: "{sid} uses {weapon} to
// cast {ability}.". weaponName may be empty for unarmed/
// weaponless abilities, in which case the "uses {weapon} to" clause is
// omitted.
func CastLine(sid, weaponName, abilityName string) string {
	if weaponName == "" {
		return fmt.Sprintf("%s casts %s.", sid, abilityName)
	}
	return fmt.Sprintf("%s uses %s to cast %s.", sid, weaponName, abilityName)
}

// DamageInstance carries one hit's post-absorb result for log
// substitution.
type DamageInstance struct {
	HPDamage  int
	Absorbed  int
	Breakdown []model.AbsorbLayerBreakdown
	Crit      bool
	Immune    bool
}

// FormatDamage renders one damage instance as "{N} damage" where N is
// the pre-absorb total (hp_damage + absorbed), with a trailing
// "(N by Name, ... absorbed)" annotation when any absorption occurred.
func FormatDamage(d DamageInstance) string {
	if d.Immune {
		return "0 damage (Immune)"
	}
	total := d.HPDamage + d.Absorbed
	suffix := ""
	if d.Crit {
		suffix = " (Critical!)"
	}
	if d.Absorbed > 0 {
		var names []string
		for _, b := range d.Breakdown {
			names = append(names, fmt.Sprintf("%d by %s", b.Consumed, b.Name))
		}
		return fmt.Sprintf("%d damage%s (%s absorbed)", total, suffix, strings.Join(names, ", "))
	}
	return fmt.Sprintf("%d damage%s", total, suffix)
}

// MissLine renders a standard miss line for the given reason.
func MissLine(sid, abilityName, reason string) string {
	return fmt.Sprintf("%s's %s %s.", sid, abilityName, reason)
}

// Summary renders the fixed post-combat summary template.
func Summary(friendlyDamage, friendlyHealing, enemyDamage, enemyHealing int) string {
	return fmt.Sprintf("Post-Combat Summary|FD:%d|FH:%d|ED:%d|EH:%d", friendlyDamage, friendlyHealing, enemyDamage, enemyHealing)
}
