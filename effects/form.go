package effects

import "github.com/duelcore/resolver/model"

// CurrentFormID returns the id of target's active form effect, or "" if
// none is active.
func CurrentFormID(target *model.PlayerState) string {
	for _, e := range target.Effects {
		if e.Type == model.EffectForm {
			return e.ID
		}
	}
	return ""
}
