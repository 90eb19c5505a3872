package model

// Slot names a gear slot a PlayerBuild can equip an item into.
type Slot string

// Recognized equipment slots.
const (
	SlotWeapon  Slot = "weapon"
	SlotArmor   Slot = "armor"
	SlotTrinket Slot = "trinket"
)

// PlayerBuild is immutable after prep: the chosen class and
// the item ids equipped into each slot. An empty string means no item
// equipped in that slot.
type PlayerBuild struct {
	ClassID string          `json:"class_id"`
	Items   map[Slot]string `json:"items"`
}

// ItemIn returns the item id equipped in slot, or "" if none.
func (b PlayerBuild) ItemIn(slot Slot) string {
	if b.Items == nil {
		return ""
	}
	return b.Items[slot]
}
