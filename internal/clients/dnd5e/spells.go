package dnd5e

import (
	"strings"

	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/saves-helper/internal/spells"
)

// convertSpell converts an API spell to a spell definition
func convertSpell(apiSpell *entities.Spell) *spells.Spell {
	spell := &spells.Spell{
		UUID:         SpellUUID(apiSpell.Key),
		Name:         apiSpell.Name,
		Spellcasting: spells.DefaultSpellcasting,
	}

	if apiSpell.SpellSchool != nil {
		spell.Traits = append(spell.Traits, strings.ToLower(apiSpell.SpellSchool.Name))
	}

	if apiSpell.SpellDamage != nil && apiSpell.SpellDamage.SpellDamageType != nil {
		spell.Traits = append(spell.Traits, strings.ToLower(apiSpell.SpellDamage.SpellDamageType.Name))
	}

	if apiSpell.DC != nil {
		dcType := ""
		if apiSpell.DC.DCType != nil {
			dcType = apiSpell.DC.DCType.Name
		}
		spell.Defense = defenseFromDC(dcType, apiSpell.DC.DCSuccess)
	}

	if apiSpell.AreaOfEffect != nil {
		spell.Traits = append(spell.Traits, "area")
	}

	return spell
}

// defenseFromDC maps an SRD ability save to the closest of the three saves.
// A "half on success" DC is a basic save.
func defenseFromDC(dcType, dcSuccess string) *spells.SaveDefense {
	var statistic string
	switch strings.ToLower(dcType) {
	case "dex", "dexterity":
		statistic = "reflex"
	case "str", "strength", "con", "constitution":
		statistic = "fortitude"
	case "wis", "wisdom", "int", "intelligence", "cha", "charisma":
		statistic = "will"
	default:
		return nil
	}

	return &spells.SaveDefense{
		Statistic: statistic,
		Basic:     strings.EqualFold(dcSuccess, "half"),
	}
}
