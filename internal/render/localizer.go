package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Localization keys used by the saves message and the detector.
const (
	KeySaveDCLabel      = "PF2E.SaveDCLabel"
	KeySaveDCLabelBasic = "PF2E.SaveDCLabelBasic"
	KeyBasicSavePhrase  = "PF2E.BasicSavePhrase"
	KeyDegreePrefix     = "PF2E.Check.Result.Degree.Check."
	KeyDamageFull       = "PF2E.DamageButton.FullShort"
	KeyDamageHalf       = "PF2E.DamageButton.HalfShort"
	KeyDamageDouble     = "PF2E.DamageButton.DoubleShort"
	KeyDamageTriple     = "PF2E.DamageButton.TripleShort"
	KeyDamageHealing    = "PF2E.DamageButton.HealingShort"
	KeyShieldBlock      = "PF2E.DamageButton.ShieldBlockShort"
	KeySplash           = "PF2E.TraitSplash"
	KeyRollSave         = "pf2e-saves-helper.RollSave"
	KeyRollAll          = "pf2e-saves-helper.RollAll"
	KeyRollNPCs         = "pf2e-saves-helper.RollNPCs"
	KeySetTargets       = "pf2e-saves-helper.SetTargets"
	KeyApplyAll         = "pf2e-saves-helper.ApplyAll"
	KeyApplyNPCs        = "pf2e-saves-helper.ApplyNPC"
	KeySplashAround     = "pf2e-saves-helper.SplashAround"
	KeyConfirmRollAll   = "pf2e-saves-helper.ConfirmRollAll"
)

var english = map[string]string{
	KeySaveDCLabel:                      "DC %d %s save",
	KeySaveDCLabelBasic:                 "DC %d basic %s save",
	KeyBasicSavePhrase:                  "basic %s save",
	KeyDegreePrefix + "criticalSuccess": "Critical Success",
	KeyDegreePrefix + "success":         "Success",
	KeyDegreePrefix + "failure":         "Failure",
	KeyDegreePrefix + "criticalFailure": "Critical Failure",
	KeyDamageFull:                       "Damage",
	KeyDamageHalf:                       "Half",
	KeyDamageDouble:                     "Double",
	KeyDamageTriple:                     "Triple",
	KeyDamageHealing:                    "Heal",
	KeyShieldBlock:                      "Block",
	KeySplash:                           "Splash",
	KeyRollSave:                         "Roll %s",
	KeyRollAll:                          "Roll all",
	KeyRollNPCs:                         "Roll NPCs",
	KeySetTargets:                       "Set targets",
	KeyApplyAll:                         "Apply to all",
	KeyApplyNPCs:                        "Apply to NPCs",
	KeySplashAround:                     "Splash around",
	KeyConfirmRollAll:                   "Roll saves for %d tokens?",
}

// Localizer formats user-facing strings from a message catalog.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
	title   cases.Caser
}

// NewEnglishLocalizer builds a localizer over the built-in English catalog.
func NewEnglishLocalizer() (*Localizer, error) {
	return NewLocalizer(language.English, english)
}

// NewLocalizer builds a localizer for tag from key → printf-style message.
func NewLocalizer(tag language.Tag, messages map[string]string) (*Localizer, error) {
	builder := catalog.NewBuilder(catalog.Fallback(tag))
	for key, msg := range messages {
		if err := builder.SetString(tag, key, msg); err != nil {
			return nil, fmt.Errorf("failed to add %s to catalog: %w", key, err)
		}
	}

	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		title:   cases.Title(tag),
	}, nil
}

// Localize returns the message for key, formatted with args. Unknown keys come back verbatim.
func (l *Localizer) Localize(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// SaveName title-cases a save type, e.g. "reflex" → "Reflex".
func (l *Localizer) SaveName(saveType string) string {
	return l.title.String(strings.ToLower(saveType))
}

// SaveLabel formats "DC 20 basic Reflex save".
func (l *Localizer) SaveLabel(dc int, saveType string, basic bool) string {
	key := KeySaveDCLabel
	if basic {
		key = KeySaveDCLabelBasic
	}
	return l.Localize(key, dc, l.SaveName(saveType))
}

// BasicSavePhrase is the text whose presence marks an inline check as basic.
func (l *Localizer) BasicSavePhrase(saveType string) string {
	return l.Localize(KeyBasicSavePhrase, l.SaveName(saveType))
}

// DegreeLabel localizes an outcome name such as "criticalFailure".
func (l *Localizer) DegreeLabel(degree string) string {
	return l.Localize(KeyDegreePrefix + degree)
}
