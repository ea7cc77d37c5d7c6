package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
)

// Discord caps a message at five rows of five buttons, and a select menu at
// 25 options.
const (
	maxRows        = 5
	maxRowButtons  = 5
	maxMenuOptions = 25
	maxOptionLabel = 100
)

// Embed colors
const (
	colorPending  = 0x3498db
	colorDamage   = 0xe74c3c
	colorHealing  = 0x2ecc71
	colorNeutral  = 0x95a5a6
	hiddenNameFmt = "||%s||"
)

var degreeEmoji = map[string]string{
	"criticalSuccess": "🌟",
	"success":         "✅",
	"failure":         "❌",
	"criticalFailure": "💀",
}

// RecordEmbed shows a saves record: the save asked for and every target's standing.
func RecordEmbed(view *render.View, localizer *render.Localizer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Saving Throws",
		Color: colorPending,
	}
	if view.Label != nil && view.Label.Text != "" && !view.Label.GMOnly {
		embed.Title = view.Label.Text
	}
	if view.SavesLabel != "" {
		embed.Description = fmt.Sprintf("**%s**", view.SavesLabel)
	}

	for _, row := range view.Tokens {
		name := row.Name
		if row.Hidden == "gm" {
			name = fmt.Sprintf(hiddenNameFmt, name)
		}

		var value string
		switch {
		case row.Healed:
			value = "💚 healed"
		case row.HasResult:
			value = fmt.Sprintf("%s %s (%d)", degreeEmoji[row.DegreeOfSuccess],
				localizer.Localize(row.DegreeOfSuccessLabel), row.RollValue)
		default:
			value = "⏳ waiting"
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: true,
		})
	}
	if len(view.Tokens) == 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "No targets. Select tokens and press Set targets."}
	}
	return embed
}

// RecordComponents builds roll buttons for pending targets plus the batch controls.
// When the buttons would not fit, pending targets are offered in pickers instead.
func RecordComponents(recordID string, view *render.View, localizer *render.Localizer) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	var options []discordgo.SelectMenuOption
	for _, row := range view.Tokens {
		if row.HasResult || row.Healed {
			continue
		}
		buttons = append(buttons, discordgo.Button{
			Label:    truncate(fmt.Sprintf("%s: %s", view.RollLabel, row.Name), 80),
			Style:    discordgo.PrimaryButton,
			CustomID: ComponentID{Action: ActionRoll, MessageID: recordID, TokenUUID: row.TokenUUID}.String(),
			Emoji:    &discordgo.ComponentEmoji{Name: "🎲"},
		})
		options = append(options, discordgo.SelectMenuOption{
			Label: truncate(row.Name, maxOptionLabel),
			Value: row.TokenUUID,
			Emoji: &discordgo.ComponentEmoji{Name: "🎲"},
		})
	}

	controls := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    localizer.Localize(render.KeyRollAll),
			Style:    discordgo.SecondaryButton,
			CustomID: ComponentID{Action: ActionRollAll, MessageID: recordID}.String(),
		},
		discordgo.Button{
			Label:    localizer.Localize(render.KeyRollNPCs),
			Style:    discordgo.SecondaryButton,
			CustomID: ComponentID{Action: ActionRollNPCs, MessageID: recordID}.String(),
		},
		discordgo.Button{
			Label:    localizer.Localize(render.KeySetTargets),
			Style:    discordgo.SecondaryButton,
			CustomID: ComponentID{Action: ActionTargets, MessageID: recordID}.String(),
			Emoji:    &discordgo.ComponentEmoji{Name: "🎯"},
		},
	}

	if len(buttons) <= (maxRows-1)*maxRowButtons {
		return layout(buttons, controls)
	}

	var pickers []discordgo.MessageComponent
	for page := 0; len(options) > 0; page++ {
		n := min(len(options), maxMenuOptions)
		pickers = append(pickers, discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    ComponentID{Action: ActionRollPick, MessageID: recordID, Page: page}.String(),
			Placeholder: truncate(fmt.Sprintf("%s (%d)", view.RollLabel, page+1), 150),
			Options:     options[:n],
		})
		options = options[n:]
	}
	return menuLayout(pickers, controls)
}

// DamageEmbed summarizes the rolls on a damage message.
func DamageEmbed(title string, rolls []*dice.DamageRoll) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: title, Color: colorDamage}
	if embed.Title == "" {
		embed.Title = "Damage"
	}
	for i, roll := range rolls {
		if roll == nil {
			continue
		}
		kind := "damage"
		if roll.HasKind(dice.KindHealing) && !roll.HasKind(dice.KindDamage) {
			kind = "healing"
			embed.Color = colorHealing
		}
		var parts []string
		for _, inst := range roll.Instances {
			parts = append(parts, fmt.Sprintf("%d %s", inst.Total, inst.Type))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Roll %d (%s)", i+1, kind),
			Value: fmt.Sprintf("**%d** = %s\n`%s`", roll.Total(), strings.Join(parts, " + "), roll.Formula),
		})
	}
	return embed
}

// DamageComponents offers one token picker per roll plus the batch controls.
// Picking a token replies with that token's buttons, see TokenComponents.
func DamageComponents(messageID string, rolls []*damage.RollButtons, localizer *render.Localizer) []discordgo.MessageComponent {
	var pickers, controls []discordgo.MessageComponent
	for _, rb := range rolls {
		var options []discordgo.SelectMenuOption
		for _, tb := range rb.Tokens {
			if tb.AlreadyApplied {
				continue
			}
			options = append(options, tokenOption(tb, localizer))
		}
		for page := 0; len(options) > 0; page++ {
			n := min(len(options), maxMenuOptions)
			placeholder := fmt.Sprintf("Roll %d: choose a token", rb.RollIndex+1)
			if page > 0 {
				placeholder = fmt.Sprintf("Roll %d: more tokens (%d)", rb.RollIndex+1, page+1)
			}
			pickers = append(pickers, discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    ComponentID{Action: ActionPick, MessageID: messageID, RollIndex: rb.RollIndex, Page: page}.String(),
				Placeholder: placeholder,
				Options:     options[:n],
			})
			options = options[n:]
		}

		if rb.Batch && len(controls) == 0 {
			controls = append(controls,
				discordgo.Button{
					Label:    localizer.Localize(render.KeyApplyAll),
					Style:    discordgo.DangerButton,
					CustomID: ComponentID{Action: ActionApplyAll, MessageID: messageID, RollIndex: rb.RollIndex}.String(),
				},
				discordgo.Button{
					Label:    localizer.Localize(render.KeyApplyNPCs),
					Style:    discordgo.DangerButton,
					CustomID: ComponentID{Action: ActionApplyNPCs, MessageID: messageID, RollIndex: rb.RollIndex}.String(),
				},
			)
		}
	}
	return menuLayout(pickers, controls)
}

// tokenOption describes a token in a picker, hinting at its highlighted button.
func tokenOption(tb *damage.TokenButtons, localizer *render.Localizer) discordgo.SelectMenuOption {
	opt := discordgo.SelectMenuOption{
		Label: truncate(tb.Name, maxOptionLabel),
		Value: tb.TokenUUID,
	}
	for _, b := range tb.Buttons {
		if b.Highlighted {
			opt.Description = truncate(localizer.Localize(b.LabelKey), maxOptionLabel)
			break
		}
	}
	if tb.Degree != nil {
		if emoji, ok := degreeEmoji[tb.Degree.String()]; ok {
			opt.Emoji = &discordgo.ComponentEmoji{Name: emoji}
		}
	}
	return opt
}

// TokenComponents are the buttons for one token on one roll: the multipliers and
// shield block on the first row, splash around that token on the second.
func TokenComponents(messageID string, rb *damage.RollButtons, tb *damage.TokenButtons, localizer *render.Localizer) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for _, b := range tb.Buttons {
		style := discordgo.SecondaryButton
		if b.Highlighted {
			style = discordgo.SuccessButton
		}
		buttons = append(buttons, discordgo.Button{
			Label: truncate(localizer.Localize(b.LabelKey), 80),
			Style: style,
			CustomID: ComponentID{
				Action:     ActionApply,
				MessageID:  messageID,
				TokenUUID:  tb.TokenUUID,
				RollIndex:  rb.RollIndex,
				Multiplier: b.Multiplier,
			}.String(),
		})
	}
	if tb.ShieldBlock {
		buttons = append(buttons, discordgo.Button{
			Label: localizer.Localize(render.KeyShieldBlock),
			Style: discordgo.SecondaryButton,
			CustomID: ComponentID{
				Action:     ActionShield,
				MessageID:  messageID,
				TokenUUID:  tb.TokenUUID,
				RollIndex:  rb.RollIndex,
				Multiplier: shieldMultiplier(tb),
			}.String(),
			Emoji: &discordgo.ComponentEmoji{Name: "🛡️"},
		})
	}

	var controls []discordgo.MessageComponent
	if !rb.Healing {
		controls = append(controls, discordgo.Button{
			Label:    localizer.Localize(render.KeySplashAround),
			Style:    discordgo.SecondaryButton,
			CustomID: ComponentID{Action: ActionSplash, MessageID: messageID, TokenUUID: tb.TokenUUID, RollIndex: rb.RollIndex}.String(),
			Emoji:    &discordgo.ComponentEmoji{Name: "💥"},
		})
	}
	return layout(buttons, controls)
}

// shieldMultiplier blocks with the highlighted multiplier, or full damage when none is.
func shieldMultiplier(tb *damage.TokenButtons) float64 {
	for _, b := range tb.Buttons {
		if b.Highlighted {
			return b.Multiplier
		}
	}
	if tb.Degree != nil {
		return saves.Multiplier(*tb.Degree)
	}
	return 1
}

// layout packs buttons into rows, keeping the last row for controls. Callers
// switch to pickers before the buttons outgrow the rows.
func layout(buttons, controls []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for len(buttons) > 0 {
		n := min(len(buttons), maxRowButtons)
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}
	if len(controls) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: controls[:min(len(controls), maxRowButtons)]})
	}
	return rows
}

// menuLayout gives each select menu its own row, followed by the controls. Menus
// past the row limit are dropped.
func menuLayout(menus, controls []discordgo.MessageComponent) []discordgo.MessageComponent {
	menuRows := maxRows
	if len(controls) > 0 {
		menuRows--
	}

	var rows []discordgo.MessageComponent
	for _, menu := range menus[:min(len(menus), menuRows)] {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}})
	}
	if len(controls) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: controls[:min(len(controls), maxRowButtons)]})
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
