package discord

import (
	"github.com/bwmarrin/discordgo"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
)

// Discord caps select menus at 25 options
const maxSelectOptions = 25

// Registration form text input ids
const (
	fieldMakeModel    = "make_model"
	fieldYear         = "year"
	fieldEngineSpec   = "engine_spec"
	fieldTransmission = "transmission"
	fieldSteamID      = "steam_id"
	fieldReason       = "reason"
	fieldMessage      = "message"
)

func button(label string, style discordgo.ButtonStyle, id CustomID, disabled bool) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: id.String(),
		Disabled: disabled,
	}
}

func row(components ...discordgo.MessageComponent) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: components}
}

func submissionIntroComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(
			button("📝 Submit Registration", discordgo.PrimaryButton, newCustomID(scopeRegistration, actionOpenForm, ""), false),
			button("❌ Cancel", discordgo.SecondaryButton, newCustomID(scopeRegistration, actionCancelForm, ""), false),
		),
	}
}

func textInput(id, label, placeholder string, style discordgo.TextInputStyle, minLen, maxLen int) discordgo.ActionsRow {
	return row(discordgo.TextInput{
		CustomID:    id,
		Label:       label,
		Placeholder: placeholder,
		Style:       style,
		Required:    true,
		MinLength:   minLen,
		MaxLength:   maxLen,
	})
}

func registrationModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: newCustomID(scopeRegistration, actionForm, "").String(),
		Title:    "🚗 Vehicle Registration Form",
		Components: []discordgo.MessageComponent{
			textInput(fieldMakeModel, "Make & Model", "e.g., Ford Mustang GT", discordgo.TextInputShort, 3, 100),
			textInput(fieldYear, "Year", "e.g., 2023", discordgo.TextInputShort, 4, 4),
			textInput(fieldEngineSpec, "Engine Specifications", "e.g., 1100whp 1300nm", discordgo.TextInputShort, 5, 200),
			textInput(fieldTransmission, "Transmission", "e.g., 6-Speed Manual", discordgo.TextInputShort, 3, 100),
			textInput(fieldSteamID, "Steam ID", "e.g., 76561198125412123", discordgo.TextInputShort, 17, 17),
		},
	}
}

func reviewComponents(slipID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(
			button("✅ Approve", discordgo.SuccessButton, newCustomID(scopeRegistration, actionApprove, slipID), disabled),
			button("❌ Deny", discordgo.DangerButton, newCustomID(scopeRegistration, actionDeny, slipID), disabled),
			button("📋 Request Info", discordgo.SecondaryButton, newCustomID(scopeRegistration, actionInfo, slipID), disabled),
		),
	}
}

func denyModal(slipID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: newCustomID(scopeRegistration, actionDenyReason, slipID).String(),
		Title:    "❌ Registration Denial",
		Components: []discordgo.MessageComponent{
			textInput(fieldReason, "Reason for Denial", "e.g., Invalid Steam ID", discordgo.TextInputParagraph, 1, 500),
		},
	}
}

func infoModal(slipID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: newCustomID(scopeRegistration, actionInfoText, slipID).String(),
		Title:    "📋 Request More Information",
		Components: []discordgo.MessageComponent{
			textInput(fieldMessage, "What do you need from the submitter?", "e.g., Please send a dyno sheet", discordgo.TextInputParagraph, 1, 500),
		},
	}
}

func outcomeComponents(claimID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(
			button("🏆 I Won", discordgo.SuccessButton, newCustomID(scopeRace, actionWin, claimID), false),
			button("💔 I Lost", discordgo.DangerButton, newCustomID(scopeRace, actionLoss, claimID), false),
		),
	}
}

func vehicleOptions(vehicles []gormModels.Vehicle) []discordgo.SelectMenuOption {
	if len(vehicles) > maxSelectOptions {
		vehicles = vehicles[:maxSelectOptions]
	}
	opts := make([]discordgo.SelectMenuOption, 0, len(vehicles))
	for _, v := range vehicles {
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       truncate(v.SlipID+" - "+v.DisplayName(), 100),
			Value:       v.SlipID,
			Description: truncate(v.EngineSpec, 100),
		})
	}
	return opts
}

func vehiclePickComponents(claimID string, vehicles []gormModels.Vehicle) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    newCustomID(scopeRace, actionPick, claimID).String(),
			Placeholder: "Select a vehicle...",
			Options:     vehicleOptions(vehicles),
		}),
	}
}

func confirmationComponents(claimID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(
			button("✅ Confirm", discordgo.SuccessButton, newCustomID(scopeRace, actionConfirm, claimID), disabled),
			button("❌ Dispute", discordgo.DangerButton, newCustomID(scopeRace, actionDispute, claimID), disabled),
		),
	}
}

// profileComponents lists the vehicles of ownerID. The owner id rides in
// the select so the detail view can offer a way back.
func profileComponents(ownerID string, vehicles []gormModels.Vehicle) []discordgo.MessageComponent {
	if len(vehicles) == 0 {
		return nil
	}
	return []discordgo.MessageComponent{
		row(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    newCustomID(scopeProfile, actionVehicle, ownerID).String(),
			Placeholder: "Select a vehicle to view details...",
			Options:     vehicleOptions(vehicles),
		}),
	}
}

func backToProfileComponents(ownerID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(button("🔙 Back to Overview", discordgo.SecondaryButton, newCustomID(scopeProfile, actionOverview, ownerID), false)),
	}
}

func twitchConfirmComponents(login string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		row(
			button("✅ Confirm", discordgo.SuccessButton, newCustomID(scopeTwitch, actionTwitchConfirm, login), disabled),
			button("❌ Cancel", discordgo.SecondaryButton, newCustomID(scopeTwitch, actionTwitchCancel, login), disabled),
		),
	}
}

// modalValues flattens the text inputs of a submitted modal by custom id
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		r, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range r.Components {
			if in, ok := inner.(*discordgo.TextInput); ok {
				values[in.CustomID] = in.Value
			}
		}
	}
	return values
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
