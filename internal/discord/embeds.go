package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

const footerText = "Professional Racing Management System"

var embedNow = func() time.Time { return time.Now().UTC() }

func mention(userID string) string {
	return "<@" + userID + ">"
}

func channelMention(channelID string) string {
	return "<#" + channelID + ">"
}

func roleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// noPings suppresses every mention in a message
func noPings() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

func baseEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   embedNow().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func successEmbed(title, description string) *discordgo.MessageEmbed {
	return baseEmbed("✅ "+title, description, constants.ColorApproved)
}

func errorEmbed(title, description string) *discordgo.MessageEmbed {
	return baseEmbed("❌ "+title, description, constants.ColorDenied)
}

func infoEmbed(title, description string) *discordgo.MessageEmbed {
	return baseEmbed("ℹ️ "+title, description, constants.ColorInfo)
}

// validationEmbed itemises every problem of a rejected submission
func validationEmbed(verr *services.ValidationError) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString("Please correct the following and submit again:\n\n")
	for _, p := range verr.Problems {
		b.WriteString("▫️ " + p + "\n")
	}
	return errorEmbed(constants.TitleInvalidSubmission, b.String())
}

func submissionIntroEmbed() *discordgo.MessageEmbed {
	return baseEmbed(
		"🏁 Vehicle Registration Portal",
		"**Register Your Vehicle**\n\n"+
			"Submit your vehicle for official registration. Staff will review the details "+
			"before it is added to your garage.\n\n"+
			"**📋 You will need:**\n"+
			"▫️ Make and model\n"+
			"▫️ Model year\n"+
			"▫️ Engine specifications\n"+
			"▫️ Transmission\n"+
			"▫️ Your 17-digit Steam ID\n\n"+
			"*Click the button below to open the registration form.*",
		constants.ColorInfo,
	)
}

func vehicleFields(v *gormModels.Vehicle) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "🚗 Vehicle Details",
			Value:  fmt.Sprintf("**Make & Model:** %s\n**Year:** %s", v.MakeModel, v.Year),
			Inline: false,
		},
		{
			Name:   "⚙️ Performance Specs",
			Value:  fmt.Sprintf("**Engine:** %s\n**Transmission:** %s", v.EngineSpec, v.Transmission),
			Inline: false,
		},
		{
			Name:   "🎮 Platform Information",
			Value:  fmt.Sprintf("**Steam ID:** `%s`\n**Registration ID:** `%s`", v.SteamID, v.SlipID),
			Inline: false,
		},
	}
}

func submittedEmbed(v *gormModels.Vehicle) *discordgo.MessageEmbed {
	e := successEmbed("Registration Submitted",
		fmt.Sprintf("Your **%s** has been submitted for staff review.\n\nRegistration ID: `%s`", v.DisplayName(), v.SlipID))
	return e
}

func reviewRequestEmbed(v *gormModels.Vehicle) *discordgo.MessageEmbed {
	e := baseEmbed(
		"🔍 Registration Review Required",
		fmt.Sprintf("**Submitted by:** %s\n**Submitted:** <t:%d:R>", mention(v.UserID), v.CreatedAt.Unix()),
		constants.ColorPending,
	)
	e.Fields = vehicleFields(v)
	return e
}

// reviewedEmbed replaces the review request once a reviewer acted on it
func reviewedEmbed(v *gormModels.Vehicle, staffID, verdict string, color int) *discordgo.MessageEmbed {
	e := baseEmbed(
		"🔍 Registration "+verdict,
		fmt.Sprintf("**Submitted by:** %s\n**Reviewed by:** %s", mention(v.UserID), mention(staffID)),
		color,
	)
	e.Fields = vehicleFields(v)
	return e
}

func approvedEmbed(v *gormModels.Vehicle, staffID string) *discordgo.MessageEmbed {
	return baseEmbed(
		"🎉 Registration Approved!",
		fmt.Sprintf("%s, your **%s** has been officially registered!\n\n"+
			"**Registration ID:** `%s`\n**Approved by:** %s\n\n"+
			"Your vehicle is now eligible for pinkslip races.",
			mention(v.UserID), v.DisplayName(), v.SlipID, mention(staffID)),
		constants.ColorApproved,
	)
}

func deniedEmbed(v *gormModels.Vehicle, staffID, reason string) *discordgo.MessageEmbed {
	e := baseEmbed(
		"Registration Review Complete",
		fmt.Sprintf("%s, your registration for **%s** was not approved.\n\n**Reviewed by:** %s",
			mention(v.UserID), v.DisplayName(), mention(staffID)),
		constants.ColorDenied,
	)
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "📝 Reason", Value: reason},
		{Name: "🔄 Next Steps", Value: "Address the issue above and submit a new registration with `/pinkslip submit`."},
	}
	return e
}

func infoRequestedEmbed(v *gormModels.Vehicle, staffID, message string) *discordgo.MessageEmbed {
	e := baseEmbed(
		"📋 Additional Information Requested",
		fmt.Sprintf("%s, staff need more details about your **%s** registration (`%s`).\n\n**Requested by:** %s",
			mention(v.UserID), v.DisplayName(), v.SlipID, mention(staffID)),
		constants.ColorPending,
	)
	e.Fields = []*discordgo.MessageEmbedField{{Name: "💬 Message", Value: message}}
	return e
}

func rankFor(wins int) string {
	switch {
	case wins >= 50:
		return "🏆 Legend"
	case wins >= 25:
		return "🥇 Champion"
	case wins >= 10:
		return "🥈 Veteran"
	case wins >= 1:
		return "🥉 Contender"
	}
	return "🚦 Rookie"
}

func profileEmbed(p *services.Profile) *discordgo.MessageEmbed {
	e := baseEmbed(
		"🏎️ Racing Profile",
		fmt.Sprintf("%s\n**Rank:** %s", mention(p.UserID), rankFor(p.Wins)),
		constants.ColorInfo,
	)
	e.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "🚗 Fleet",
			Value:  fmt.Sprintf("**Approved:** %d\n**Pending:** %d", p.Approved, p.Pending),
			Inline: true,
		},
		{
			Name:   "📊 Race Record",
			Value:  p.Record,
			Inline: true,
		},
	}
	if n := len(p.Vehicles); n > 0 {
		latest := p.Vehicles[0]
		for _, v := range p.Vehicles[1:] {
			if v.CreatedAt.After(latest.CreatedAt) {
				latest = v
			}
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "🆕 Latest Registration",
			Value: fmt.Sprintf("%s %s `%s`", statusEmoji(latest.Status), latest.DisplayName(), latest.SlipID),
		})
	}
	return e
}

func statusEmoji(status constants.VehicleStatus) string {
	if status == constants.VehicleStatusApproved {
		return "✅"
	}
	return "⏳"
}

func statusLabel(status constants.VehicleStatus) string {
	if status == constants.VehicleStatusApproved {
		return "Approved"
	}
	return "Pending Review"
}

func vehicleDetailEmbed(v *gormModels.Vehicle) *discordgo.MessageEmbed {
	color := constants.ColorPending
	if v.Status == constants.VehicleStatusApproved {
		color = constants.ColorApproved
	}
	e := baseEmbed(
		"🚗 "+v.DisplayName(),
		fmt.Sprintf("**Owner:** %s\n**Registration ID:** `%s`\n**Status:** %s %s",
			mention(v.UserID), v.SlipID, statusEmoji(v.Status), statusLabel(v.Status)),
		color,
	)
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "⚙️ Engine", Value: "```" + v.EngineSpec + "```", Inline: true},
		{Name: "🔧 Transmission", Value: "```" + v.Transmission + "```", Inline: true},
		{Name: "📅 Registered", Value: fmt.Sprintf("<t:%d:D>", v.CreatedAt.Unix()), Inline: false},
	}
	return e
}

func raceIntroEmbed(opponentID string) *discordgo.MessageEmbed {
	return baseEmbed(
		"🏁 Official Race Results Portal",
		fmt.Sprintf("**Opponent:** %s\n\n", mention(opponentID))+
			"Record the outcome of your race. Results are logged for statistics and the leaderboard.\n\n"+
			"**⚠️ Important Guidelines:**\n"+
			"▫️ Only report actual race results\n"+
			"▫️ Both parties must confirm transfers\n"+
			"▫️ Disputes revert every change\n\n"+
			fmt.Sprintf("*Select your race outcome below within %d minutes.*", int(services.SelectionWindow.Minutes())),
		constants.ColorRace,
	)
}

func vehiclePickEmbed(claim *gormModels.RaceClaim) *discordgo.MessageEmbed {
	var desc string
	if claim.Outcome == constants.OutcomeWin {
		desc = fmt.Sprintf("Select which of %s's vehicles you won.", mention(claim.Loser()))
	} else {
		desc = fmt.Sprintf("Select which of your vehicles %s won.", mention(claim.Winner()))
	}
	return baseEmbed("🚗 Select Vehicle", desc, constants.ColorRace)
}

func confirmationEmbed(claim *gormModels.RaceClaim, v *gormModels.Vehicle) *discordgo.MessageEmbed {
	var e *discordgo.MessageEmbed
	if claim.Outcome == constants.OutcomeWin {
		e = baseEmbed(
			"🏆 Victory Claim - Confirmation Required",
			fmt.Sprintf("**Winner:** %s\n**Opponent:** %s\n\n%s has claimed victory and is requesting transfer of:\n**%s**",
				mention(claim.InitiatorID), mention(claim.OpponentID), mention(claim.InitiatorID), v.DisplayName()),
			constants.ColorApproved,
		)
	} else {
		e = baseEmbed(
			"💔 Loss Reported - Confirmation Required",
			fmt.Sprintf("**Reporter:** %s\n**Opponent:** %s\n\n%s has reported a loss and is transferring:\n**%s**",
				mention(claim.InitiatorID), mention(claim.OpponentID), mention(claim.InitiatorID), v.DisplayName()),
			constants.ColorDenied,
		)
	}
	e.Fields = []*discordgo.MessageEmbedField{
		{
			Name: "✅ Confirmation Required",
			Value: fmt.Sprintf("%s, please confirm this race result is accurate.\n"+
				"Click **Confirm** to proceed or **Dispute** if this is incorrect.", mention(claim.OpponentID)),
		},
		{
			Name:  "⏱️ Deadline",
			Value: fmt.Sprintf("Unconfirmed claims are reverted <t:%d:R>.", claim.ExpiresAt.Unix()),
		},
	}
	return e
}

// claimResolvedEmbed renders a claim in a terminal state
func claimResolvedEmbed(claim *gormModels.RaceClaim) *discordgo.MessageEmbed {
	switch claim.State {
	case constants.ClaimConfirmed:
		return successEmbed("Race Result Confirmed",
			fmt.Sprintf("%s beat %s. Vehicle `%s` now belongs to %s.",
				mention(claim.Winner()), mention(claim.Loser()), claim.SlipID, mention(claim.Winner())))
	case constants.ClaimDisputed:
		return errorEmbed("Race Result Disputed",
			fmt.Sprintf("%s disputed the result. Statistics and ownership were reverted.", mention(claim.OpponentID)))
	case constants.ClaimTimedOut:
		return errorEmbed(constants.TitleClaimExpired,
			fmt.Sprintf("The race claim between %s and %s timed out. Every change was reverted.",
				mention(claim.InitiatorID), mention(claim.OpponentID)))
	case constants.ClaimAborted:
		return errorEmbed(constants.TitleNoEligibleVehicle, constants.MsgNoEligibleVehicle)
	}
	return infoEmbed("Race Claim", "This race claim is still open.")
}

func twitchConfirmEmbed(user *providers.StreamUser) *discordgo.MessageEmbed {
	e := baseEmbed(
		"📺 Confirm Twitch Streamer",
		"Is this the streamer you want to watch?",
		constants.ColorTwitch,
	)
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "Username", Value: user.Login, Inline: true},
		{Name: "Display Name", Value: user.DisplayName, Inline: true},
		{Name: "Profile Link", Value: user.ChannelURL(), Inline: false},
	}
	if user.ProfileImageURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.ProfileImageURL}
	}
	return e
}

func twitchListEmbed(watches []gormModels.StreamerWatch) *discordgo.MessageEmbed {
	if len(watches) == 0 {
		return infoEmbed("Watched Streamers", "No streamers are being watched. Add one with `/twitch add`.")
	}
	var b strings.Builder
	for _, w := range watches {
		state := "⚫"
		if w.IsLive {
			state = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s [%s](https://twitch.tv/%s)\n", state, w.TwitchUsername, w.TwitchUsername))
	}
	e := baseEmbed("📺 Watched Streamers", b.String(), constants.ColorTwitch)
	e.Footer = &discordgo.MessageEmbedFooter{Text: strconv.Itoa(len(watches)) + " streamer(s)"}
	return e
}

func twitchSettingsEmbed(o *services.TwitchOverview) *discordgo.MessageEmbed {
	role := "None"
	if o.Settings.RoleID != nil && *o.Settings.RoleID != "" {
		role = roleMention(*o.Settings.RoleID)
	}
	e := baseEmbed("⚙️ Twitch Settings", "", constants.ColorTwitch)
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "Announcement Channel", Value: channelMention(o.Settings.ChannelID), Inline: true},
		{Name: "Ping Role", Value: role, Inline: true},
		{Name: "Watched Streamers", Value: strconv.FormatInt(o.Watching, 10), Inline: true},
	}
	return e
}

// liveMessage builds the go-live announcement. The role ping is the only
// mention allowed through.
func liveMessage(target gormModels.WatchTarget, user providers.StreamUser, stream providers.Stream) *discordgo.MessageSend {
	name := user.DisplayName
	if name == "" {
		name = stream.UserName
	}
	game := stream.GameName
	if game == "" {
		game = "Unknown"
	}

	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔴 %s is now live on Twitch!", name),
		Description: stream.Title,
		URL:         user.ChannelURL(),
		Color:       constants.ColorTwitch,
		Timestamp:   embedNow().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Game", Value: game, Inline: true},
			{Name: "Viewers", Value: strconv.Itoa(stream.ViewerCount), Inline: true},
			{Name: "Started", Value: fmt.Sprintf("<t:%d:R>", stream.StartedAt.Unix()), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Twitch"},
	}
	if thumb := stream.Thumbnail(320, 180); thumb != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: thumb}
	}
	if user.ProfileImageURL != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: name, URL: user.ChannelURL(), IconURL: user.ProfileImageURL}
	}

	content := fmt.Sprintf("**%s** is now live! 🎮", name)
	allowed := noPings()
	if target.RoleID != nil && *target.RoleID != "" {
		content = roleMention(*target.RoleID) + " " + content
		allowed.Roles = []string{*target.RoleID}
	}
	return &discordgo.MessageSend{
		Content:         content,
		Embeds:          []*discordgo.MessageEmbed{e},
		AllowedMentions: allowed,
	}
}
