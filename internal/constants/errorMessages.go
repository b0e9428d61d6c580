package constants

// Titles shown on error embeds
const (
	TitleSystemUnavailable   = "System Unavailable"
	TitleInvalidSubmission   = "Invalid Submission"
	TitleDuplicate           = "Duplicate Registration"
	TitleReviewDesync        = "Review No Longer Valid"
	TitleInsufficientPerms   = "Insufficient Permissions"
	TitleNotAuthorized       = "Not Authorized"
	TitleInvalidOpponent     = "Invalid Opponent"
	TitleNoEligibleVehicle   = "No Eligible Vehicle"
	TitleClaimClosed         = "Race Claim Closed"
	TitleClaimExpired        = "Race Claim Expired"
	TitleVehicleNotFound     = "Vehicle Not Found"
	TitleTransferFailed      = "Transfer Failed"
	TitleInvalidAmount       = "Invalid Amount"
	TitleNotConfigured       = "Not Configured"
	TitleStreamerNotFound    = "Streamer Not Found"
	TitleTwitchUnavailable   = "Twitch Unavailable"
	TitleInvalidUsername     = "Invalid Username"
	TitleAlreadyWatching     = "Already Watching"
	TitleReasonRequired      = "Reason Required"
	TitleNoRegistrationFound = "No Registrations Found"
)

// Descriptions shown on error embeds
const (
	MsgSystemUnavailable  = "The registration system is currently unavailable. Please try again later."
	MsgDuplicate          = "You have already registered this vehicle. Each make, model and year can be registered once."
	MsgReviewDesync       = "This registration was already reviewed or no longer exists."
	MsgMissingPermissions = "I lack message permissions in: %s\n\nPlease ensure I have 'Send Messages' and 'Embed Links' permissions."
	MsgAdminOnly          = "This command requires the Administrator permission."
	MsgManageServerOnly   = "This command requires the Manage Server permission."
	MsgNotParticipant     = "Only the member this step belongs to can use it."
	MsgSelfRace           = "You cannot race against yourself."
	MsgBotOpponent        = "You cannot race against bots."
	MsgNoEligibleVehicle  = "The losing member has no approved vehicle to transfer. The race was not recorded."
	MsgClaimClosed        = "This race claim has already been resolved."
	MsgClaimExpired       = "This race claim timed out and every change was reverted."
	MsgVehicleNotFound    = "No vehicle found with ID `%s`."
	MsgTransferNoOp       = "Vehicle `%s` already belongs to %s."
	MsgInvalidAmount      = "Amount must be a positive number."
	MsgPinkslipNotSetup   = "Run `/pinkslip setup` before using this command."
	MsgTwitchNotSetup     = "Run `/twitch setup` before adding streamers."
	MsgStreamerNotFound   = "No Twitch user found with the name `%s`."
	MsgTwitchUnavailable  = "Twitch credentials are not configured for this bot."
	MsgInvalidUsername    = "Twitch usernames are 1 to 25 letters, numbers or underscores."
	MsgAlreadyWatching    = "`%s` is already on the watch list."
	MsgReasonRequired     = "Please provide a reason."
	MsgNoRegistrations    = "%s has not submitted any vehicle registrations.\n\nUse `/pinkslip submit` to register your first vehicle."
	MsgGeneric            = "Something went wrong. Please try again later."
)
