package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusSuccess APIStatus = "success"
	APIStatusError   APIStatus = "error"

	// login -> Helix user id
	CachePrefixTwitchUser CachePrefix = "TWITCH_USER_"
)

// Embed colours
const (
	ColorPending  = 0xF1C40F
	ColorApproved = 0x2ECC71
	ColorDenied   = 0xE74C3C
	ColorInfo     = 0x3498DB
	ColorRace     = 0xE67E22
	ColorTwitch   = 0x9146FF
)
