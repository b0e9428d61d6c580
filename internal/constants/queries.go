package constants

// Hand-written read queries run through sqlx. Placeholders are '?' and
// rebound for the active driver.
const (
	GuildLeaderboard = `
	SELECT s.user_id, s.wins, s.losses,
	       (SELECT COUNT(*) FROM vehicles v
	         WHERE v.user_id = s.user_id AND v.guild_id = s.guild_id AND v.status = 'approved') AS vehicles
	  FROM user_stats s
	 WHERE s.guild_id = ? AND (s.wins + s.losses) > 0
	 ORDER BY s.wins DESC, s.losses ASC, s.user_id ASC
	 LIMIT ?
	`

	GuildSummary = `
	SELECT (SELECT COUNT(*) FROM vehicles WHERE guild_id = ? AND status = 'approved') AS approved_vehicles,
	       (SELECT COUNT(*) FROM vehicles WHERE guild_id = ? AND status = 'pending') AS pending_vehicles,
	       (SELECT COUNT(*) FROM race_results WHERE guild_id = ?) AS races
	`
)
