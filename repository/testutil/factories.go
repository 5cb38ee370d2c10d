package testutil

import (
	"warden/models"
)

// Role IDs used by the default test guild
const (
	TestEveryoneRoleID = "1000"
	TestModRoleID      = "1002"
)

// CreateTestGuildSeed returns a provisioning seed with every threshold at the everyone
// role except moderation
func CreateTestGuildSeed(guildID string) *models.GuildSeed {
	return &models.GuildSeed{
		ID:             guildID,
		Name:           "Guild " + guildID,
		DefaultVolume:  models.DefaultVolume,
		MinBaseRoleID:  TestEveryoneRoleID,
		MinModRoleID:   TestModRoleID,
		MinVoiceRoleID: TestEveryoneRoleID,
		MinNSFWRoleID:  TestEveryoneRoleID,
	}
}

// CreateTestUser returns a user with a derived name
func CreateTestUser(userID string) *models.User {
	return &models.User{ID: userID, Name: "user-" + userID}
}

// CreateTestChannel returns a text channel in the given guild
func CreateTestChannel(channelID, guildID string) *models.TextChannel {
	return &models.TextChannel{ID: channelID, GuildID: guildID, Name: "channel-" + channelID}
}
