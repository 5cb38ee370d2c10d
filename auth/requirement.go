package auth

import "warden/models"

// Category selects which guild threshold role gates a command
type Category = models.Category

const (
	CategoryGeneral    = models.CategoryGeneral
	CategoryModeration = models.CategoryModeration
	CategoryVoice      = models.CategoryVoice
	CategoryNSFW       = models.CategoryNSFW
	CategoryOwner      = models.CategoryOwner
)

// Requirement is the authorization metadata each command declares
type Requirement struct {
	Category  Category
	GuildOnly bool
	OwnerOnly bool
	Hidden    bool // Omitted from help output
}

// Subject identifies who is invoking a command and where.
// GuildID is empty for direct messages.
type Subject struct {
	GuildID  string
	UserID   string
	UserName string
}
