package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"warden/bot/common"
	"warden/command"
	"warden/models"
	"warden/service"
)

// handleMinRole sets a category threshold to the first mentioned role.
// "everyone" resets the threshold to the everyone role.
func (f *Feature) handleMinRole(ctx context.Context, inv *command.Invocation, category models.Category) error {
	var roleID string
	switch {
	case len(inv.MentionedRoles) > 0:
		roleID = inv.MentionedRoles[0]
	case strings.TrimPrefix(strings.ToLower(inv.Arg(0)), "@") == "everyone":
		guild, err := f.directory.Guild(ctx, inv.GuildID)
		if err != nil {
			return err
		}
		roleID = guild.EveryoneRoleID
	default:
		return command.Validation("please mention a role")
	}

	if err := f.configs.UpdateMinRole(ctx, inv.GuildID, category, roleID); err != nil {
		return err
	}

	return inv.Replier.ReactSuccess()
}

func (f *Feature) handleVolume(ctx context.Context, inv *command.Invocation) error {
	invalid := command.Validation(fmt.Sprintf("please provide a volume between %d and %d", models.MinVolume, models.MaxVolume))

	volume, err := strconv.Atoi(inv.Arg(0))
	if err != nil || !models.ValidVolume(volume) {
		return invalid
	}

	if err := f.configs.UpdateVolume(ctx, inv.GuildID, volume); err != nil {
		if errors.Is(err, service.ErrInvalidVolume) {
			return invalid
		}
		return err
	}

	return inv.Replier.ReactSuccess()
}

func (f *Feature) handleShow(ctx context.Context, inv *command.Invocation) error {
	cfg, err := f.configs.Get(ctx, inv.GuildID)
	if err != nil {
		return err
	}

	guild, err := f.directory.Guild(ctx, inv.GuildID)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Settings for %s**\n", guild.Name)
	fmt.Fprintf(&b, "General commands: %s\n", common.RoleName(guild, cfg.MinBaseRoleID))
	fmt.Fprintf(&b, "Moderation commands: %s\n", common.RoleName(guild, cfg.MinModRoleID))
	fmt.Fprintf(&b, "Voice commands: %s\n", common.RoleName(guild, cfg.MinVoiceRoleID))
	fmt.Fprintf(&b, "NSFW commands: %s\n", common.RoleName(guild, cfg.MinNSFWRoleID))
	fmt.Fprintf(&b, "Default volume: %d", cfg.DefaultVolume)

	return inv.Replier.Reply(command.ReplyPlain, b.String())
}
