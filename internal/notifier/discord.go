package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/events-app/events-api/internal/models"
)

type Notifier interface {
	NotifyRegistration(event models.Event, registration models.EventRegistration) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRegistration(event models.Event, registration models.EventRegistration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	pronounsStr := ""
	if registration.Pronouns != "" {
		pronounsStr = fmt.Sprintf(" (%s)", registration.Pronouns)
	}

	optIn := "no"
	if registration.OptInForCommunication {
		optIn = "yes"
	}

	message := fmt.Sprintf("🎟️ **New Registration**\n**Event:** %s @ %s, %s %s\n**Attendee:** %s%s\n**Email:** %s\n**Opted in for communication:** %s",
		event.Name,
		event.Location,
		event.Date.Format("2006-01-02"),
		event.StartTime,
		registration.Name,
		pronounsStr,
		registration.Email,
		optIn,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
