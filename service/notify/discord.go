package notify

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain/listing"
)

type DiscordConfig struct {
	BotKey    string
	ChannelId string
	// ListingUrl is formatted with the listing id, e.g. https://swiftbid.app/listings/%s
	ListingUrl string
}

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type discordNotifier struct {
	config  DiscordConfig
	discord embedSender
}

// NewDiscord posts sold listings to a discord channel
func NewDiscord(config DiscordConfig) (listing.Notifier, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", config.BotKey))
	if err != nil {
		return nil, err
	}
	return &discordNotifier{config, discord}, nil
}

func (n *discordNotifier) Publish(c ctx.Ctx, ev *listing.Event) error {
	if ev.Type != listing.EventSold || ev.Listing == nil {
		return nil
	}
	l := ev.Listing

	price := "-"
	if l.SalePrice != nil {
		price = l.SalePrice.String()
	}

	msg := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s sold!", l.Title),
		Description: n.listingUrl(l.Id.Hex()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(l.Seller)},
			{Name: "Buyer", Value: string(l.Buyer)},
			{Name: "Price", Value: price},
			{Name: "Sale", Value: string(l.SaleKind)},
			{Name: "Transaction", Value: string(l.TxHash)},
		},
	}
	if len(l.ImageUrl) > 0 {
		msg.Image = &discordgo.MessageEmbedImage{URL: l.ImageUrl}
	}

	if _, err := n.discord.ChannelMessageSendEmbed(n.config.ChannelId, msg); err != nil {
		c.WithField("err", err).Warn("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func (n *discordNotifier) listingUrl(id string) string {
	if !strings.Contains(n.config.ListingUrl, "%s") {
		return id
	}
	return fmt.Sprintf(n.config.ListingUrl, id)
}
