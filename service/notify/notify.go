package notify

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/marketplace/base/backoff"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain/listing"
)

const (
	scheduleTimeout = 3 * time.Second
	sendAttempts    = 3
)

var met = metrics.New("notify")

type DiscordConfig struct {
	BotKey    string
	ChannelId string
	SiteURL   string
	Workers   int
}

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// Notifier is a listing.SaleNotifier that has to be closed on shutdown.
type Notifier interface {
	listing.SaleNotifier
	Close()
}

type discordNotifier struct {
	cfg        DiscordConfig
	discord    embedSender
	pool       *goroutines.Pool
	retryStart time.Duration
	retryLimit time.Duration
}

// NewDiscord posts sales to a discord channel from a small worker pool.
func NewDiscord(cfg DiscordConfig) (Notifier, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return newDiscord(cfg, discord), nil
}

func newDiscord(cfg DiscordConfig, discord embedSender) *discordNotifier {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &discordNotifier{
		cfg:     cfg,
		discord: discord,
		pool:    goroutines.NewPool(cfg.Workers, goroutines.WithTaskQueueLength(256), goroutines.WithPreAllocWorkers(1)),

		retryStart: 500 * time.Millisecond,
		retryLimit: 5 * time.Second,
	}
}

func (n *discordNotifier) NotifySold(c ctx.Ctx, s listing.Sale) {
	msg := saleEmbed(n.cfg.SiteURL, s)
	err := n.pool.ScheduleWithTimeout(scheduleTimeout, func() {
		b := backoff.NewExponential(n.retryStart, n.retryLimit)
		if err := backoff.Retry(c, b, sendAttempts, func() error {
			_, err := n.discord.ChannelMessageSendEmbed(n.cfg.ChannelId, msg)
			return err
		}); err != nil {
			met.BumpSum("discord.err", 1)
			c.WithFields(log.Fields{
				"listingId": s.Id,
				"err":       err,
			}).Error("discord.ChannelMessageSendEmbed failed")
		}
	})
	if err != nil {
		met.BumpSum("schedule.err", 1)
		c.WithFields(log.Fields{
			"listingId": s.Id,
			"err":       err,
		}).Warn("failed to schedule sale notification")
	}
}

func (n *discordNotifier) Close() {
	n.pool.Release()
}

func saleEmbed(siteURL string, s listing.Sale) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Item sold!",
		Description: fmt.Sprintf("%s/listings/%d", siteURL, s.Id),
		Timestamp:   s.Time.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Asset", Value: fmt.Sprintf("%s #%s", s.Listing.NonFungibleRegistry, s.Listing.AssetId)},
			{Name: "Seller", Value: string(s.Listing.Seller)},
			{Name: "Buyer", Value: string(s.Buyer)},
			{Name: "Price", Value: fmt.Sprintf("%s (%s)", s.Listing.Price.String(), s.Listing.FungibleRegistry)},
		},
	}
}

type logNotifier struct{}

// NewLog only logs sales, for setups without a discord bot.
func NewLog() Notifier {
	return logNotifier{}
}

func (logNotifier) NotifySold(c ctx.Ctx, s listing.Sale) {
	c.WithFields(log.Fields{
		"listingId": s.Id,
		"buyer":     s.Buyer,
		"seller":    s.Listing.Seller,
		"price":     s.Listing.Price.String(),
	}).Info("listing sold")
}

func (logNotifier) Close() {}
