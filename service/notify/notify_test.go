package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/listing"
)

type fakeSender struct {
	mu      sync.Mutex
	channel string
	embeds  []*discordgo.MessageEmbed
	err     error
	sent    chan struct{}
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.mu.Lock()
	f.channel = channelID
	f.embeds = append(f.embeds, embed)
	f.mu.Unlock()
	f.sent <- struct{}{}
	return &discordgo.Message{}, f.err
}

var sale = listing.Sale{
	Id: 7,
	Listing: listing.Listing{
		NonFungibleRegistry: "0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0",
		AssetId:             "1",
		Price:               decimal.NewFromInt(100),
		Seller:              "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		FungibleRegistry:    "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512",
	},
	Buyer: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
	Time:  time.Unix(1700000000, 0),
}

func TestDiscordNotifySold(t *testing.T) {
	req := require.New(t)
	sender := &fakeSender{sent: make(chan struct{}, 1)}
	n := newDiscord(DiscordConfig{ChannelId: "chan", SiteURL: "https://market.example", Workers: 1}, sender)
	defer n.Close()

	n.NotifySold(ctx.Background(), sale)

	select {
	case <-sender.sent:
	case <-time.After(5 * time.Second):
		req.Fail("notification not sent")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	req.Equal("chan", sender.channel)
	req.Len(sender.embeds, 1)
	req.Equal("https://market.example/listings/7", sender.embeds[0].Description)
	req.Equal("100 (0xe7f1725e7734ce288f8367e1bb143e90bb3f0512)", sender.embeds[0].Fields[3].Value)
}

func TestDiscordFailureIsRetriedThenSwallowed(t *testing.T) {
	req := require.New(t)
	sender := &fakeSender{sent: make(chan struct{}, sendAttempts), err: errors.New("discord down")}
	n := newDiscord(DiscordConfig{ChannelId: "chan"}, sender)
	n.retryStart = time.Millisecond
	defer n.Close()

	req.NotPanics(func() { n.NotifySold(ctx.Background(), sale) })
	for i := 0; i < sendAttempts; i++ {
		select {
		case <-sender.sent:
		case <-time.After(5 * time.Second):
			req.Fail("notification not retried")
		}
	}
}

func TestLogNotifier(t *testing.T) {
	n := NewLog()
	require.NotPanics(t, func() { n.NotifySold(ctx.Background(), sale) })
	n.Close()
}
