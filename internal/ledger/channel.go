package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Channel identifies the monetization stream a raw record belongs to.
type Channel string

const (
	ChannelVideoAds         Channel = "video_ads"
	ChannelProductOnsite    Channel = "product_onsite"
	ChannelProductOffsite   Channel = "product_offsite"
	ChannelSponsoredOnsite  Channel = "sponsored_onsite"
	ChannelSponsoredOffsite Channel = "sponsored_offsite"
)

var allChannels = []Channel{
	ChannelVideoAds,
	ChannelProductOnsite,
	ChannelProductOffsite,
	ChannelSponsoredOnsite,
	ChannelSponsoredOffsite,
}

var channelSet = func() map[Channel]struct{} {
	set := make(map[Channel]struct{}, len(allChannels))
	for _, ch := range allChannels {
		set[ch] = struct{}{}
	}
	return set
}()

// AllChannels returns the ordered list of known channel kinds.
func AllChannels() []Channel {
	cp := make([]Channel, len(allChannels))
	copy(cp, allChannels)
	return cp
}

// ParseChannel converts a string into a known Channel.
func ParseChannel(value string) (Channel, bool) {
	normalized := Channel(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := channelSet[normalized]
	return normalized, ok
}

// Revenue holds one monetary accumulator per channel kind.
// The zero value is a valid all-zero accumulator set.
type Revenue struct {
	VideoAds         decimal.Decimal `json:"video_ads"`
	ProductOnsite    decimal.Decimal `json:"product_onsite"`
	ProductOffsite   decimal.Decimal `json:"product_offsite"`
	SponsoredOnsite  decimal.Decimal `json:"sponsored_onsite"`
	SponsoredOffsite decimal.Decimal `json:"sponsored_offsite"`
}

// Add accumulates amount into the channel's bucket. Unknown channels are
// ignored so a malformed record never corrupts an accumulator.
func (r *Revenue) Add(ch Channel, amount decimal.Decimal) {
	switch ch {
	case ChannelVideoAds:
		r.VideoAds = r.VideoAds.Add(amount)
	case ChannelProductOnsite:
		r.ProductOnsite = r.ProductOnsite.Add(amount)
	case ChannelProductOffsite:
		r.ProductOffsite = r.ProductOffsite.Add(amount)
	case ChannelSponsoredOnsite:
		r.SponsoredOnsite = r.SponsoredOnsite.Add(amount)
	case ChannelSponsoredOffsite:
		r.SponsoredOffsite = r.SponsoredOffsite.Add(amount)
	}
}

// Get returns the accumulator for a channel.
func (r Revenue) Get(ch Channel) decimal.Decimal {
	switch ch {
	case ChannelVideoAds:
		return r.VideoAds
	case ChannelProductOnsite:
		return r.ProductOnsite
	case ChannelProductOffsite:
		return r.ProductOffsite
	case ChannelSponsoredOnsite:
		return r.SponsoredOnsite
	case ChannelSponsoredOffsite:
		return r.SponsoredOffsite
	default:
		return decimal.Zero
	}
}

// Merge adds every accumulator of other into r.
func (r *Revenue) Merge(other Revenue) {
	r.VideoAds = r.VideoAds.Add(other.VideoAds)
	r.ProductOnsite = r.ProductOnsite.Add(other.ProductOnsite)
	r.ProductOffsite = r.ProductOffsite.Add(other.ProductOffsite)
	r.SponsoredOnsite = r.SponsoredOnsite.Add(other.SponsoredOnsite)
	r.SponsoredOffsite = r.SponsoredOffsite.Add(other.SponsoredOffsite)
}

// Total returns the sum of all channel accumulators.
func (r Revenue) Total() decimal.Decimal {
	total := r.VideoAds
	total = total.Add(r.ProductOnsite)
	total = total.Add(r.ProductOffsite)
	total = total.Add(r.SponsoredOnsite)
	total = total.Add(r.SponsoredOffsite)
	return total
}
