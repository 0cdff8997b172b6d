package domain

import "time"

// FeedEventCode identifies the kind of marketplace activity a feed entry describes
type FeedEventCode string

const (
	// FeedEventMint indicates a freshly minted NFT
	FeedEventMint FeedEventCode = "MINT"
	// FeedEventList indicates a new active listing
	FeedEventList FeedEventCode = "LIST"
	// FeedEventBid indicates a bid placed on an active listing
	FeedEventBid FeedEventCode = "BID"
	// FeedEventBidAccepted indicates a seller accepted a bid
	FeedEventBidAccepted FeedEventCode = "BID_ACCEPTED"
	// FeedEventSale indicates a direct purchase
	FeedEventSale FeedEventCode = "SALE"
)

// FeedEvent is the broadcast form of a feed entry, published to live display
// clients. EventID is assigned by the publisher.
type FeedEvent struct {
	EventID   string        `json:"event_id,omitempty"`
	EventCode FeedEventCode `json:"event_code"`
	Message   string        `json:"message"`
	TxSig     *string       `json:"tx_sig,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
