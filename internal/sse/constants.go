package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often idle streams receive a ping.
const KeepaliveInterval = 30 * time.Second

// Event types
const (
	// EventTypeOrderPlaced is sent when a customer places an order
	EventTypeOrderPlaced = "order.placed"

	// EventTypeOrderStatusChanged is sent when an order moves to a new status
	EventTypeOrderStatusChanged = "order.status_changed"

	// EventTypeMenuPublished is sent when a shop replaces its menu
	EventTypeMenuPublished = "menu.published"

	// EventTypeConnected is the first event of every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventDropped       = "SSE event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
)
