package alerts

import (
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
)

// HubSink delivers the alert effect to connected console sessions. The browser
// side plays the audible cue and shakes the badge; when autoplay is blocked the
// client swallows the play failure, so a broadcast can never escalate an error
// back into the poll cycle.
type HubSink struct {
	hub *realtime.Hub
}

// NewHubSink constructs a HubSink.
func NewHubSink(hub *realtime.Hub) *HubSink {
	return &HubSink{hub: hub}
}

// Alert implements AlertSink.
func (s *HubSink) Alert(snapshot FeedSnapshot) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(realtime.Message{
		Stream: realtime.StreamAlerts,
		Event:  realtime.EventAlertTriggered,
		Data:   snapshot,
	})
}
