package ecs

import (
	"github.com/phanxgames/carousel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SlideEventType is the Donburi event type for slideshow events.
var SlideEventType = events.NewEventType[carousel.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SlideEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) carousel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event carousel.Event) {
	SlideEventType.Publish(s.world, event)
}
