// Package ecs provides ECS adapters for carousel's event system.
//
// The primary adapter is [NewDonburiSink], which forwards slideshow events
// (slide, swipe, index change, lazy load, click) into a [Donburi] world as
// typed events. Subscribe to [SlideEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	show.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
