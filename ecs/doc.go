// Package ecs bridges beanfall scene events into an ECS world.
//
// The adapter is [NewDonburiSink], which publishes every SceneHost lifecycle
// event (mount, activation, each bean starting and settling, field finished,
// unmount) into a [Donburi] world as typed events. Subscribe to
// [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	host.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
