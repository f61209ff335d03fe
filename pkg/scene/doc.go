// Package scene publishes evaluated puzzle frames to an external renderer
// over Redis.
//
// # Overview
//
// The engine never draws anything itself. After every transition the CLI
// can turn the reconciled lattice and the validity report into a Frame and
// hand it to the renderer. A frame is a complete, self-contained picture:
// every occupied cell with its resolved letter, contributors and emphasis,
// plus per-word validity, the save/solved flags, the selection and the
// orbit coordinate.
//
// Frames are one-way: the renderer reads them, nothing is ever read back
// into a session. Puzzles are still only persisted as flat JSON files.
//
// # Redis Schema
//
// All keys are namespaced by session so several authoring or solving
// sessions can share one Redis server.
//
//	Latest frame:   xw3d:{session}:frame        (hash)
//	Sequence:       xw3d:{session}:seq          (counter)
//	Frame events:   xw3d:{session}:frame_events (Pub/Sub, frame JSON)
//	Sessions:       xw3d:sessions               (set of session IDs)
//
// The latest frame is kept so a renderer that attaches late can draw
// immediately and then follow the event channel.
//
// # Usage Example
//
//	client, err := scene.NewClient(&redis.Options{Addr: "localhost:6379"}, session)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	frame := scene.BuildFrame(session, scene.ModeAuthoring, name, occ, words)
//	if err := client.PublishFrame(ctx, frame); err != nil {
//		log.Fatal(err)
//	}
package scene
