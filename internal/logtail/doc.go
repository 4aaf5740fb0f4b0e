// Package logtail reads the tail of the application log.
//
// # Overview
//
// In debug mode the splash screen shows a live console of what the
// application is logging while game content loads. The log is a plain file
// written by zerolog, so the console is just the last few lines of it.
//
// # Reading
//
// Tail and Read use a ring buffer: one sequential pass, O(maxLines) memory,
// lines returned oldest first.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Following
//
// Follower remembers the byte offset of the previous Poll and only reads
// what was appended since. A trailing line without a newline is held back
// until it is complete. When the file shrinks (truncation or rotation) the
// follower starts over from the beginning.
//
//	f := logtail.NewFollower(cfg.LogFile, 12)
//	lines, _ := f.Poll() // call on every UI tick
package logtail
