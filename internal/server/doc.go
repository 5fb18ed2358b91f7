// Package server serves the demo app as a live page.
//
// GET / creates a session (its own document and app) and returns the page
// with every element tagged by its data-eid. The page's script opens
// /ws?session=ID and forwards input, change, click and submit events as
// JSON messages. For each message the session copies the element state
// into its in-memory element, dispatches the event so cells and
// components update, and replies with the re-rendered <main>.
//
// Each session's document is guarded by one mutex; everything touching
// the app runs under it, so the app sees a single UI thread.
package server
