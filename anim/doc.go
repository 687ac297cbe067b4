// Package anim implements frame-timed animations: a decoded sequence of
// surfaces, each with a start time, a duration and optional named anchors,
// plus a cursor which resolves elapsed time into the frame to show.
//
// Animations are usually decoded from animated GIFs (see FromGIF), whose
// anchors come from an INI sidecar where each section is an anchor label and
// each key is a frame index:
//
//	[head_anchor]
//	0=3,1
//	1=3,2
//
// They can also be synthesized from surfaces and durations, which is how
// PaletteCycle builds its output.
//
// An AnimatedSprite is not safe for concurrent use; use Clone to give every
// consumer its own cursor over the same frames.
package anim
