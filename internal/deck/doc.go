// Package deck assembles solver input decks from an analysis model.
//
// A deck is an ordered list of sections, each holding the final text lines of
// one concern: include directives, the mesh reference, named sets, kinematic
// connectors, constraint equations, materials, assignments, initial
// conditions, the stepping parameters and the load history. The section order
// is fixed; sections with nothing to say are omitted entirely except for the
// handful that always render so a reader can see at a glance that a concern
// is empty rather than forgotten.
//
// Why a structured Deck instead of appending to one string?
//
// Holding sections as data until the final render keeps assembly inspectable:
// tests assert on a single section's lines without parsing banners back out
// of a blob, and the renderer can stream line by line instead of buffering
// the whole deck. Assembly is also repeatable: derived artifacts like
// connector node sets are computed fresh on every build and never leak into
// the analysis model.
package deck
