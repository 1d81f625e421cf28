// Package listview renders long lists in a fixed-height viewport.
//
// Only the rows around the cursor are rendered, so a selection that spans
// many pages stays responsive. The cursor moves with the arrow keys, vim
// keys, pgup/pgdown and home/end.
package listview
