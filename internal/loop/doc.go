// Package loop runs every sprite's script on the shared stage.
//
// A run visits sprites in stage order and executes each script front to
// back, one block at a time, through the block executor. After every
// top-level block a collision pass may swap scripts between overlapping
// sprites; the runner always reads the next block from the sprite's current
// script, so a swap changes what the sprite does next.
//
// Sprites run strictly one after another. There is no parallel execution.
package loop
