// Package object defines the simulation entities: bunkers, missiles,
// explosions, bonus stars and the player's progression model.
//
// Entities never hold pointers to each other. Cross references are bunker
// indices or geometric proximity, recomputed by the game every tick.
package object
