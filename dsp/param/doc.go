// Package param holds the filter unit's automatable parameters.
//
// A [Store] keeps, per [Kind], the target published by the control plane and
// the smoothed value the render plane is currently using. Control-plane
// writes go through atomics and never block; the render plane picks them up
// with [Store.Sync] and moves toward them with a [Ramp].
//
// Kinds address fixed-size arrays. There is no name lookup on the render path.
package param
