// Package calibration removes rater bias from evaluation scores.
//
// Every function is pure: it reads only its arguments and keeps no state
// between calls, so independent calls may run concurrently. Statistics are
// rounded to 3 decimal digits and calibrated scores to 2, both half away from
// zero.
package calibration
