// Package gem provides functions for creating GEM (Generic Equipment Model) messages
// according to the SEMI E30 standard.
//
// This package offers a convenient way to generate SECS-II messages for various GEM message types.
package gem
