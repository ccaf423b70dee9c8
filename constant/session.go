package constant

import _ "embed"

// DefaultSession is the built-in break content: tabs, exercise categories, videos and music tracks.
//
//go:embed session.toml
var DefaultSession string
